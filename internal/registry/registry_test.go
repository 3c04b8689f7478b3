package registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/game"
	"github.com/anagramthief/core/internal/projection"
)

// fakeSubscriber records every envelope sent to it, standing in for the
// transport adapter's *Connection in these registry-level tests.
type fakeSubscriber struct {
	id string

	mu  sync.Mutex
	got []internal.Message[any]
}

func (f *fakeSubscriber) ID() string { return f.id }

func (f *fakeSubscriber) Send(msg internal.Message[any]) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, msg)
	return nil
}

func (f *fakeSubscriber) last() (internal.Message[any], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.got) == 0 {
		return internal.Message[any]{}, false
	}
	return f.got[len(f.got)-1], true
}

func (f *fakeSubscriber) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

func TestCreateJoinStartRoundTrip(t *testing.T) {
	reg := New(dictionary.Default(), 1)

	room := reg.CreateRoom(game.NewRoomParams{
		Name: "game night", IsPublic: true, HostID: "a", HostName: "Alice",
		FlipTimerEnabled: false, ClaimTimerSeconds: 3,
	})
	require.Equal(t, internal.RoomLobby, room.Status)

	_, err := reg.JoinRoom(room.ID, "b", "Bob", "")
	require.NoError(t, err)

	subA := &fakeSubscriber{id: "a"}
	subB := &fakeSubscriber{id: "b"}
	reg.Subscribe(room.ID, projection.ViewerPlayer, subA)
	reg.Subscribe(room.ID, projection.ViewerPlayer, subB)

	require.NoError(t, reg.StartGame(room.ID, "a"))
	reg.Publish(context.Background(), room)

	require.Equal(t, 1, subA.count())
	require.Equal(t, 1, subB.count())
	msg, ok := subA.last()
	require.True(t, ok)
	require.Equal(t, "game:state", msg.Type)
}

func TestJoinUnknownRoomRefused(t *testing.T) {
	reg := New(dictionary.Default(), 1)
	_, err := reg.JoinRoom("does-not-exist", "a", "Alice", "")
	var refusal *game.RefusalError
	require.ErrorAs(t, err, &refusal)
	require.Equal(t, game.RefusalRoomNotFound, refusal.Kind)
}

// TestTimerFiredTransitionPublishes exercises the OnChange wiring: a
// claim-window expiry has no inbound command to reply to, so the only
// way a subscriber learns about it is the registry's own publish hook
// firing off the back of the timer.
func TestTimerFiredTransitionPublishes(t *testing.T) {
	reg := New(dictionary.Default(), 7)

	room := reg.CreateRoom(game.NewRoomParams{
		Name: "quick claims", IsPublic: true, HostID: "a", HostName: "Alice",
		ClaimTimerSeconds: 1,
	})
	sub := &fakeSubscriber{id: "a"}
	reg.Subscribe(room.ID, projection.ViewerPlayer, sub)
	require.NoError(t, reg.StartGame(room.ID, "a"))

	before := sub.count()
	_, err := reg.ClaimIntent(room.ID, "a")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return sub.count() > before
	}, 3*time.Second, 10*time.Millisecond)

	room.Mu.RLock()
	_, onCooldown := room.Game.ClaimCooldowns["a"]
	room.Mu.RUnlock()
	require.True(t, onCooldown)
}

func TestRemoveRoomIfEmptyGarbageCollects(t *testing.T) {
	reg := New(dictionary.Default(), 1)
	room := reg.CreateRoom(game.NewRoomParams{Name: "solo", IsPublic: true, HostID: "a", HostName: "Alice"})

	reg.LeaveRoom(room.ID, "a")

	require.Nil(t, reg.Get(room.ID))
}
