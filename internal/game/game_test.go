package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
)

func newTestRoom(t *testing.T, players ...string) *internal.Room {
	t.Helper()
	room := NewRoom("room-1", NewRoomParams{
		Name:              "test room",
		IsPublic:          true,
		HostID:            players[0],
		HostName:          players[0],
		FlipTimerEnabled:  false,
		FlipTimerSeconds:  10,
		ClaimTimerSeconds: 1,
		PreStealEnabled:   true,
	})
	for _, p := range players[1:] {
		require.NoError(t, Join(room, p, p, ""))
	}
	return room
}

func startedRoom(t *testing.T, dict *dictionary.Dictionary, players ...string) *internal.Room {
	t.Helper()
	room := newTestRoom(t, players...)
	require.NoError(t, Start(room, players[0], rand.New(rand.NewSource(1)), dict, nil))
	return room
}

func TestStartRefusesNonHost(t *testing.T) {
	dict := dictionary.Default()
	room := newTestRoom(t, "a", "b")
	err := Start(room, "b", nil, dict, nil)
	var refusal *RefusalError
	require.ErrorAs(t, err, &refusal)
	require.Equal(t, RefusalNotHost, refusal.Kind)
}

func TestFlipRequiresTurnPlayer(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")

	err := Flip(room, "b")
	var refusal *RefusalError
	require.ErrorAs(t, err, &refusal)
	require.Equal(t, RefusalNotYourTurn, refusal.Kind)

	require.NoError(t, Flip(room, "a"))
	require.Equal(t, internal.PhaseRevealing, room.Game.Phase)
}

func TestClaimIntentExpiryPutsPlayerOnCooldown(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")
	room.ClaimTimerSeconds = 1

	require.NoError(t, ClaimIntent(room, "a"))
	require.Equal(t, internal.PhaseClaiming, room.Game.Phase)

	require.Eventually(t, func() bool {
		room.Mu.RLock()
		defer room.Mu.RUnlock()
		_, onCooldown := room.Game.ClaimCooldowns["a"]
		return room.Game.Phase == internal.PhaseIdle && room.Game.ClaimWindow == nil && onCooldown
	}, 3*time.Second, 10*time.Millisecond)

	room.Mu.RLock()
	steps := room.Game.Replay.Steps
	room.Mu.RUnlock()
	require.NotEmpty(t, steps)
	require.Equal(t, internal.StepClaimExpired, steps[len(steps)-1].Kind)
}

func TestClaimIntentRefusedWhileOnCooldown(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")
	room.Game.ClaimCooldowns["a"] = time.Now().Add(time.Minute)

	err := ClaimIntent(room, "a")
	var refusal *RefusalError
	require.ErrorAs(t, err, &refusal)
	require.Equal(t, RefusalOnCooldown, refusal.Kind)
}

// TestPreStealDemotion exercises S5: B's armed pre-steal entry fires on
// the flip that reveals the S it needs, stealing RATE from A and
// demoting B to the bottom of precedence order.
func TestPreStealDemotion(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b", "c")
	g := room.Game

	g.CenterTiles = nil
	room.Players["a"].Words = []*internal.Word{{ID: "w1", Text: "RATE", TileIDs: []string{"r", "t1", "a1", "e1"}, OwnerID: "a", CreatedAt: time.Now()}}
	room.Players["a"].RecomputeScore()
	g.PrecedenceOrder = []string{"a", "b", "c"}

	_, err := PreStealAdd(room, "b", "S", "STARE")
	require.NoError(t, err)

	g.Bag = append(g.Bag, internal.Tile{ID: "s1", Letter: 'S'})
	g.Phase = internal.PhaseRevealing
	g.PendingFlip = &internal.PendingFlip{PlayerID: "c", StartedAt: time.Now(), RevealsAt: time.Now()}

	room.Mu.Lock()
	pendingFlipRevealFired(room)
	room.Mu.Unlock()

	require.Empty(t, room.Players["a"].Words)
	require.Len(t, room.Players["b"].Words, 1)
	require.Equal(t, "STARE", room.Players["b"].Words[0].Text)
	require.ElementsMatch(t, []string{"r", "t1", "a1", "e1", "s1"}, room.Players["b"].Words[0].TileIDs)
	require.Equal(t, []string{"a", "c", "b"}, g.PrecedenceOrder)
	require.NotNil(t, g.LastClaimEvent)
	require.True(t, g.LastClaimEvent.MovedToBottomOfPreStealPrecedence)
	require.Equal(t, internal.SourcePreSteal, g.LastClaimEvent.Source)
}

func TestClaimCenterFormedWord(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")
	g := room.Game
	g.CenterTiles = []internal.Tile{{ID: "t1", Letter: 'T'}, {ID: "e1", Letter: 'E'}, {ID: "a1", Letter: 'A'}, {ID: "m1", Letter: 'M'}}
	require.NoError(t, ClaimIntent(room, "a"))

	result, err := Claim(room, "a", "team")
	require.NoError(t, err)
	require.Equal(t, "TEAM", result.Word)
	require.Len(t, room.Players["a"].Words, 1)
	require.Equal(t, 4, room.Players["a"].Score)
	require.Empty(t, g.CenterTiles)
	require.Equal(t, internal.PhaseIdle, g.Phase)
}

func TestClaimFailureLeavesWindowOpenForRetry(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")
	room.ClaimTimerSeconds = 10
	g := room.Game
	g.CenterTiles = []internal.Tile{{ID: "t1", Letter: 'T'}, {ID: "e1", Letter: 'E'}, {ID: "a1", Letter: 'A'}, {ID: "m1", Letter: 'M'}}
	require.NoError(t, ClaimIntent(room, "a"))

	_, err := Claim(room, "a", "zzzz")
	require.Error(t, err)
	require.Equal(t, internal.PhaseClaiming, g.Phase)
	require.NotNil(t, g.ClaimWindow)

	result, err := Claim(room, "a", "team")
	require.NoError(t, err)
	require.Equal(t, "TEAM", result.Word)
}

func TestLeaveClearsTurnOrderAndClaimWindow(t *testing.T) {
	dict := dictionary.Default()
	room := startedRoom(t, dict, "a", "b")
	require.NoError(t, ClaimIntent(room, "a"))

	Leave(room, "a")

	require.NotContains(t, room.Game.TurnOrder, "a")
	require.NotContains(t, room.Game.PrecedenceOrder, "a")
	require.Nil(t, room.Game.ClaimWindow)
	require.Equal(t, internal.PhaseIdle, room.Game.Phase)
}
