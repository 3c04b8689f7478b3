package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/anagramthief/core/internal"
)

func roomWithPreSteal() *internal.Room {
	room := &internal.Room{
		ID:        "room-1",
		Status:    internal.RoomInGame,
		JoinOrder: []string{"a", "b"},
		Players: map[string]*internal.Player{
			"a": {
				ID:   "a",
				Name: "Alice",
				PreStealEntries: []internal.PreStealEntry{
					{ID: "pa1", TriggerLetters: "S", ClaimWord: "STARE"},
				},
			},
			"b": {
				ID:   "b",
				Name: "Bob",
				PreStealEntries: []internal.PreStealEntry{
					{ID: "pb1", TriggerLetters: "D", ClaimWord: "DEAL"},
				},
			},
		},
		Spectators: map[string]*internal.Player{
			"s": {ID: "s", Name: "Spectator"},
		},
		Game: &internal.Game{
			Phase:       internal.PhaseIdle,
			CenterTiles: []internal.Tile{{ID: "t1", Letter: 'T'}},
		},
	}
	return room
}

// TestProjectMasksOtherPlayersPreStealEntries exercises S7: a seated
// player sees their own pre-steal entries but not anyone else's, while
// a spectator sees everyone's.
func TestProjectMasksOtherPlayersPreStealEntries(t *testing.T) {
	room := roomWithPreSteal()

	asA := Project(room, ViewerPlayer, "a")
	byID := map[string]internal.PlayerView{}
	for _, p := range asA.Players {
		byID[p.ID] = p
	}
	require.Len(t, byID["a"].PreStealEntries, 1)
	require.Equal(t, "STARE", byID["a"].PreStealEntries[0].ClaimWord)
	require.Empty(t, byID["b"].PreStealEntries)

	asB := Project(room, ViewerPlayer, "b")
	byID = map[string]internal.PlayerView{}
	for _, p := range asB.Players {
		byID[p.ID] = p
	}
	require.Empty(t, byID["a"].PreStealEntries)
	require.Len(t, byID["b"].PreStealEntries, 1)

	asSpectator := Project(room, ViewerSpectator, "s")
	byID = map[string]internal.PlayerView{}
	for _, p := range asSpectator.Players {
		byID[p.ID] = p
	}
	require.Len(t, byID["a"].PreStealEntries, 1)
	require.Len(t, byID["b"].PreStealEntries, 1)
}

func TestProjectPlayerOrderFollowsJoinOrder(t *testing.T) {
	room := roomWithPreSteal()
	state := Project(room, ViewerPlayer, "a")
	require.Len(t, state.Players, 2)
	require.Equal(t, "a", state.Players[0].ID)
	require.Equal(t, "b", state.Players[1].ID)
}

func TestProjectBagIsSummarizedAsLetterCountsOnly(t *testing.T) {
	room := roomWithPreSteal()
	room.Game.Bag = []internal.Tile{
		{ID: "a1", Letter: 'A'}, {ID: "a2", Letter: 'A'}, {ID: "b1", Letter: 'B'},
	}

	state := Project(room, ViewerPlayer, "a")
	require.Equal(t, 3, state.BagCount)
	require.Equal(t, map[string]int{"A": 2, "B": 1}, state.BagLetterCounts)
}

func TestProjectOmitsReplayUntilRoomEnded(t *testing.T) {
	room := roomWithPreSteal()
	room.Game.Replay = internal.Replay{Steps: []internal.ReplayStep{
		{Index: 0, At: time.Now(), Kind: internal.StepGameStart, State: internal.GameSnapshot{Status: internal.RoomInGame}},
	}}

	live := Project(room, ViewerPlayer, "a")
	require.Nil(t, live.Replay)

	room.Status = internal.RoomEnded
	ended := Project(room, ViewerPlayer, "a")
	require.NotNil(t, ended.Replay)
	require.Len(t, ended.Replay.Steps, 1)
}

func TestSummarizeRoomForList(t *testing.T) {
	room := roomWithPreSteal()
	room.Name = "game night"
	room.IsPublic = true
	room.MaxPlayers = 8
	room.Players["a"].Connected = true
	room.Players["b"].Connected = true

	summary := Summarize(room)
	require.Equal(t, "room-1", summary.ID)
	require.Equal(t, "game night", summary.Name)
	require.Equal(t, 2, summary.PlayerCount)
	require.Equal(t, internal.RoomInGame, summary.Status)
}
