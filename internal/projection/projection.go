// Package projection builds the per-viewer GameState DTO pushed to
// clients: it masks other players' pre-steal entries, summarizes the
// bag instead of exposing its tiles, and only attaches the replay once
// the game has ended.
package projection

import (
	"github.com/anagramthief/core/internal"
)

// ViewerKind distinguishes a seated player from a spectator for
// pre-steal visibility purposes.
type ViewerKind string

const (
	ViewerPlayer    ViewerKind = "player"
	ViewerSpectator ViewerKind = "spectator"
)

// Project builds the GameState for one viewer of room. Callers must
// hold room.Mu for reading (RLock is sufficient).
func Project(room *internal.Room, viewerKind ViewerKind, viewerID string) internal.GameState {
	g := room.Game
	if g == nil {
		return internal.GameState{RoomID: room.ID, Phase: internal.PhaseIdle}
	}

	players := make([]internal.PlayerView, 0, len(room.Players))
	for _, id := range orderedPlayerIDs(room) {
		p := room.Players[id]
		entries := p.PreStealEntries
		if !(viewerKind == ViewerSpectator || p.ID == viewerID) {
			entries = nil
		}
		players = append(players, internal.PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			Connected:       p.Connected,
			Words:           wordValues(p.Words),
			PreStealEntries: entries,
			Score:           p.Score,
		})
	}

	state := internal.GameState{
		RoomID:          room.ID,
		Phase:           g.Phase,
		TurnPlayerID:    room.TurnPlayerID(),
		CenterTiles:     append([]internal.Tile(nil), g.CenterTiles...),
		BagLetterCounts: bagLetterCounts(g.Bag),
		BagCount:        len(g.Bag),
		Players:         players,
		ClaimWindow:     g.ClaimWindow,
		ClaimCooldowns:  g.ClaimCooldowns,
		PendingFlip:     g.PendingFlip,
		PreStealEnabled: g.PreStealEnabled,
		PrecedenceOrder: append([]string(nil), g.PrecedenceOrder...),
		LastClaimEvent:  g.LastClaimEvent,
		EndTimerEndsAt:  g.EndTimerEndsAt,
	}
	if room.Status == internal.RoomEnded {
		rep := g.Replay
		state.Replay = &rep
	}
	return state
}

// orderedPlayerIDs gives Project a deterministic player ordering
// (room's join order) rather than relying on Go's randomized map
// iteration.
func orderedPlayerIDs(room *internal.Room) []string {
	ids := make([]string, 0, len(room.Players))
	for _, id := range room.JoinOrder {
		if _, ok := room.Players[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func wordValues(words []*internal.Word) []internal.Word {
	out := make([]internal.Word, len(words))
	for i, w := range words {
		out[i] = *w
	}
	return out
}

func bagLetterCounts(bagTiles []internal.Tile) map[string]int {
	counts := make(map[string]int)
	for _, t := range bagTiles {
		counts[string(t.Letter)]++
	}
	return counts
}

// Summarize builds the room:list projection: enough to pick a room to
// join without exposing live game state.
func Summarize(room *internal.Room) internal.RoomSummary {
	return internal.RoomSummary{
		ID:          room.ID,
		Name:        room.Name,
		IsPublic:    room.IsPublic,
		PlayerCount: room.PlayerCount(),
		MaxPlayers:  room.MaxPlayers,
		Status:      room.Status,
	}
}
