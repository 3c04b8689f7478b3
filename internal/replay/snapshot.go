// Package replay implements the step recorder (append a snapshot only
// when observable state actually changed) and the analyzer that
// re-runs the word-formation engine against a past step.
package replay

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/anagramthief/core/internal"
)

// Snapshot captures the subset of room/game fields relevant for replay
// review: bag count (not contents), center tiles,
// players with full words and pre-steal entries, turn player, claim
// window, cooldowns, pending flip, pre-steal flag, precedence order,
// last claim event, end timer.
func Snapshot(room *internal.Room) internal.GameSnapshot {
	g := room.Game
	if g == nil {
		return internal.GameSnapshot{Status: room.Status}
	}

	players := make([]internal.PlayerSnapshot, 0, len(room.Players))
	for _, id := range sortedPlayerIDs(room) {
		players = append(players, room.Players[id].Snapshot())
	}

	return internal.GameSnapshot{
		Status:          room.Status,
		BagCount:        len(g.Bag),
		CenterTiles:     append([]internal.Tile(nil), g.CenterTiles...),
		Players:         players,
		TurnPlayerID:    room.TurnPlayerID(),
		ClaimWindow:     cloneClaimWindow(g.ClaimWindow),
		ClaimCooldowns:  cloneCooldowns(g.ClaimCooldowns),
		PendingFlip:     clonePendingFlip(g.PendingFlip),
		PreStealEnabled: g.PreStealEnabled,
		PrecedenceOrder: append([]string(nil), g.PrecedenceOrder...),
		LastClaimEvent:  cloneClaimEvent(g.LastClaimEvent),
		EndTimerEndsAt:  g.EndTimerEndsAt,
	}
}

// sortedPlayerIDs gives the snapshot a deterministic player order so
// two snapshots of the same logical state hash identically regardless
// of Go's randomized map iteration.
func sortedPlayerIDs(room *internal.Room) []string {
	ids := make([]string, 0, len(room.Players))
	for id := range room.Players {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
	return ids
}

func cloneClaimWindow(c *internal.ClaimWindow) *internal.ClaimWindow {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func clonePendingFlip(p *internal.PendingFlip) *internal.PendingFlip {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func cloneClaimEvent(e *internal.ClaimEventMeta) *internal.ClaimEventMeta {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

func cloneCooldowns(m map[string]time.Time) map[string]time.Time {
	if m == nil {
		return map[string]time.Time{}
	}
	cp := make(map[string]time.Time, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Hash returns a canonical content hash of snap, used by the recorder
// to decide whether a new step is actually distinct from the last one.
func Hash(snap internal.GameSnapshot) string {
	b, _ := json.Marshal(snap)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
