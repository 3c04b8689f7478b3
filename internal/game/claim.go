package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/replay"
	"github.com/anagramthief/core/internal/wordform"
)

// ClaimIntent opens a claim window for playerID. Guards: Idle phase,
// no active cooldown for playerID.
func ClaimIntent(room *internal.Room, playerID string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	g := room.Game
	if g == nil || room.Status != internal.RoomInGame || g.Phase != internal.PhaseIdle {
		return refuse(RefusalWrongPhase)
	}
	if endsAt, ok := g.ClaimCooldowns[playerID]; ok && endsAt.After(time.Now()) {
		return refuse(RefusalOnCooldown)
	}

	now := time.Now()
	endsAt := now.Add(time.Duration(room.ClaimTimerSeconds) * time.Second)
	g.Phase = internal.PhaseClaiming
	g.ClaimWindow = &internal.ClaimWindow{PlayerID: playerID, EndsAt: endsAt}
	g.Timer.Cancel(slotAutoFlip)
	g.Timer.Start(slotClaimWindow, time.Duration(room.ClaimTimerSeconds)*time.Second, func() {
		fireLocked(room, claimWindowFired)
	})
	return nil
}

// Claim submits word against an open claim window. No failure kind
// consumes the window early: on failure the window stays open if time
// remains, otherwise the player goes on cooldown and the window
// closes.
func Claim(room *internal.Room, playerID, word string) (*wordform.ClaimResult, error) {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	g := room.Game
	if g == nil || room.Status != internal.RoomInGame || g.Phase != internal.PhaseClaiming || g.ClaimWindow == nil {
		return nil, refuse(RefusalWrongPhase)
	}
	if g.ClaimWindow.PlayerID != playerID {
		return nil, refuse(RefusalNotYourTurn)
	}

	existing := existingWords(room)
	result, valErr := wordform.ValidateClaim(g.CenterTiles, existing, word, g.Dict)
	if valErr != nil {
		now := time.Now()
		if now.Before(g.ClaimWindow.EndsAt) {
			return nil, valErr
		}
		closeClaimWindowOnCooldown(room, playerID, now)
		return nil, valErr
	}

	applyClaim(room, playerID, result, internal.SourceManual, false, time.Now())
	g.Timer.Cancel(slotClaimWindow)
	g.ClaimWindow = nil
	g.Phase = internal.PhaseIdle
	scheduleAutoFlipIfEnabled(room)
	return result, nil
}

func claimWindowFired(room *internal.Room) {
	g := room.Game
	if g == nil || g.Phase != internal.PhaseClaiming || g.ClaimWindow == nil {
		return
	}
	closeClaimWindowOnCooldown(room, g.ClaimWindow.PlayerID, time.Now())
}

func closeClaimWindowOnCooldown(room *internal.Room, playerID string, now time.Time) {
	g := room.Game
	g.ClaimCooldowns[playerID] = now.Add(time.Duration(room.ClaimTimerSeconds) * time.Second)
	g.ClaimWindow = nil
	g.Phase = internal.PhaseIdle
	replay.Record(room, internal.StepClaimExpired, now)
	scheduleAutoFlipIfEnabled(room)
}

// existingWords flattens every player's owned words into the engine's
// ExistingWord view.
func existingWords(room *internal.Room) []wordform.ExistingWord {
	var out []wordform.ExistingWord
	for _, p := range room.Players {
		for _, w := range p.Words {
			out = append(out, wordform.ExistingWord{
				WordID:  w.ID,
				OwnerID: p.ID,
				Text:    w.Text,
				TileIDs: w.TileIDs,
			})
		}
	}
	return out
}

// applyClaim performs the tile bookkeeping for a successful claim,
// manual or pre-steal: remove consumed tiles from the center, destroy
// the victim word on a steal, append the new word to the claimant, and
// record the claim event + replay step. Callers must hold room.Mu.
func applyClaim(room *internal.Room, claimantID string, result *wordform.ClaimResult, source internal.ClaimSource, movedToBottom bool, now time.Time) {
	g := room.Game

	g.CenterTiles = removeTiles(g.CenterTiles, result.ConsumedFromCenter)

	var replacedWordID string
	if result.Kind == wordform.SourceSteal {
		if victim, ok := room.Players[result.StolenOwnerID]; ok {
			if _, idx := victim.OwnsWord(result.StolenWordID); idx >= 0 {
				victim.RemoveWord(idx)
				victim.RecomputeScore()
			}
		}
		replacedWordID = result.StolenWordID
	}

	newWord := &internal.Word{
		ID:        uuid.NewString(),
		Text:      result.Word,
		TileIDs:   result.ResultTileIDs,
		OwnerID:   claimantID,
		CreatedAt: now,
	}
	claimant := room.Players[claimantID]
	claimant.Words = append(claimant.Words, newWord)
	claimant.RecomputeScore()

	g.LastClaimAt = now
	g.LastClaimEvent = &internal.ClaimEventMeta{
		EventID:                           uuid.NewString(),
		WordID:                            newWord.ID,
		ClaimantID:                        claimantID,
		ReplacedWordID:                    replacedWordID,
		Source:                            source,
		MovedToBottomOfPreStealPrecedence: movedToBottom,
	}

	replay.Record(room, internal.StepClaimSuccess, now)
}

// removeTiles drops exactly the tiles named by ids (by id, not by
// letter) from tiles, preserving the order of what remains.
func removeTiles(tiles []internal.Tile, ids []string) []internal.Tile {
	if len(ids) == 0 {
		return tiles
	}
	toRemove := make(map[string]int, len(ids))
	for _, id := range ids {
		toRemove[id]++
	}
	out := tiles[:0]
	for _, t := range tiles {
		if toRemove[t.ID] > 0 {
			toRemove[t.ID]--
			continue
		}
		out = append(out, t)
	}
	return out
}
