package game

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/wordform"
)

// PreStealAdd appends a new armed auto-claim entry to playerID's list.
// Only format is validated here (letters A-Z, non-empty); whether it
// can ever actually fire is re-checked at arm time against the live
// center and existing words.
func PreStealAdd(room *internal.Room, playerID, triggerLetters, claimWord string) (*internal.PreStealEntry, error) {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	if room.Game == nil || !room.PreStealEnabled {
		return nil, refuse(RefusalNoPreSteal)
	}
	player, ok := room.Players[playerID]
	if !ok {
		return nil, refuse(RefusalNotFound)
	}
	trigger := normalizeLetters(triggerLetters)
	claim := normalizeLetters(claimWord)
	if trigger == "" || claim == "" || len(claim) < internal.MinWordLength {
		return nil, refuse(RefusalInvalidFormat)
	}
	if len(trigger) != len(strings.TrimSpace(triggerLetters)) || len(claim) != len(strings.TrimSpace(claimWord)) {
		return nil, refuse(RefusalInvalidFormat)
	}

	entry := internal.PreStealEntry{
		ID:             uuid.NewString(),
		TriggerLetters: trigger,
		ClaimWord:      claim,
		CreatedAt:      time.Now(),
	}
	player.PreStealEntries = append(player.PreStealEntries, entry)
	return &entry, nil
}

// PreStealRemove deletes the named entry from playerID's list, if present.
func PreStealRemove(room *internal.Room, playerID, entryID string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	player, ok := room.Players[playerID]
	if !ok {
		return refuse(RefusalNotFound)
	}
	for i, e := range player.PreStealEntries {
		if e.ID == entryID {
			player.PreStealEntries = append(player.PreStealEntries[:i], player.PreStealEntries[i+1:]...)
			return nil
		}
	}
	return refuse(RefusalNotFound)
}

// PreStealReorder rewrites playerID's pre-steal entry order to match
// orderedIDs exactly; any entry id not named is dropped, any name not
// matching a live entry is ignored.
func PreStealReorder(room *internal.Room, playerID string, orderedIDs []string) error {
	room.Mu.Lock()
	defer room.Mu.Unlock()

	player, ok := room.Players[playerID]
	if !ok {
		return refuse(RefusalNotFound)
	}
	byID := make(map[string]internal.PreStealEntry, len(player.PreStealEntries))
	for _, e := range player.PreStealEntries {
		byID[e.ID] = e
	}
	reordered := make([]internal.PreStealEntry, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		if e, ok := byID[id]; ok {
			reordered = append(reordered, e)
		}
	}
	player.PreStealEntries = reordered
	return nil
}

func normalizeLetters(s string) string {
	s = upperLettersOnly(s)
	return s
}

func upperLettersOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-('a'-'A'))
		case c >= 'A' && c <= 'Z':
			out = append(out, c)
		}
	}
	return string(out)
}

// arbitratePreSteal runs immediately after a flip reveal adds tiles to
// the center: the first entry, scanning players in precedence order
// and each player's entries in stored order, whose trigger letters fit
// the center and whose claim word still validates, fires automatically.
// Callers must hold room.Mu.
func arbitratePreSteal(room *internal.Room, now time.Time) {
	g := room.Game
	if g == nil || !g.PreStealEnabled || g.Dict == nil {
		return
	}

	for _, playerID := range append([]string(nil), g.PrecedenceOrder...) {
		player, ok := room.Players[playerID]
		if !ok {
			continue
		}
		for _, entry := range player.PreStealEntries {
			if !triggerFits(entry.TriggerLetters, g.CenterTiles) {
				continue
			}
			result, err := wordform.ValidateClaim(g.CenterTiles, existingWords(room), entry.ClaimWord, g.Dict)
			if err != nil {
				continue
			}
			applyClaim(room, playerID, result, internal.SourcePreSteal, true, now)
			g.LastClaimEvent.MovedToBottomOfPreStealPrecedence = true
			demoteToBottom(g, playerID)
			return
		}
	}
}

func demoteToBottom(g *internal.Game, playerID string) {
	order := removeID(g.PrecedenceOrder, playerID)
	g.PrecedenceOrder = append(order, playerID)
}

func triggerFits(triggerLetters string, center []internal.Tile) bool {
	need := make(map[byte]int)
	for i := 0; i < len(triggerLetters); i++ {
		need[triggerLetters[i]]++
	}
	have := make(map[byte]int)
	for _, t := range center {
		have[t.Letter]++
	}
	for c, n := range need {
		if have[c] < n {
			return false
		}
	}
	return true
}

