// Package wordform implements the anagram/steal enumeration and claim
// validation that is the technical heart of the game: given the shared
// center letters and the words already on the table, it decides which
// words can legally be formed or stolen, and scores them.
package wordform

import (
	"sort"
	"strings"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
)

// FormSource distinguishes a pure center-formed claim from a steal.
type FormSource string

const (
	SourceCenter FormSource = "center"
	SourceSteal  FormSource = "steal"
)

// FailureKind enumerates why a submitted word could not be claimed. The
// Error() string is the literal user-facing message from the claim
// failure set.
type FailureKind string

const (
	EmptyWord           FailureKind = "empty-word"
	NonLetters          FailureKind = "non-letters"
	NotInDictionary     FailureKind = "not-in-dictionary"
	InsufficientLetters FailureKind = "insufficient-letters"
	IllegalSteal        FailureKind = "illegal-steal"
	SameFamily          FailureKind = "same-family"
)

var failureMessages = map[FailureKind]string{
	EmptyWord:           "Enter a word to claim.",
	NonLetters:          "Word must contain only letters A-Z.",
	NotInDictionary:     "Word is not valid.",
	InsufficientLetters: "Not enough tiles in the center to make that word.",
	IllegalSteal:        "Word is not valid.",
	SameFamily:          "Word is not valid.",
}

// ValidationError carries a FailureKind and renders the user-facing
// claim-failure message for it.
type ValidationError struct {
	Kind FailureKind
}

func (e *ValidationError) Error() string {
	return failureMessages[e.Kind]
}

func fail(kind FailureKind) (*ClaimResult, *ValidationError) {
	return nil, &ValidationError{Kind: kind}
}

// ExistingWord is the minimal view of a word already owned by some
// player, as seen by the engine.
type ExistingWord struct {
	WordID  string
	OwnerID string
	Text    string
	TileIDs []string
}

// Option is one row of an Enumerate result.
type Option struct {
	Word          string
	Source        FormSource
	StolenFrom    string // existing word text, only set for steals
	StolenOwnerID string
	Score         int
}

// ClaimResult is the outcome of a successful ValidateClaim: which
// tiles move from the center, and the full tile set of the resulting
// word (identical to ConsumedFromCenter for a center-formed claim,
// the victim's tiles plus the new ones for a steal).
type ClaimResult struct {
	Kind               FormSource
	Word               string
	ConsumedFromCenter []string
	ResultTileIDs      []string
	StolenWordID       string
	StolenOwnerID      string
}

func normalizeWord(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

func onlyLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func letterCounts(word string) map[byte]int {
	counts := make(map[byte]int)
	for i := 0; i < len(word); i++ {
		counts[word[i]]++
	}
	return counts
}

// centerIndex groups live center tiles by letter, preserving reveal
// order (earliest-created first) within each letter's bucket.
type centerIndex struct {
	counts map[byte]int
	tiles  map[byte][]internal.Tile
}

func buildCenterIndex(center []internal.Tile) centerIndex {
	idx := centerIndex{counts: make(map[byte]int), tiles: make(map[byte][]internal.Tile)}
	for _, t := range center {
		idx.counts[t.Letter]++
		idx.tiles[t.Letter] = append(idx.tiles[t.Letter], t)
	}
	return idx
}

// fits reports whether counts has at least need[c] of every letter c.
func fits(counts, need map[byte]int) bool {
	for c, n := range need {
		if counts[c] < n {
			return false
		}
	}
	return true
}

// assign picks need[c] tile IDs per letter from idx, in reveal order.
// Caller must have already confirmed fits(idx.counts, need).
func (idx centerIndex) assign(need map[byte]int) []string {
	var ids []string
	for c, n := range need {
		for i := 0; i < n; i++ {
			ids = append(ids, idx.tiles[c][i].ID)
		}
	}
	return ids
}

// subtractMultiset returns word's letter counts minus victim's, and
// whether victim's letters are fully covered by word (i.e. victim could
// plausibly be the base of a steal producing word).
func subtractMultiset(word, victim string) (map[byte]int, bool) {
	wc := letterCounts(word)
	vc := letterCounts(victim)
	for c, n := range vc {
		if wc[c] < n {
			return nil, false
		}
		wc[c] -= n
		if wc[c] == 0 {
			delete(wc, c)
		}
	}
	return wc, true
}

func sumCounts(counts map[byte]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// isSubsequence reports whether sub's characters appear, in order, as a
// (not necessarily contiguous) subsequence of full. A true result means
// full could be built by only inserting letters into sub without
// reordering sub's own letters — the "substring/extension" case a
// steal must NOT be.
func isSubsequence(sub, full string) bool {
	i := 0
	for j := 0; i < len(sub) && j < len(full); j++ {
		if sub[i] == full[j] {
			i++
		}
	}
	return i == len(sub)
}

func tryCenterFormed(word string, idx centerIndex) ([]string, bool) {
	need := letterCounts(word)
	if !fits(idx.counts, need) {
		return nil, false
	}
	return idx.assign(need), true
}

// ValidateClaim checks whether submitted can be legally claimed against
// center and existing: normalize, length/dictionary check, then try
// center-formed, then try a steal against each existing word,
// preferring the longest valid victim when more than one steal would
// work.
func ValidateClaim(center []internal.Tile, existing []ExistingWord, submitted string, dict *dictionary.Dictionary) (*ClaimResult, *ValidationError) {
	word := normalizeWord(submitted)
	if word == "" {
		return fail(EmptyWord)
	}
	if !onlyLetters(word) {
		return fail(NonLetters)
	}
	if len(word) < internal.MinWordLength || !dict.Contains(word) {
		return fail(NotInDictionary)
	}

	idx := buildCenterIndex(center)
	if consumed, ok := tryCenterFormed(word, idx); ok {
		return &ClaimResult{Kind: SourceCenter, Word: word, ConsumedFromCenter: consumed, ResultTileIDs: consumed}, nil
	}

	type steal struct {
		ew               ExistingWord
		consumed         []string
		illegalExtension bool
		sameFamily       bool
	}
	var best *steal
	sawAnyPlausible := false

	for _, ew := range existing {
		if strings.EqualFold(ew.Text, word) {
			continue
		}
		remainder, covered := subtractMultiset(word, ew.Text)
		if !covered || sumCounts(remainder) < 1 {
			continue
		}
		if !fits(idx.counts, remainder) {
			continue
		}
		sawAnyPlausible = true

		cand := steal{ew: ew}
		switch {
		case dict.SameFamily(word, ew.Text):
			cand.sameFamily = true
		case isSubsequence(ew.Text, word):
			cand.illegalExtension = true
		default:
			cand.consumed = idx.assign(remainder)
		}

		if cand.consumed != nil && (best == nil || best.consumed == nil || len(ew.Text) > len(best.ew.Text)) {
			best = &cand
		} else if cand.consumed == nil && best == nil {
			best = &cand
		}
	}

	if best != nil && best.consumed != nil {
		resultTiles := append(append([]string{}, best.ew.TileIDs...), best.consumed...)
		return &ClaimResult{
			Kind:               SourceSteal,
			Word:               word,
			ConsumedFromCenter: best.consumed,
			ResultTileIDs:      resultTiles,
			StolenWordID:       best.ew.WordID,
			StolenOwnerID:      best.ew.OwnerID,
		}, nil
	}
	if !sawAnyPlausible {
		return fail(InsufficientLetters)
	}
	if best != nil && best.sameFamily {
		return fail(SameFamily)
	}
	if best != nil && best.illegalExtension {
		return fail(IllegalSteal)
	}
	return fail(InsufficientLetters)
}

// Enumerate lists every legal claim available against center and
// existing, scored and sorted by descending score then ascending word.
func Enumerate(center []internal.Tile, existing []ExistingWord, dict *dictionary.Dictionary) []Option {
	idx := buildCenterIndex(center)
	best := make(map[string]Option)

	consider := func(opt Option) {
		if cur, ok := best[opt.Word]; !ok || opt.Score > cur.Score {
			best[opt.Word] = opt
		}
	}

	maxLen := len(center)
	for _, ew := range existing {
		if l := len(ew.Text) + len(center); l > maxLen {
			maxLen = l
		}
	}

	for n := internal.MinWordLength; n <= maxLen; n++ {
		for _, w := range dict.WordsOfLength(n) {
			need := letterCounts(w)
			if fits(idx.counts, need) {
				consider(Option{Word: w, Source: SourceCenter, Score: len(w)})
			}
		}
	}

	for _, ew := range existing {
		for n := len(ew.Text) + 1; n <= maxLen; n++ {
			for _, w := range dict.WordsOfLength(n) {
				if strings.EqualFold(w, ew.Text) {
					continue
				}
				remainder, covered := subtractMultiset(w, ew.Text)
				if !covered || sumCounts(remainder) < 1 || !fits(idx.counts, remainder) {
					continue
				}
				if isSubsequence(ew.Text, w) {
					continue
				}
				if dict.SameFamily(w, ew.Text) {
					continue
				}
				consider(Option{
					Word:          w,
					Source:        SourceSteal,
					StolenFrom:    ew.Text,
					StolenOwnerID: ew.OwnerID,
					Score:         len(w) + len(ew.Text),
				})
			}
		}
	}

	options := make([]Option, 0, len(best))
	for _, o := range best {
		options = append(options, o)
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Score != options[j].Score {
			return options[i].Score > options[j].Score
		}
		return options[i].Word < options[j].Word
	})
	return options
}
