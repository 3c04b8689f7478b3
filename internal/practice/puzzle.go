// Package practice implements the solo puzzle solver: scoring a
// submission against the best available play and generating puzzles
// at a target difficulty.
package practice

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/wordform"
)

// Puzzle is a static word-formation problem: a fixed center plus zero
// or more words already claimed by someone else, for the solver to
// work against.
type Puzzle struct {
	CenterTiles   []internal.Tile
	ExistingWords []wordform.ExistingWord
}

// Category is the outcome bucket for a submission, a pure function of
// how its score compares to the best available score.
type Category string

const (
	CategoryPerfect           Category = "perfect"
	CategoryAmazing           Category = "amazing"
	CategoryGreat             Category = "great"
	CategoryGood              Category = "good"
	CategoryOK                Category = "ok"
	CategoryBetterLuckNextTime Category = "better-luck-next-time"
)

// Evaluation is the result of scoring one submission against a puzzle.
type Evaluation struct {
	IsValid       bool
	IsBestPlay    bool
	Score         int
	BestScore     int
	TimedOut      bool
	AllOptions    []wordform.Option
	InvalidReason string
	Category      Category
}

// Solve lists every legal claim available in puzzle.
func Solve(puzzle Puzzle, dict *dictionary.Dictionary) []wordform.Option {
	return wordform.Enumerate(puzzle.CenterTiles, puzzle.ExistingWords, dict)
}

// Evaluate scores submission against puzzle's best available play.
func Evaluate(puzzle Puzzle, submission string, dict *dictionary.Dictionary) Evaluation {
	options := Solve(puzzle, dict)
	bestScore := 0
	if len(options) > 0 {
		bestScore = options[0].Score
	}

	result, err := wordform.ValidateClaim(puzzle.CenterTiles, puzzle.ExistingWords, submission, dict)
	if err != nil {
		return Evaluation{
			IsValid:       false,
			BestScore:     bestScore,
			AllOptions:    options,
			InvalidReason: err.Error(),
			Category:      categorize(0, bestScore),
		}
	}

	score := scoreForWord(options, result.Word)
	return Evaluation{
		IsValid:    true,
		IsBestPlay: bestScore > 0 && score == bestScore,
		Score:      score,
		BestScore:  bestScore,
		AllOptions: options,
		Category:   categorize(score, bestScore),
	}
}

func scoreForWord(options []wordform.Option, word string) int {
	for _, o := range options {
		if o.Word == word {
			return o.Score
		}
	}
	return 0
}

// categorize is a pure function of (score, bestScore) against the
// fixed thresholds: 1.0 perfect, >=0.9 amazing, >=0.75 great, >=0.5
// good, >0 ok, =0 better-luck-next-time.
func categorize(score, bestScore int) Category {
	if bestScore <= 0 {
		if score > 0 {
			return CategoryPerfect
		}
		return CategoryBetterLuckNextTime
	}
	ratio := float64(score) / float64(bestScore)
	switch {
	case ratio >= 1.0:
		return CategoryPerfect
	case ratio >= 0.9:
		return CategoryAmazing
	case ratio >= 0.75:
		return CategoryGreat
	case ratio >= 0.5:
		return CategoryGood
	case ratio > 0:
		return CategoryOK
	default:
		return CategoryBetterLuckNextTime
	}
}

func tilesFromWord(word string) []internal.Tile {
	tiles := make([]internal.Tile, len(word))
	for i := 0; i < len(word); i++ {
		tiles[i] = internal.Tile{ID: uuid.NewString(), Letter: word[i]}
	}
	return tiles
}

// extraMinLength implements the resolved difficulty curve: minimum
// existing-word length grows by one every two tiers.
func extraMinLength(difficulty int) int {
	return (difficulty - 1) / 2
}

// Generate samples a puzzle for the given difficulty (1..5): higher
// difficulty biases toward more and longer existing words, monotone in
// expectation per tier rather than guaranteed per-sample.
func Generate(difficulty int, rng *rand.Rand, dict *dictionary.Dictionary) Puzzle {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	minLen := internal.MinWordLength + extraMinLength(difficulty)
	target := pickWord(dict, rng, minLen, minLen+3)
	puzzle := Puzzle{CenterTiles: tilesFromWord(target)}

	existingCount := difficulty - 1
	for i := 0; i < existingCount; i++ {
		wLen := minLen + i%2
		w := pickWord(dict, rng, wLen, wLen+2)
		if w == "" {
			continue
		}
		puzzle.ExistingWords = append(puzzle.ExistingWords, wordform.ExistingWord{
			WordID:  uuid.NewString(),
			OwnerID: "practice-filler",
			Text:    w,
			TileIDs: tileIDsOf(tilesFromWord(w)),
		})
	}
	return puzzle
}

func tileIDsOf(tiles []internal.Tile) []string {
	ids := make([]string, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}

// pickWord returns a random dictionary word whose length is in
// [minLen, maxLen], trying progressively longer lengths if minLen has
// no entries, and falling back to MIN_WORD_LENGTH if none do.
func pickWord(dict *dictionary.Dictionary, rng *rand.Rand, minLen, maxLen int) string {
	for n := minLen; n <= maxLen; n++ {
		if words := dict.WordsOfLength(n); len(words) > 0 {
			return words[rng.Intn(len(words))]
		}
	}
	if words := dict.WordsOfLength(internal.MinWordLength); len(words) > 0 {
		return words[rng.Intn(len(words))]
	}
	return ""
}
