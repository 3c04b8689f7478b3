package practice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
	"github.com/anagramthief/core/internal/wordform"
)

func tiles(word string) []internal.Tile {
	out := make([]internal.Tile, len(word))
	for i := range word {
		out[i] = internal.Tile{ID: string(rune('a' + i)), Letter: word[i]}
	}
	return out
}

func TestEvaluatePerfectPlay(t *testing.T) {
	dict := dictionary.Default()
	puzzle := Puzzle{CenterTiles: tiles("TEAM")}

	eval := Evaluate(puzzle, "TEAM", dict)
	require.True(t, eval.IsValid)
	require.True(t, eval.IsBestPlay)
	require.Equal(t, CategoryPerfect, eval.Category)
	require.Equal(t, eval.Score, eval.BestScore)
}

func TestEvaluateInvalidSubmission(t *testing.T) {
	dict := dictionary.Default()
	puzzle := Puzzle{CenterTiles: tiles("TEAM")}

	eval := Evaluate(puzzle, "ZZZZ", dict)
	require.False(t, eval.IsValid)
	require.NotEmpty(t, eval.InvalidReason)
	require.Equal(t, CategoryBetterLuckNextTime, eval.Category)
}

func TestEvaluateStealIsBestPlay(t *testing.T) {
	dict := dictionary.Default()
	puzzle := Puzzle{
		CenterTiles:   tiles("S"),
		ExistingWords: []wordform.ExistingWord{{WordID: "w1", OwnerID: "p1", Text: "RATE", TileIDs: []string{"r", "a", "t", "e"}}},
	}
	// With only S in the center nothing is center-formed; STARE steals
	// RATE for 5+4 = 9, the top score available.
	eval := Evaluate(puzzle, "STARE", dict)
	require.True(t, eval.IsValid)
	require.True(t, eval.IsBestPlay)
}

func TestGenerateProducesSolvablePuzzle(t *testing.T) {
	dict := dictionary.Default()
	rng := rand.New(rand.NewSource(7))

	for difficulty := 1; difficulty <= 5; difficulty++ {
		puzzle := Generate(difficulty, rng, dict)
		options := Solve(puzzle, dict)
		require.NotEmpty(t, options, "difficulty %d should yield at least one option", difficulty)
		require.LessOrEqual(t, len(puzzle.ExistingWords), difficulty-1)
	}
}
