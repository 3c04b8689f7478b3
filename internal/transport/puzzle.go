package transport

import (
	"strings"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/practice"
	"github.com/anagramthief/core/internal/wordform"
)

// toPuzzle converts a wire-shape shared/custom puzzle into a
// practice.Puzzle, minting fresh tile identities for every letter.
func toPuzzle(p practicePuzzle) practice.Puzzle {
	puzzle := practice.Puzzle{CenterTiles: tilesFromLetters(p.CenterLetters)}
	for _, w := range p.ExistingWords {
		tiles := tilesFromLetters(w.Text)
		puzzle.ExistingWords = append(puzzle.ExistingWords, wordform.ExistingWord{
			WordID:  uuid.NewString(),
			OwnerID: w.OwnerID,
			Text:    strings.ToUpper(w.Text),
			TileIDs: tileIDs(tiles),
		})
	}
	return puzzle
}

func tilesFromLetters(letters string) []internal.Tile {
	upper := strings.ToUpper(letters)
	tiles := make([]internal.Tile, 0, len(upper))
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		if c < 'A' || c > 'Z' {
			continue
		}
		tiles = append(tiles, internal.Tile{ID: uuid.NewString(), Letter: c})
	}
	return tiles
}

func tileIDs(tiles []internal.Tile) []string {
	ids := make([]string, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	return ids
}
