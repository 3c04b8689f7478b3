// Package bag implements the fixed Scrabble-like letter distribution
// and the shuffled draw pile built from it.
package bag

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/anagramthief/core/internal"
)

// Distribution is the fixed Scrabble-like letter count per letter,
// A=9 ... Z=1, totalling 98 tiles.
var Distribution = map[byte]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2,
	'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2,
	'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1,
	'Y': 2, 'Z': 1,
}

// Bag is a shuffled draw pile of tiles. It is not safe for concurrent
// use; callers hold the owning Room's lock while touching it, per the
// single-logical-thread-per-room concurrency model.
type Bag struct {
	tiles []internal.Tile
}

// New builds a full bag from Distribution and shuffles it with rng. A
// nil rng uses a time-seeded source; tests pass a seeded *rand.Rand for
// deterministic ordering.
func New(rng *rand.Rand) *Bag {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	tiles := make([]internal.Tile, 0, 98)
	for letter := byte('A'); letter <= 'Z'; letter++ {
		for i := 0; i < Distribution[letter]; i++ {
			tiles = append(tiles, internal.Tile{ID: uuid.NewString(), Letter: letter})
		}
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})
	return &Bag{tiles: tiles}
}

// DrawOne removes and returns the top tile, or nil if the bag is empty.
func (b *Bag) DrawOne() *internal.Tile {
	if len(b.tiles) == 0 {
		return nil
	}
	t := b.tiles[len(b.tiles)-1]
	b.tiles = b.tiles[:len(b.tiles)-1]
	return &t
}

// Count returns the number of tiles remaining.
func (b *Bag) Count() int {
	return len(b.tiles)
}

// Tiles returns a copy of the remaining draw pile in draw order: the
// last element is the next tile DrawOne would return. Used by the game
// package to seed internal.Game.Bag, which stores the pile as a plain
// slice to avoid an import cycle (internal/bag already imports
// internal for the Tile type).
func (b *Bag) Tiles() []internal.Tile {
	return append([]internal.Tile(nil), b.tiles...)
}

// LettersRemaining returns a letter -> remaining-count mapping for
// every letter still in the bag.
func (b *Bag) LettersRemaining() map[string]int {
	counts := make(map[string]int)
	for _, t := range b.tiles {
		counts[string(t.Letter)]++
	}
	return counts
}
