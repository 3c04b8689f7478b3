package bag

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBagHasFullDistribution(t *testing.T) {
	b := New(rand.New(rand.NewSource(1)))
	require.Equal(t, 98, b.Count())

	counts := map[byte]int{}
	for b.Count() > 0 {
		tile := b.DrawOne()
		counts[tile.Letter]++
	}
	for letter, want := range Distribution {
		require.Equal(t, want, counts[letter], "letter %c", letter)
	}
}

func TestDrawOneEmptiesBag(t *testing.T) {
	b := New(rand.New(rand.NewSource(2)))
	for b.Count() > 0 {
		require.NotNil(t, b.DrawOne())
	}
	require.Nil(t, b.DrawOne())
	require.Equal(t, 0, b.Count())
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	a := New(rand.New(rand.NewSource(42)))
	b := New(rand.New(rand.NewSource(42)))
	for i := 0; i < 98; i++ {
		ta, tb := a.DrawOne(), b.DrawOne()
		require.Equal(t, ta.Letter, tb.Letter)
	}
}
