package wordform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anagramthief/core/internal"
	"github.com/anagramthief/core/internal/dictionary"
)

func tilesFor(word string) []internal.Tile {
	tiles := make([]internal.Tile, len(word))
	for i := range word {
		tiles[i] = internal.Tile{ID: string(rune('a' + i)), Letter: word[i]}
	}
	return tiles
}

func TestEnumerateTeamCenter(t *testing.T) {
	dict := dictionary.Default()
	center := tilesFor("TEAM")

	options := Enumerate(center, nil, dict)

	var words []string
	for _, o := range options {
		words = append(words, o.Word)
		require.Equal(t, SourceCenter, o.Source)
		require.Equal(t, 4, o.Score)
	}
	require.Equal(t, []string{"MATE", "MEAT", "META", "TAME", "TEAM"}, words)
}

func TestValidateClaimSteal(t *testing.T) {
	dict := dictionary.Default()
	center := []internal.Tile{{ID: "s", Letter: 'S'}}
	existing := []ExistingWord{{WordID: "w1", OwnerID: "p1", Text: "RATE", TileIDs: []string{"r", "a", "t", "e"}}}

	result, err := ValidateClaim(center, existing, "STARE", dict)
	require.Nil(t, err)
	require.Equal(t, SourceSteal, result.Kind)
	require.Equal(t, "p1", result.StolenOwnerID)
	require.Equal(t, []string{"s"}, result.ConsumedFromCenter)
	require.ElementsMatch(t, []string{"r", "a", "t", "e", "s"}, result.ResultTileIDs)
}

func TestValidateClaimRejectsSubstringExtension(t *testing.T) {
	// TRAIN->STRAIN is a front-inserted extension with no same-family
	// relation (unlike RATE->RATES, which is also a same-family
	// derivation and so is rejected as SameFamily instead, checked
	// first): it isolates the IllegalSteal path.
	dict := dictionary.Default()
	center := tilesFor("S")
	existing := []ExistingWord{{WordID: "w1", OwnerID: "p1", Text: "TRAIN", TileIDs: []string{"t", "r", "a", "i", "n"}}}

	_, err := ValidateClaim(center, existing, "STRAIN", dict)
	require.NotNil(t, err)
	require.Equal(t, IllegalSteal, err.Kind)
}

func TestValidateClaimRejectsSameFamily(t *testing.T) {
	dict := dictionary.Default()
	center := tilesFor("S")
	existing := []ExistingWord{{WordID: "w1", OwnerID: "p1", Text: "MILE", TileIDs: []string{"m", "i", "l", "e"}}}

	_, err := ValidateClaim(center, existing, "MILES", dict)
	require.NotNil(t, err)
	require.Equal(t, SameFamily, err.Kind)
}

func TestValidateClaimEmptyAndNonLetters(t *testing.T) {
	dict := dictionary.Default()
	_, err := ValidateClaim(nil, nil, "   ", dict)
	require.Equal(t, EmptyWord, err.Kind)

	_, err = ValidateClaim(nil, nil, "te4m", dict)
	require.Equal(t, NonLetters, err.Kind)
}

func TestValidateClaimInsufficientLetters(t *testing.T) {
	dict := dictionary.Default()
	center := tilesFor("TE")
	_, err := ValidateClaim(center, nil, "TEAM", dict)
	require.Equal(t, InsufficientLetters, err.Kind)
}
