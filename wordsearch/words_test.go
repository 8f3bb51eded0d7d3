package wordsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "SUNSET", NormalizeWord("sunset"))
	assert.Equal(t, "ICECREAM", NormalizeWord(" Ice-Cream! "))
	assert.Equal(t, "CAFE", NormalizeWord("café"))
	assert.Equal(t, "", NormalizeWord("123"))
}

func TestNormalizeWords(t *testing.T) {
	got := NormalizeWords([]string{"tree", "Sky", "TREE", "go", "ocean blue", "42", "sky"})
	assert.Equal(t, []string{"TREE", "SKY", "OCEANBLUE"}, got)
	assert.Empty(t, NormalizeWords(nil))
}

func TestTierCheckCount(t *testing.T) {
	easy := DefaultTiers()[Easy]

	assert.NoError(t, easy.CheckCount(5))
	assert.NoError(t, easy.CheckCount(10))
	assert.EqualError(t, easy.CheckCount(4), "add 1 more word")
	assert.EqualError(t, easy.CheckCount(2), "add 3 more words")
	assert.EqualError(t, easy.CheckCount(12), "remove 2 words")
}

func TestTiersLookup(t *testing.T) {
	tiers := DefaultTiers()
	require.NoError(t, tiers.Validate())

	medium, ok := tiers.Lookup("MEDIUM")
	require.True(t, ok)
	assert.Equal(t, 15, medium.Size)
	assert.True(t, medium.Diagonals)

	easy, ok := tiers.Lookup(Easy)
	require.True(t, ok)
	assert.False(t, easy.Diagonals)

	_, ok = tiers.Lookup("hard")
	assert.False(t, ok)
}

func TestTiersValidate(t *testing.T) {
	assert.Error(t, Tiers{}.Validate())
	assert.Error(t, Tiers{Easy: {Size: 0, MinWords: 1, MaxWords: 2}}.Validate())
	assert.Error(t, Tiers{Easy: {Size: 5, MinWords: 4, MaxWords: 2}}.Validate())
}
