package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagforge/tagforge/internal/domain"
)

func TestDefaults_Lookups(t *testing.T) {
	tables := Defaults()

	assert.Equal(t, "atmospheric", tables.CorrectWord("atmosheric"))
	assert.Equal(t, "doom", tables.CorrectWord("doom"), "unknown tokens pass through unchanged")

	assert.Equal(t, "drum and bass", tables.CorrectPhrase("dnb"))
	assert.Equal(t, "black metal", tables.CorrectPhrase("black metal"))

	assert.True(t, tables.SuffixWeld("black", "gaze"))
	assert.False(t, tables.SuffixWeld("new", "wave"), "exception pairs stay two words")

	assert.True(t, tables.Hyphenate("post", "metal"))
	assert.False(t, tables.Hyphenate("black", "metal"))

	assert.True(t, tables.IsLocation("norwegian black metal"))
	assert.True(t, tables.IsLocation("usa"))
	assert.False(t, tables.IsLocation("black metal"))

	assert.True(t, tables.IsLocationCode("uk"))
	assert.False(t, tables.IsLocationCode("ukulele"), "codes never match as substrings")

	assert.True(t, tables.IsStyleModifier("atmospheric"))
	assert.True(t, tables.IsGenreRoot("metal"))

	parent, ok := tables.SeedParent("grindcore")
	require.True(t, ok)
	assert.Equal(t, "metal", parent)

	_, ok = tables.SeedParent("metal")
	assert.False(t, ok)
}

func TestDefaults_ReportsKnownOverlap(t *testing.T) {
	tables := Defaults()

	// "ambient" is deliberately both a modifier and a genre root; the overlap
	// must surface as a conflict rather than silently picking a side.
	var found bool
	for _, c := range tables.Conflicts() {
		if c.Kind == domain.ConflictRuleTable {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFinalize_DetectsHyphenSuffixOverlap(t *testing.T) {
	tables := &Tables{
		SuffixCompounds: []string{"core"},
		HyphenCompounds: []string{"metal core"},
		GenreRoots:      []string{"metal"},
	}
	tables.finalize()

	conflicts := tables.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictRuleTable, conflicts[0].Kind)
	assert.Contains(t, conflicts[0].Detail, "metal core")
}

func TestFinalize_DetectsChainedMisspellings(t *testing.T) {
	tables := &Tables{
		WordMisspellings: map[string]string{
			"trsh":  "trash",
			"trash": "thrash",
		},
		SuffixCompounds: []string{"core"},
		GenreRoots:      []string{"metal"},
	}
	tables.finalize()

	require.Len(t, tables.Conflicts(), 1)
	assert.Contains(t, tables.Conflicts()[0].Detail, `"trsh"`)
}
