package consolidate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagforge/tagforge/internal/domain"
)

func newTestEngine(opts Options) *Engine {
	return New(opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tagTable(entries ...*domain.CanonicalTag) map[string]*domain.CanonicalTag {
	out := make(map[string]*domain.CanonicalTag, len(entries))
	for _, e := range entries {
		out[e.Name] = e
	}
	return out
}

func genre(name string, count int) *domain.CanonicalTag {
	return &domain.CanonicalTag{Name: name, Category: domain.CategoryGenre, Count: count}
}

func unknown(name string, count int) *domain.CanonicalTag {
	return &domain.CanonicalTag{Name: name, Category: domain.CategoryUnknown, Count: count}
}

func TestSuggest_CaseVariants(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("prog-metal", 2966),
		genre("Prog-Metal", 2),
		genre("PROG-METAL", 1),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 2)

	for _, s := range suggestions {
		assert.Equal(t, "prog-metal", s.Primary, "highest count wins as primary")
		assert.Equal(t, domain.ReasonCaseVariant, s.Reason)
		assert.Equal(t, 1.0, s.Confidence)
	}
}

func TestSuggest_HyphenSpaceVariants(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("post-metal", 500),
		genre("post metal", 30),
		genre("postmetal", 4),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 2)

	for _, s := range suggestions {
		assert.Equal(t, "post-metal", s.Primary)
		assert.Equal(t, domain.ReasonHyphenSpaceVariant, s.Reason)
		assert.Equal(t, 1.0, s.Confidence)
	}
}

func TestSuggest_PrimaryTieBreaks(t *testing.T) {
	e := newTestEngine(Options{})

	// Equal counts: shortest string wins, then lexicographic.
	tags := tagTable(
		genre("art-pop", 10),
		genre("art pop", 10),
		genre("artpop", 10),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 2)
	for _, s := range suggestions {
		assert.Equal(t, "artpop", s.Primary)
	}
}

func TestSuggest_MisspellingDistance(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("black metal", 5000),
		genre("blach metal", 3),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "black metal", s.Primary)
	assert.Equal(t, "blach metal", s.Secondary, "the low-count side is always the secondary")
	assert.Equal(t, domain.ReasonMisspelling, s.Reason)
	assert.InDelta(t, 0.9, s.Confidence, 1e-9)
}

func TestSuggest_ConfidenceMonotonicInDistance(t *testing.T) {
	e := newTestEngine(Options{MaxEditDistance: 3})

	oneEdit := e.Suggest(tagTable(genre("black metal", 5000), genre("blach metal", 3)))
	twoEdits := e.Suggest(tagTable(genre("black metal", 5000), genre("blagh metal", 3)))

	require.Len(t, oneEdit, 1)
	require.Len(t, twoEdits, 1)
	assert.Greater(t, oneEdit[0].Confidence, twoEdits[0].Confidence)
}

func TestSuggest_NoMergeWithoutCountAsymmetry(t *testing.T) {
	e := newTestEngine(Options{})

	// Two close, similarly popular tags are two legitimate tags.
	tags := tagTable(
		genre("black metal", 500),
		genre("blech metal", 400),
	)

	assert.Empty(t, e.Suggest(tags))
}

func TestSuggest_NoCrossCategoryMisspellings(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("doom", 5000),
		unknown("dool", 3),
	)

	assert.Empty(t, e.Suggest(tags))
}

func TestSuggest_LowCountUnknownExcluded(t *testing.T) {
	e := newTestEngine(Options{MinUnknownCount: 2})

	// Both sides are single-observation Unknown noise; neither enters the
	// pairwise stage, so nothing is suggested.
	tags := tagTable(
		unknown("zeuhl", 1),
		unknown("zeuhi", 1),
	)

	assert.Empty(t, e.Suggest(tags))
}

func TestSuggest_OneSuggestionPerSecondary(t *testing.T) {
	e := newTestEngine(Options{})

	// "blach metal" is within distance 2 of both popular tags; it must be
	// proposed once, against the more popular of the two.
	tags := tagTable(
		genre("black metal", 5000),
		genre("blank metal", 4000),
		genre("blach metal", 3),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "black metal", suggestions[0].Primary)
	assert.Equal(t, "blach metal", suggestions[0].Secondary)
	assert.Equal(t, domain.ReasonMisspelling, suggestions[0].Reason)
}

func TestSuggest_StructuralRequiresIdenticalTokens(t *testing.T) {
	e := newTestEngine(Options{})

	// Different word multisets whose sorted concatenations coincide
	// ("aa"+"ab" vs "a"+"aab") are not reorderings of each other.
	tags := tagTable(
		genre("aa ab", 10),
		genre("aab a", 9),
	)

	assert.Empty(t, e.Suggest(tags))
}

func TestSuggest_StructuralReordering(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("metal black", 2),
		genre("black metal", 900),
	)

	suggestions := e.Suggest(tags)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	assert.Equal(t, "black metal", s.Primary)
	assert.Equal(t, "metal black", s.Secondary)
	assert.Equal(t, domain.ReasonSimilarityMatch, s.Reason)
	assert.InDelta(t, 0.9, s.Confidence, 1e-9)
}

func TestSuggest_Deterministic(t *testing.T) {
	e := newTestEngine(Options{Workers: 4})

	tags := tagTable(
		genre("black metal", 5000),
		genre("blach metal", 3),
		genre("Black Metal", 12),
		genre("death metal", 3000),
		genre("deathmetal", 40),
		genre("daeth metal", 2),
		unknown("zeuhl", 1),
		genre("metal black", 2),
	)

	first := e.Suggest(tags)
	second := e.Suggest(tags)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second, "same input mapping must yield identical suggestion lists in identical order")
}

func TestSuggest_SingleObservationLeftAlone(t *testing.T) {
	e := newTestEngine(Options{})

	tags := tagTable(
		genre("black metal", 5000),
		unknown("xylophonecore experiments", 1),
	)

	assert.Empty(t, e.Suggest(tags))
}
