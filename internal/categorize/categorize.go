// Package categorize assigns a category to each canonical tag.
package categorize

import (
	"strings"

	"github.com/tagforge/tagforge/internal/domain"
	"github.com/tagforge/tagforge/internal/rules"
)

// Categorizer is a fixed-priority classifier over the curated vocabularies.
// Precedence is Regional > StyleModifier > Genre > Unknown; ties are resolved
// by that order alone, never by frequency.
type Categorizer struct {
	tables *rules.Tables
}

// New creates a categorizer backed by the given rule tables.
func New(tables *rules.Tables) *Categorizer {
	return &Categorizer{tables: tables}
}

// Categorize classifies one canonical tag.
//
// Regional is checked first: a place name that happens to look like an
// adjective must not be absorbed as a style modifier or genre.
func (c *Categorizer) Categorize(canonical string) domain.Category {
	tokens := tokenize(canonical)

	if c.isRegional(canonical, tokens) {
		return domain.CategoryRegional
	}
	if c.isStyleModifier(canonical, tokens) {
		return domain.CategoryStyleModifier
	}
	if c.isGenre(tokens) {
		return domain.CategoryGenre
	}
	return domain.CategoryUnknown
}

// CategorizeAll classifies a set of canonical tags.
func (c *Categorizer) CategorizeAll(names []string) map[string]domain.Category {
	out := make(map[string]domain.Category, len(names))
	for _, name := range names {
		out[name] = c.Categorize(name)
	}
	return out
}

// isRegional matches known place names as substrings, location codes as
// exact tokens, and "city, country" shaped strings.
func (c *Categorizer) isRegional(canonical string, tokens []string) bool {
	if c.tables.IsLocation(canonical) {
		return true
	}
	for _, tok := range tokens {
		if c.tables.IsLocationCode(tok) {
			return true
		}
	}
	// "portland, oregon" style: regional if any comma-separated part is a
	// known place.
	if strings.Contains(canonical, ",") {
		for _, part := range strings.Split(canonical, ",") {
			if c.tables.IsLocation(strings.TrimSpace(part)) {
				return true
			}
		}
	}
	return false
}

// isStyleModifier matches standalone qualifiers only. A modifier paired with
// a genre root ("melodic death metal") belongs to the Genre branch so the
// hierarchy builder sees it.
func (c *Categorizer) isStyleModifier(canonical string, tokens []string) bool {
	if c.tables.IsStyleModifier(canonical) {
		return true
	}
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !c.tables.IsStyleModifier(tok) {
			return false
		}
	}
	return true
}

// isGenre matches tags containing a known genre root anywhere.
func (c *Categorizer) isGenre(tokens []string) bool {
	for _, tok := range tokens {
		if c.tables.IsGenreRoot(tok) {
			return true
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}
