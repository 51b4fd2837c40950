// Package rules holds the curated rule tables driving normalization,
// categorization, and hierarchy decisions. Rules are data, not code: tables
// load from YAML and can be updated without touching engine logic.
package rules

import (
	"fmt"
	"strings"

	"github.com/tagforge/tagforge/internal/domain"
)

// Tables is the full curated rule set. The exported fields mirror the YAML
// file format; lookup maps are compiled once by finalize and never mutated
// afterwards, so a Tables value is safe for concurrent readers.
type Tables struct {
	// WordMisspellings maps a single misspelled token to its correction.
	WordMisspellings map[string]string `yaml:"word_misspellings"`

	// PhraseMisspellings maps a whole tag to its correction. Covers fixes
	// that aren't decomposable word-by-word (transliterations, slang forms).
	PhraseMisspellings map[string]string `yaml:"phrase_misspellings"`

	// SuffixCompounds lists suffix tokens that weld onto the preceding word
	// as a single word: "gaze" turns "black gaze" into "blackgaze".
	SuffixCompounds []string `yaml:"suffix_compounds" validate:"required,min=1"`

	// SuffixExceptions lists word pairs exempt from suffix welding
	// ("new wave" stays two words even though "wave" is a weld suffix).
	SuffixExceptions []string `yaml:"suffix_exceptions"`

	// HyphenCompounds lists word pairs rendered hyphenated, stored
	// space-separated: "post metal" renders as "post-metal".
	HyphenCompounds []string `yaml:"hyphen_compounds"`

	// Locations lists known place names matched as substrings.
	Locations []string `yaml:"locations"`

	// LocationCodes lists short country/state codes matched token-exact,
	// never as substrings.
	LocationCodes []string `yaml:"location_codes"`

	// StyleModifiers lists adjectival qualifiers ("atmospheric", "melodic").
	StyleModifiers []string `yaml:"style_modifiers"`

	// GenreRoots lists root genre words ("metal", "rock", "jazz").
	GenreRoots []string `yaml:"genre_roots" validate:"required,min=1"`

	// HierarchySeeds maps a child genre to its parent for lineages that
	// substring structure cannot derive ("grindcore" under "metal").
	HierarchySeeds map[string]string `yaml:"hierarchy_seeds"`

	suffixSet    map[string]bool
	suffixExcept map[string]bool
	hyphenSet    map[string]bool
	locationSet  map[string]bool
	codeSet      map[string]bool
	modifierSet  map[string]bool
	rootSet      map[string]bool

	conflicts []domain.Conflict
}

// finalize compiles the lookup maps and collects rule conflicts. Conflicts
// are reported, never fatal: precedence in the normalizer resolves them
// deterministically.
func (t *Tables) finalize() {
	t.suffixSet = toSet(t.SuffixCompounds)
	t.suffixExcept = toSet(t.SuffixExceptions)
	t.hyphenSet = toSet(t.HyphenCompounds)
	t.locationSet = toSet(t.Locations)
	t.codeSet = toSet(t.LocationCodes)
	t.modifierSet = toSet(t.StyleModifiers)
	t.rootSet = toSet(t.GenreRoots)

	t.conflicts = nil
	for _, pair := range t.HyphenCompounds {
		words := strings.Fields(pair)
		if len(words) == 2 && t.suffixSet[words[1]] && !t.suffixExcept[pair] {
			t.conflicts = append(t.conflicts, domain.Conflict{
				Kind:   domain.ConflictRuleTable,
				Detail: fmt.Sprintf("%q is in the hyphen-compound set but %q is a weld suffix; suffix compounding wins", pair, words[1]),
			})
		}
	}
	for _, m := range t.StyleModifiers {
		if t.rootSet[m] {
			t.conflicts = append(t.conflicts, domain.Conflict{
				Kind:   domain.ConflictRuleTable,
				Detail: fmt.Sprintf("%q is both a style modifier and a genre root; genre-root matching wins for hierarchy", m),
			})
		}
	}
	for from, to := range t.WordMisspellings {
		if _, chained := t.WordMisspellings[to]; chained {
			t.conflicts = append(t.conflicts, domain.Conflict{
				Kind:   domain.ConflictRuleTable,
				Detail: fmt.Sprintf("word misspelling %q corrects to %q, which is itself a misspelling key", from, to),
			})
		}
	}
}

// Conflicts returns the rule conflicts detected when the tables were
// compiled, for table maintainers to inspect.
func (t *Tables) Conflicts() []domain.Conflict {
	return t.conflicts
}

// CorrectWord returns the corrected form of a single token, or the token
// unchanged when no rule matches. No guessing.
func (t *Tables) CorrectWord(token string) string {
	if fixed, ok := t.WordMisspellings[token]; ok {
		return fixed
	}
	return token
}

// CorrectPhrase returns the corrected form of a whole tag, or the tag
// unchanged when no rule matches.
func (t *Tables) CorrectPhrase(s string) string {
	if fixed, ok := t.PhraseMisspellings[s]; ok {
		return fixed
	}
	return s
}

// SuffixWeld reports whether the pair (a, b) renders as the single word a+b.
func (t *Tables) SuffixWeld(a, b string) bool {
	return t.suffixSet[b] && !t.suffixExcept[a+" "+b]
}

// Hyphenate reports whether the pair (a, b) renders hyphenated as a-b.
func (t *Tables) Hyphenate(a, b string) bool {
	return t.hyphenSet[a+" "+b]
}

// IsLocation reports whether s names or contains a known place name, or is
// exactly a location code.
func (t *Tables) IsLocation(s string) bool {
	if t.codeSet[s] {
		return true
	}
	for loc := range t.locationSet {
		if strings.Contains(s, loc) {
			return true
		}
	}
	return false
}

// IsLocationCode reports whether the token is a known country/state code.
func (t *Tables) IsLocationCode(token string) bool {
	return t.codeSet[token]
}

// IsStyleModifier reports whether the token is a known adjectival qualifier.
func (t *Tables) IsStyleModifier(token string) bool {
	return t.modifierSet[token]
}

// IsGenreRoot reports whether the token is a known root genre word.
func (t *Tables) IsGenreRoot(token string) bool {
	return t.rootSet[token]
}

// SeedParent returns the curated parent for a child genre, if one exists.
func (t *Tables) SeedParent(child string) (string, bool) {
	parent, ok := t.HierarchySeeds[child]
	return parent, ok
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
