// Package domain defines the core types shared by the normalization engine.
package domain

// Category classifies a canonical tag. It is a closed set: consumers switch
// over it exhaustively, and adding a value is a compile-time-visible change.
type Category int

const (
	// CategoryUnknown is the fallback for tags matching no vocabulary.
	CategoryUnknown Category = iota
	// CategoryGenre marks tags containing a known genre root ("metal", "jazz").
	CategoryGenre
	// CategoryStyleModifier marks adjectival qualifiers ("atmospheric", "melodic").
	CategoryStyleModifier
	// CategoryRegional marks place names and location-shaped tags.
	CategoryRegional
)

// String returns the category's display name.
func (c Category) String() string {
	switch c {
	case CategoryGenre:
		return "genre"
	case CategoryStyleModifier:
		return "style-modifier"
	case CategoryRegional:
		return "regional"
	case CategoryUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the category as its display name in reports.
func (c Category) MarshalYAML() (any, error) {
	return c.String(), nil
}

// RawObservation is one distinct raw tag string seen in the corpus, with the
// number of times it occurred. Ephemeral input to a pass.
type RawObservation struct {
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

// CanonicalTag is the unit of truth after normalization: one agreed-upon
// spelling, its category, and the sum of every raw observation that mapped
// to it. Names are never rewritten once assigned within a pass.
type CanonicalTag struct {
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
	Count    int      `yaml:"count"`
}

// HierarchyEdge is a directed parent-generalizes-child relationship between
// two canonical tags ("metal" → "black metal"). Strength is a relative
// popularity weight in [0,1], not a similarity score. The full edge set forms
// a DAG: a child may specialize several lineages, but cycles are rejected.
type HierarchyEdge struct {
	Parent   string  `yaml:"parent"`
	Child    string  `yaml:"child"`
	Strength float64 `yaml:"strength"`
}

// SuggestionReason says which rule produced a consolidation suggestion.
type SuggestionReason string

// Suggestion reasons, ordered roughly by decreasing confidence.
const (
	ReasonCaseVariant        SuggestionReason = "case-variant"
	ReasonHyphenSpaceVariant SuggestionReason = "hyphen-space-variant"
	ReasonMisspelling        SuggestionReason = "misspelling"
	ReasonSimilarityMatch    SuggestionReason = "similarity-match"
)

// Suggestion proposes merging Secondary into Primary. Suggestions are only
// ever proposed; applying one is the caller's decision.
type Suggestion struct {
	Primary    string           `yaml:"primary"`
	Secondary  string           `yaml:"secondary"`
	Confidence float64          `yaml:"confidence"`
	Reason     SuggestionReason `yaml:"reason"`
}

// Conflict records a recovered, reportable problem: a hierarchy edge dropped
// to avoid a cycle, or two curated rules claiming the same tag.
type Conflict struct {
	Kind   ConflictKind `yaml:"kind"`
	Detail string       `yaml:"detail"`
}

// ConflictKind distinguishes the recoverable conflict classes.
type ConflictKind string

const (
	// ConflictHierarchyCycle marks an edge dropped by the cycle guard.
	ConflictHierarchyCycle ConflictKind = "hierarchy-cycle"
	// ConflictRuleTable marks two curated rules claiming the same string.
	ConflictRuleTable ConflictKind = "rule-table"
)
