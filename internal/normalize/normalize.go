// Package normalize turns raw tag strings into canonical forms.
//
// The pipeline is deterministic and idempotent: normalizing an already
// canonical string returns it unchanged. Order matters - later steps assume
// earlier ones already ran:
//
//  1. whitespace cleanup
//  2. case folding
//  3. word-level misspelling correction
//  4. whole-phrase misspelling correction
//  5. compound format resolution (weld > hyphenate > space)
//
// Slash-delimited lists are split into segments up front and each segment
// runs the pipeline independently, so no correction or compound rule can
// match across a segment boundary.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/tagforge/tagforge/internal/rules"
)

// UnknownTag is the sentinel canonical form for empty or whitespace-only
// input. Returning a sentinel instead of dropping the entry lets callers
// account for it in counts.
const UnknownTag = "unknown"

// Normalizer applies the canonical-form pipeline using a curated rule set.
// It is stateless apart from the immutable tables, so a single instance is
// safe for concurrent use.
type Normalizer struct {
	tables *rules.Tables
}

// New creates a normalizer backed by the given rule tables.
func New(tables *rules.Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Normalize converts one raw string into its canonical form(s). Most inputs
// yield exactly one string; slash-delimited lists yield one per segment.
func (n *Normalizer) Normalize(raw string) []string {
	// Split before anything else: segments are independent observations, and
	// a compound or correction rule must never see tokens from two of them.
	if !strings.Contains(raw, "/") {
		return []string{n.normalizeOne(raw)}
	}

	var out []string
	seen := make(map[string]bool)
	for _, segment := range strings.Split(raw, "/") {
		if strings.TrimSpace(segment) == "" {
			// An empty segment of a list is noise, not an observation.
			continue
		}
		canonical := n.normalizeOne(segment)
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	if len(out) == 0 {
		return []string{UnknownTag}
	}
	return out
}

// normalizeOne runs pipeline steps 1-5 on a single segment.
func (n *Normalizer) normalizeOne(raw string) string {
	// 1. Sanitize and collapse whitespace.
	s := sanitize(raw)
	s = strings.Join(strings.Fields(s), " ")

	// 2. Case folding. Case carries no genre-distinguishing information.
	s = strings.ToLower(s)

	if s == "" {
		return UnknownTag
	}

	// 3. Word-level correction: one misspelled word inside a multi-word tag
	// is fixed without disturbing the rest.
	tokens := tokenize(s)
	for i, tok := range tokens {
		tokens[i] = n.tables.CorrectWord(tok)
	}
	s = strings.Join(tokens, " ")

	// 4. Whole-phrase correction for fixes not decomposable word-by-word.
	s = n.tables.CorrectPhrase(s)

	// 5. Compound resolution, iterated to a fixpoint so that chains like
	// "post hard core" -> "post hardcore" -> "post-hardcore" settle in one
	// normalization call.
	for range tokenize(s) {
		next := n.resolveCompounds(s)
		if next == s {
			break
		}
		s = next
	}

	return s
}

// resolveCompounds makes one left-to-right pass over adjacent word pairs.
// Precedence: suffix welding first (most specific), then the curated hyphen
// set, else the pair stays space-separated. Unknown compounds are never
// guessed at.
func (n *Normalizer) resolveCompounds(s string) string {
	tokens := tokenize(s)
	if len(tokens) < 2 {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(tokens); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i+1 < len(tokens) {
			a, c := tokens[i], tokens[i+1]
			switch {
			case n.tables.SuffixWeld(a, c):
				b.WriteString(a + c)
				i++
				continue
			case n.tables.Hyphenate(a, c):
				b.WriteString(a + "-" + c)
				i++
				continue
			}
		}
		b.WriteString(tokens[i])
	}
	return b.String()
}

// tokenize splits on spaces and hyphens. Both separators mark word
// boundaries; step 5 decides how each pair renders.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}

// sanitize composes unicode to NFC and drops null bytes and non-whitespace
// control characters that scrapers occasionally leak into tag strings. Tabs
// and newlines survive here; step 1 collapses them as whitespace.
func sanitize(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if r == 0 || (unicode.IsControl(r) && !unicode.IsSpace(r)) {
			return -1
		}
		return r
	}, s)
}
