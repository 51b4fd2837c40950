// Package consolidate finds near-duplicate canonical tags and proposes
// merges. Suggestions are only ever proposed: applying them is up to the
// caller, which can threshold on confidence (auto-apply >= 0.9, review the
// rest).
package consolidate

import (
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/tagforge/tagforge/internal/domain"
)

// Options tune the similarity stages. Zero values select the defaults.
type Options struct {
	// MaxEditDistance is the inclusive Levenshtein cutoff for misspelling
	// pairs (default 2).
	MaxEditDistance int `validate:"min=0,max=5"`

	// CountAsymmetry is the minimum primary/secondary count ratio for a
	// misspelling merge (default 10). A genuine misspelling is rare next
	// to its correct form.
	CountAsymmetry float64 `validate:"min=0"`

	// MinUnknownCount excludes Unknown-category tags below this count from
	// pairwise comparison (default 2). Most distinct raw strings are
	// low-count noise; skipping them bounds the quadratic stage.
	MinUnknownCount int `validate:"min=0"`

	// Workers is the parallelism of the pairwise stage
	// (default runtime.NumCPU()).
	Workers int `validate:"min=0"`
}

func (o Options) withDefaults() Options {
	if o.MaxEditDistance == 0 {
		o.MaxEditDistance = 2
	}
	if o.CountAsymmetry == 0 {
		o.CountAsymmetry = 10
	}
	if o.MinUnknownCount == 0 {
		o.MinUnknownCount = 2
	}
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	return o
}

// Engine runs the three consolidation stages. It holds no mutable state, so
// one instance may serve concurrent passes.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// New creates a consolidation engine.
func New(opts Options, logger *slog.Logger) *Engine {
	return &Engine{opts: opts.withDefaults(), logger: logger}
}

// Suggest proposes merges over the full canonical tag table. Output is
// deterministic for a given input: same suggestions, same order.
//
// Stages, in order:
//  1. deterministic variants - identical after case folding or
//     hyphen/space/weld collapsing (confidence 1.0)
//  2. misspelling distance - same category, same token count, small edit
//     distance, large count asymmetry (confidence scaled by distance)
//  3. structural reorderings - same content tokens in a different order
//     (fixed confidence 0.9)
//
// Tags consumed by an earlier stage do not reach later ones.
func (e *Engine) Suggest(tags map[string]*domain.CanonicalTag) []domain.Suggestion {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	consumed := make(map[string]bool)

	variants := e.variantStage(names, tags, consumed)
	misspellings := e.distanceStage(names, tags, consumed)
	structural := e.structuralStage(names, tags, consumed)

	out := make([]domain.Suggestion, 0, len(variants)+len(misspellings)+len(structural))
	out = append(out, variants...)
	out = append(out, misspellings...)
	out = append(out, structural...)

	e.logger.Debug("consolidation pass complete",
		"tags", len(tags),
		"variant_suggestions", len(variants),
		"misspelling_suggestions", len(misspellings),
		"structural_suggestions", len(structural),
	)
	return out
}

// variantStage groups tags that collapse to the same string once case,
// spaces, and hyphens are ignored. These escaped the normalizer - data
// recorded before a rule existed, or raw data bypassing it entirely.
func (e *Engine) variantStage(names []string, tags map[string]*domain.CanonicalTag, consumed map[string]bool) []domain.Suggestion {
	groups := make(map[string][]string)
	for _, name := range names {
		key := collapse(strings.ToLower(name))
		groups[key] = append(groups[key], name)
	}

	keys := make([]string, 0, len(groups))
	for key, members := range groups {
		if len(members) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []domain.Suggestion
	for _, key := range keys {
		members := groups[key]
		primary := pickPrimary(members, tags)
		for _, member := range members {
			consumed[member] = true
			if member == primary {
				continue
			}
			reason := domain.ReasonHyphenSpaceVariant
			if strings.EqualFold(member, primary) {
				reason = domain.ReasonCaseVariant
			}
			out = append(out, domain.Suggestion{
				Primary:    primary,
				Secondary:  member,
				Confidence: 1.0,
				Reason:     reason,
			})
		}
	}
	return sortSuggestions(out)
}

// distanceStage compares every remaining pair of same-category, same-length
// tags and proposes the low-count side of close, lopsided pairs as a
// misspelling of the high-count side. The pairwise comparison is partitioned
// across workers; each worker reads shared immutable inputs and writes a
// private list, merged afterwards.
func (e *Engine) distanceStage(names []string, tags map[string]*domain.CanonicalTag, consumed map[string]bool) []domain.Suggestion {
	var candidates []string
	for _, name := range names {
		if consumed[name] {
			continue
		}
		tag := tags[name]
		if tag.Category == domain.CategoryUnknown && tag.Count < e.opts.MinUnknownCount {
			continue
		}
		candidates = append(candidates, name)
	}

	workers := e.opts.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([][]domain.Suggestion, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var local []domain.Suggestion
			for i := w; i < len(candidates); i += workers {
				for j := i + 1; j < len(candidates); j++ {
					if s, ok := e.comparePair(candidates[i], candidates[j], tags); ok {
						local = append(local, s)
					}
				}
			}
			results[w] = local
		}(w)
	}
	wg.Wait()

	// One suggestion per secondary: a tag sitting close to several primaries
	// keeps only the strongest, chosen by the pickPrimary ordering.
	best := make(map[string]domain.Suggestion)
	for _, local := range results {
		for _, s := range local {
			cur, ok := best[s.Secondary]
			if !ok || strongerPrimary(s.Primary, cur.Primary, tags) {
				best[s.Secondary] = s
			}
		}
	}

	out := make([]domain.Suggestion, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	out = sortSuggestions(out)
	for _, s := range out {
		consumed[s.Secondary] = true
	}
	return out
}

// strongerPrimary reports whether a beats b as a merge target: higher count,
// then shorter name, then lexicographically first.
func strongerPrimary(a, b string, tags map[string]*domain.CanonicalTag) bool {
	if tags[a].Count != tags[b].Count {
		return tags[a].Count > tags[b].Count
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// comparePair applies the misspelling gates to one candidate pair.
func (e *Engine) comparePair(a, b string, tags map[string]*domain.CanonicalTag) (domain.Suggestion, bool) {
	ta, tb := tags[a], tags[b]
	if ta.Category != tb.Category {
		return domain.Suggestion{}, false
	}
	if len(tokenize(a)) != len(tokenize(b)) {
		return domain.Suggestion{}, false
	}

	dist := levenshtein.ComputeDistance(a, b)
	if dist == 0 || dist > e.opts.MaxEditDistance {
		return domain.Suggestion{}, false
	}

	primary, secondary := ta, tb
	if secondary.Count > primary.Count {
		primary, secondary = secondary, primary
	}
	// A misspelling is rare next to its correct form; near-equal counts
	// mean two legitimate tags that happen to be close.
	if float64(secondary.Count)*e.opts.CountAsymmetry > float64(primary.Count) {
		return domain.Suggestion{}, false
	}

	return domain.Suggestion{
		Primary:    primary.Name,
		Secondary:  secondary.Name,
		Confidence: distanceConfidence(dist),
		Reason:     domain.ReasonMisspelling,
	}, true
}

// structuralStage groups remaining tags carrying the same content tokens in
// a different order. Weld and separator variants never get this far: the
// variant stage's collapse key already consumed them.
func (e *Engine) structuralStage(names []string, tags map[string]*domain.CanonicalTag, consumed map[string]bool) []domain.Suggestion {
	groups := make(map[string][]string)
	for _, name := range names {
		if consumed[name] {
			continue
		}
		toks := tokenize(name)
		sort.Strings(toks)
		// NUL cannot appear in a token, so the key is collision-free:
		// ["ab" "c"] and ["a" "bc"] must not land in one group.
		key := strings.Join(toks, "\x00")
		groups[key] = append(groups[key], name)
	}

	keys := make([]string, 0, len(groups))
	for key, members := range groups {
		if len(members) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []domain.Suggestion
	for _, key := range keys {
		members := groups[key]
		primary := pickPrimary(members, tags)
		for _, member := range members {
			if member == primary {
				continue
			}
			out = append(out, domain.Suggestion{
				Primary:    primary,
				Secondary:  member,
				Confidence: structuralConfidence,
				Reason:     domain.ReasonSimilarityMatch,
			})
		}
	}
	return sortSuggestions(out)
}

// distanceConfidence maps edit distance to confidence: 0.9 for distance 1,
// 0.15 lower per extra edit, floored at 0.5. Monotonic in evidence strength
// and always below the 1.0 deterministic band.
func distanceConfidence(dist int) float64 {
	conf := 0.9 - 0.15*float64(dist-1)
	if conf < 0.5 {
		conf = 0.5
	}
	return conf
}

// structuralConfidence is the fixed score for a token reordering: strong
// evidence, but below the deterministic 1.0 band because word order can be
// meaningful ("jazz fusion" vs "fusion jazz" is usually one genre, not
// always).
const structuralConfidence = 0.9

// pickPrimary chooses the canonical survivor of a group: highest count,
// then shortest name, then lexicographically first. Fully deterministic.
func pickPrimary(members []string, tags map[string]*domain.CanonicalTag) string {
	best := members[0]
	for _, member := range members[1:] {
		switch {
		case tags[member].Count != tags[best].Count:
			if tags[member].Count > tags[best].Count {
				best = member
			}
		case len(member) != len(best):
			if len(member) < len(best) {
				best = member
			}
		case member < best:
			best = member
		}
	}
	return best
}

func sortSuggestions(s []domain.Suggestion) []domain.Suggestion {
	sort.Slice(s, func(i, j int) bool {
		if s[i].Primary != s[j].Primary {
			return s[i].Primary < s[j].Primary
		}
		return s[i].Secondary < s[j].Secondary
	})
	return s
}

// collapse removes spaces and hyphens so weld, hyphen, and space renderings
// of one compound compare equal.
func collapse(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}
