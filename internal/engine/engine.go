// Package engine orchestrates one full normalization pass: raw tag counts in,
// canonical tags, categories, hierarchy edges, and consolidation suggestions
// out. The pass is pure and side-effect-free; independent callers can run
// passes concurrently on independent snapshots without coordination.
package engine

import (
	"context"
	"log/slog"
	"sort"

	"github.com/tagforge/tagforge/internal/categorize"
	"github.com/tagforge/tagforge/internal/consolidate"
	"github.com/tagforge/tagforge/internal/domain"
	"github.com/tagforge/tagforge/internal/hierarchy"
	"github.com/tagforge/tagforge/internal/normalize"
	"github.com/tagforge/tagforge/internal/rules"
)

// Engine wires the pipeline stages together.
type Engine struct {
	tables       *rules.Tables
	normalizer   *normalize.Normalizer
	categorizer  *categorize.Categorizer
	builder      *hierarchy.Builder
	consolidator *consolidate.Engine
	logger       *slog.Logger
}

// New creates an engine over one rule-table snapshot. Swapping tables means
// constructing a new engine; a constructed engine never observes rule
// changes mid-pass.
func New(tables *rules.Tables, consolidator *consolidate.Engine, logger *slog.Logger) *Engine {
	return &Engine{
		tables:       tables,
		normalizer:   normalize.New(tables),
		categorizer:  categorize.New(tables),
		builder:      hierarchy.New(tables),
		consolidator: consolidator,
		logger:       logger,
	}
}

// Rejected records one observation dropped from a pass, with the reason.
// A bad record never aborts the pass.
type Rejected struct {
	Text   string `yaml:"text"`
	Count  int    `yaml:"count"`
	Reason string `yaml:"reason"`
}

// Stats summarizes one pass.
type Stats struct {
	RawStrings    int `yaml:"raw_strings"`
	RejectedCount int `yaml:"rejected"`
	CanonicalTags int `yaml:"canonical_tags"`
	Genres        int `yaml:"genres"`
	StyleMods     int `yaml:"style_modifiers"`
	Regional      int `yaml:"regional"`
	Unknown       int `yaml:"unknown"`
	Edges         int `yaml:"edges"`
	Suggestions   int `yaml:"suggestions"`
	Conflicts     int `yaml:"conflicts"`
}

// Result is the full output of one pass.
type Result struct {
	// CanonicalForms maps each accepted raw string to its canonical
	// sequence.
	CanonicalForms map[string][]string `yaml:"canonical_forms"`
	// Tags maps canonical name to the aggregated tag.
	Tags map[string]*domain.CanonicalTag `yaml:"tags"`
	// Edges is the genre hierarchy DAG.
	Edges []domain.HierarchyEdge `yaml:"edges"`
	// Suggestions are proposed merges, never applied here.
	Suggestions []domain.Suggestion `yaml:"suggestions"`
	// Conflicts are recovered rule-table and hierarchy problems.
	Conflicts []domain.Conflict `yaml:"conflicts"`
	// Rejected lists observations dropped as malformed.
	Rejected []Rejected `yaml:"rejected,omitempty"`

	Stats Stats `yaml:"stats"`
}

// Categories returns the canonical-name-to-category mapping.
func (r *Result) Categories() map[string]domain.Category {
	out := make(map[string]domain.Category, len(r.Tags))
	for name, tag := range r.Tags {
		out[name] = tag.Category
	}
	return out
}

// Run executes one pass over a corpus snapshot.
//
// Flow: reject malformed entries, normalize and aggregate, categorize,
// build the hierarchy, then propose consolidations over the finished table.
func (e *Engine) Run(ctx context.Context, counts map[string]int) (*Result, error) {
	result := &Result{
		CanonicalForms: make(map[string][]string, len(counts)),
		Tags:           make(map[string]*domain.CanonicalTag),
	}

	// Rule conflicts are recovered by fixed precedence but still reported
	// for table maintainers.
	result.Conflicts = append(result.Conflicts, e.tables.Conflicts()...)

	// Deterministic iteration keeps the rejected list stable across runs.
	raws := make([]string, 0, len(counts))
	for raw := range counts {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	for _, raw := range raws {
		count := counts[raw]
		if count < 1 {
			result.Rejected = append(result.Rejected, Rejected{
				Text:   raw,
				Count:  count,
				Reason: "observation count must be >= 1",
			})
			continue
		}

		canonical := e.normalizer.Normalize(raw)
		result.CanonicalForms[raw] = canonical
		for _, name := range canonical {
			tag, ok := result.Tags[name]
			if !ok {
				tag = &domain.CanonicalTag{Name: name}
				result.Tags[name] = tag
			}
			tag.Count += count
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for name, tag := range result.Tags {
		tag.Category = e.categorizer.Categorize(name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	edges, cycleConflicts := e.builder.Build(result.Tags)
	result.Edges = edges
	result.Conflicts = append(result.Conflicts, cycleConflicts...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Suggestions = e.consolidator.Suggest(result.Tags)

	result.Stats = e.stats(result, len(counts))
	e.logger.Info("pass complete",
		"raw_strings", result.Stats.RawStrings,
		"rejected", result.Stats.RejectedCount,
		"canonical_tags", result.Stats.CanonicalTags,
		"edges", result.Stats.Edges,
		"suggestions", result.Stats.Suggestions,
		"conflicts", result.Stats.Conflicts,
	)
	return result, nil
}

func (e *Engine) stats(result *Result, rawStrings int) Stats {
	s := Stats{
		RawStrings:    rawStrings,
		RejectedCount: len(result.Rejected),
		CanonicalTags: len(result.Tags),
		Edges:         len(result.Edges),
		Suggestions:   len(result.Suggestions),
		Conflicts:     len(result.Conflicts),
	}
	for _, tag := range result.Tags {
		switch tag.Category {
		case domain.CategoryGenre:
			s.Genres++
		case domain.CategoryStyleModifier:
			s.StyleMods++
		case domain.CategoryRegional:
			s.Regional++
		case domain.CategoryUnknown:
			s.Unknown++
		}
	}
	return s
}
