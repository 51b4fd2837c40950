// Package hierarchy derives parent-child genre edges from compound structure
// and the curated rule tables.
package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tagforge/tagforge/internal/domain"
	"github.com/tagforge/tagforge/internal/rules"
)

// Builder derives a genre DAG from the canonical tags of one pass.
type Builder struct {
	tables *rules.Tables
}

// New creates a builder backed by the given rule tables.
func New(tables *rules.Tables) *Builder {
	return &Builder{tables: tables}
}

// Build returns hierarchy edges for every Genre-category tag, plus conflicts
// for edges dropped by the cycle guard.
//
// For each tag the builder prefers the nearest level that exists in the
// corpus: "atmospheric black metal" hangs under "black metal" when that tag
// was observed, and directly under "metal" otherwise. Edge strength is the
// child's share of its parent's direct-children counts, computed once all
// edges are collected.
func (b *Builder) Build(tags map[string]*domain.CanonicalTag) ([]domain.HierarchyEdge, []domain.Conflict) {
	names := make([]string, 0, len(tags))
	for name, tag := range tags {
		if tag.Category == domain.CategoryGenre {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	adjacency := make(map[string][]string) // parent -> children
	var edges []edge
	var conflicts []domain.Conflict

	addEdge := func(parent, child string) {
		if parent == child {
			return
		}
		for _, existing := range adjacency[parent] {
			if existing == child {
				return
			}
		}
		// Cycle guard: the proposed parent must not already be reachable
		// from the proposed child. Drop and report, never overwrite.
		if reachable(adjacency, child, parent) {
			conflicts = append(conflicts, domain.Conflict{
				Kind:   domain.ConflictHierarchyCycle,
				Detail: fmt.Sprintf("edge %q -> %q would close a cycle", parent, child),
			})
			return
		}
		adjacency[parent] = append(adjacency[parent], child)
		edges = append(edges, edge{parent: parent, child: child})
	}

	for _, name := range names {
		if parent, ok := b.parentOf(name, tags); ok {
			addEdge(parent, name)
		}
	}

	return b.weigh(edges, tags), conflicts
}

// parentOf finds the most specific generalization of a tag present in the
// corpus: the longest proper token suffix observed as its own tag, the
// genre-root word itself, or a curated hierarchy seed.
func (b *Builder) parentOf(name string, tags map[string]*domain.CanonicalTag) (string, bool) {
	tokens := tokenize(name)

	// Prefer successively shorter suffixes: "atmospheric black metal"
	// tries "black metal" before "metal".
	for i := 1; i < len(tokens); i++ {
		candidate := strings.Join(tokens[i:], " ")
		if existsAsGenre(candidate, tags) {
			return candidate, true
		}
	}

	// The bare root word, when the tag ends in one.
	if len(tokens) > 1 {
		root := tokens[len(tokens)-1]
		if b.tables.IsGenreRoot(root) && existsAsGenre(root, tags) {
			return root, true
		}
	}

	// Curated seeds cover lineages structure cannot derive
	// ("grindcore" under "metal").
	if parent, ok := b.tables.SeedParent(name); ok && existsAsGenre(parent, tags) {
		return parent, true
	}

	return "", false
}

// weigh converts collected edges into weighted HierarchyEdges. Strength is
// a relative-popularity share among the parent's direct children, so the
// strengths of one parent's edges sum to 1.
func (b *Builder) weigh(edges []edge, tags map[string]*domain.CanonicalTag) []domain.HierarchyEdge {
	totals := make(map[string]int)
	for _, e := range edges {
		totals[e.parent] += tags[e.child].Count
	}

	out := make([]domain.HierarchyEdge, 0, len(edges))
	for _, e := range edges {
		strength := 0.0
		if total := totals[e.parent]; total > 0 {
			strength = float64(tags[e.child].Count) / float64(total)
		}
		out = append(out, domain.HierarchyEdge{
			Parent:   e.parent,
			Child:    e.child,
			Strength: strength,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Parent != out[j].Parent {
			return out[i].Parent < out[j].Parent
		}
		return out[i].Child < out[j].Child
	})
	return out
}

type edge struct {
	parent string
	child  string
}

func existsAsGenre(name string, tags map[string]*domain.CanonicalTag) bool {
	tag, ok := tags[name]
	return ok && tag.Category == domain.CategoryGenre
}

// reachable reports whether to can be reached from from via existing edges.
func reachable(adjacency map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adjacency[node] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}
