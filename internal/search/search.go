// Package search filters a prompt collection by pattern and category.
package search

import (
	"strings"

	"github.com/thebtf/promptlens/internal/prompts"
)

// Query holds the two optional filters. Zero-value fields are unset: with
// neither filter the whole collection matches.
type Query struct {
	// Pattern is a case-insensitive substring matched against entry text.
	Pattern string
	// Category is an exact, case-sensitive category name.
	Category string
}

// Result is an ordered sequence of matches, preserving the collection's
// category order and entry order within each category.
type Result struct {
	matches []prompts.Pair
}

// Find applies the query's filters over the collection. Both filters must
// match when both are set. An unknown category or a pattern with no hits
// yields an empty result, never an error.
func Find(c *prompts.Collection, q Query) Result {
	pattern := strings.ToLower(q.Pattern)

	var matches []prompts.Pair
	for _, category := range c.Categories() {
		if q.Category != "" && category != q.Category {
			continue
		}
		for _, e := range c.Entries(category) {
			if pattern != "" && !strings.Contains(strings.ToLower(e.Text), pattern) {
				continue
			}
			matches = append(matches, prompts.Pair{Category: category, Entry: e})
		}
	}
	return Result{matches: matches}
}

// Matches returns the matched (category, entry) pairs in order.
func (r Result) Matches() []prompts.Pair {
	out := make([]prompts.Pair, len(r.matches))
	copy(out, r.matches)
	return out
}

// Len returns the number of matches.
func (r Result) Len() int {
	return len(r.matches)
}

// Categories returns the distinct matched categories in order of appearance.
func (r Result) Categories() []string {
	var order []string
	seen := make(map[string]bool)
	for _, m := range r.matches {
		if !seen[m.Category] {
			seen[m.Category] = true
			order = append(order, m.Category)
		}
	}
	return order
}

// Entries returns the matched entries of one category in order.
func (r Result) Entries(category string) []prompts.Entry {
	var out []prompts.Entry
	for _, m := range r.matches {
		if m.Category == category {
			out = append(out, m.Entry)
		}
	}
	return out
}
