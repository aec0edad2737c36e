// Package prompts defines the categorized prompt collection and its JSON loader.
package prompts

import "unicode/utf8"

// Entry is one prompt fragment within a category.
type Entry struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Source   string `json:"source,omitempty"`
	Index    int    `json:"index"`
}

// Pair couples an entry with its owning category, for flattened views.
type Pair struct {
	Category string `json:"category"`
	Entry    Entry  `json:"entry"`
}

// Collection is an ordered mapping of category name to entries.
// Category order and entry order follow the source document.
// A Collection is immutable after loading.
type Collection struct {
	order   []string
	entries map[string][]Entry
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string][]Entry)}
}

// ensure registers a category in first-appearance order. A category with no
// entries still counts as a category.
func (c *Collection) ensure(category string) {
	if _, ok := c.entries[category]; !ok {
		c.order = append(c.order, category)
		c.entries[category] = []Entry{}
	}
}

// add appends an entry to a category, registering the category on first use.
// The entry's Category and Index fields are filled in here.
func (c *Collection) add(category string, e Entry) {
	c.ensure(category)
	e.Category = category
	e.Index = len(c.entries[category])
	c.entries[category] = append(c.entries[category], e)
}

// Categories returns all category names in source order.
func (c *Collection) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns the entries of a category in source order.
// An unknown category yields nil.
func (c *Collection) Entries(category string) []Entry {
	return c.entries[category]
}

// CategoryCount returns the number of distinct categories.
func (c *Collection) CategoryCount() int {
	return len(c.order)
}

// Len returns the total number of entries across all categories.
func (c *Collection) Len() int {
	n := 0
	for _, entries := range c.entries {
		n += len(entries)
	}
	return n
}

// Truncate bounds s to at most n runes, marking the cut with "...".
// Non-positive n leaves s untouched.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Flatten returns all (category, entry) pairs in collection order:
// categories in source order, entries in source order within each.
func (c *Collection) Flatten() []Pair {
	out := make([]Pair, 0, c.Len())
	for _, category := range c.order {
		for _, e := range c.entries[category] {
			out = append(out, Pair{Category: category, Entry: e})
		}
	}
	return out
}
