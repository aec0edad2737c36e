package analysis

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// CategoryCountPair is one row of the per-category breakdown.
type CategoryCountPair struct {
	Category string
	Count    int
}

// Breakdown returns the per-category counts sorted by count descending,
// ties broken by category name, for stable display and serialization.
func (r Report) Breakdown() []CategoryCountPair {
	pairs := make([]CategoryCountPair, 0, len(r.PerCategory))
	for category, count := range r.PerCategory {
		pairs = append(pairs, CategoryCountPair{Category: category, Count: count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		return pairs[i].Category < pairs[j].Category
	})
	return pairs
}

// JSON serializes the report as indented JSON.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Markdown serializes the report as a markdown document.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Prompt Analysis Results\n\n")
	fmt.Fprintf(&b, "- **Total Categories:** %d\n", r.CategoryCount)
	fmt.Fprintf(&b, "- **Total Prompts:** %d\n", r.TotalEntries)
	fmt.Fprintf(&b, "- **Average Prompt Length:** %.1f characters\n", r.MeanLength)
	if r.TotalTokens > 0 {
		fmt.Fprintf(&b, "- **Total Tokens:** %d\n", r.TotalTokens)
		fmt.Fprintf(&b, "- **Average Tokens per Prompt:** %.1f\n", r.MeanTokens)
	}
	b.WriteString("\n## Categories Breakdown\n\n")
	for _, p := range r.Breakdown() {
		fmt.Fprintf(&b, "- **%s:** %d prompts\n", p.Category, p.Count)
	}
	return b.String()
}

// Text serializes the report as plain text.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString("PROMPT ANALYSIS RESULTS\n")
	b.WriteString(strings.Repeat("=", 25) + "\n\n")
	fmt.Fprintf(&b, "Total Categories: %d\n", r.CategoryCount)
	fmt.Fprintf(&b, "Total Prompts: %d\n", r.TotalEntries)
	fmt.Fprintf(&b, "Average Prompt Length: %.1f characters\n", r.MeanLength)
	if r.TotalTokens > 0 {
		fmt.Fprintf(&b, "Total Tokens: %d\n", r.TotalTokens)
		fmt.Fprintf(&b, "Average Tokens per Prompt: %.1f\n", r.MeanTokens)
	}
	b.WriteString("\nCATEGORIES BREAKDOWN\n")
	b.WriteString(strings.Repeat("-", 20) + "\n")
	for _, p := range r.Breakdown() {
		fmt.Fprintf(&b, "%s: %d prompts\n", p.Category, p.Count)
	}
	return b.String()
}
