// Package render formats analysis reports and search results for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/thebtf/promptlens/internal/analysis"
	"github.com/thebtf/promptlens/internal/prompts"
	"github.com/thebtf/promptlens/internal/search"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cellStyle   = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Report renders the statistics tables: a summary followed by the
// per-category breakdown sorted by count descending.
func Report(r analysis.Report) string {
	summary := newTable("Metric", "Value").
		Row("Total Categories", strconv.Itoa(r.CategoryCount)).
		Row("Total Prompts", strconv.Itoa(r.TotalEntries)).
		Row("Shortest Prompt Length", fmt.Sprintf("%d chars", r.MinLength)).
		Row("Longest Prompt Length", fmt.Sprintf("%d chars", r.MaxLength)).
		Row("Average Prompt Length", fmt.Sprintf("%.1f chars", r.MeanLength))
	if r.TotalTokens > 0 {
		summary.Row("Total Tokens", strconv.Itoa(r.TotalTokens)).
			Row("Average Tokens per Prompt", fmt.Sprintf("%.1f", r.MeanTokens))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Prompt Analysis Statistics") + "\n")
	b.WriteString(summary.String() + "\n")

	if len(r.PerCategory) > 0 {
		breakdown := newTable("Category", "Count")
		for _, p := range r.Breakdown() {
			breakdown.Row(p.Category, strconv.Itoa(p.Count))
		}
		b.WriteString("\n" + titleStyle.Render("Categories Breakdown") + "\n")
		b.WriteString(breakdown.String() + "\n")
	}
	return b.String()
}

// SearchResults renders matches one by one with category, index, and a
// truncated preview of the prompt text.
func SearchResults(r search.Result, previewRunes int) string {
	if r.Len() == 0 {
		return noticeStyle.Render("No results found.") + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results:\n", r.Len())
	for _, m := range r.Matches() {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Category:") + " " + m.Category + "\n")
		b.WriteString(labelStyle.Render("Index:") + " " + strconv.Itoa(m.Entry.Index) + "\n")
		b.WriteString(labelStyle.Render("Prompt:") + "\n")
		b.WriteString(prompts.Truncate(m.Entry.Text, previewRunes) + "\n")
		b.WriteString(strings.Repeat("-", 80) + "\n")
	}
	return b.String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}
