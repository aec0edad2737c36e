// Package markdown renders prompt collections as fenced markdown documents.
package markdown

import (
	"io"
	"os"
	"strings"

	"github.com/thebtf/promptlens/internal/prompts"
)

// DefaultTitle is the document heading used when Extractor.Title is empty.
const DefaultTitle = "Prompt Collection"

// minFence is the shortest legal backtick fence.
const minFence = "```"

// Grouped is any ordered category -> entries view. Both *prompts.Collection
// and search.Result satisfy it, so a full collection and a filtered subset
// render through the same path.
type Grouped interface {
	Categories() []string
	Entries(category string) []prompts.Entry
}

// Extractor renders a Grouped view to markdown. The zero value is usable.
type Extractor struct {
	// Title is the document H1; empty means DefaultTitle.
	Title string
	// Fence is the minimum fence delimiter; empty means three backticks.
	// It is lengthened per entry past any backtick run in the text, so
	// arbitrary prompt content round-trips verbatim.
	Fence string
}

// Render produces the markdown document as a string.
func (x Extractor) Render(g Grouped) string {
	title := x.Title
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	b.WriteString("# " + title + "\n\n")
	for _, category := range g.Categories() {
		b.WriteString("## " + category + "\n\n")
		for _, e := range g.Entries(category) {
			fence := x.fenceFor(e.Text)
			b.WriteString(fence + "\n")
			b.WriteString(e.Text)
			if !strings.HasSuffix(e.Text, "\n") {
				b.WriteString("\n")
			}
			b.WriteString(fence + "\n\n")
		}
	}
	return b.String()
}

// Write renders the document to w.
func (x Extractor) Write(g Grouped, w io.Writer) error {
	_, err := io.WriteString(w, x.Render(g))
	return err
}

// WriteFile renders the document to path, overwriting any existing file.
// Unwritable destinations yield a *prompts.AccessError.
func (x Extractor) WriteFile(g Grouped, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &prompts.AccessError{Path: path, Op: "write", Err: err}
	}
	if err := x.Write(g, f); err != nil {
		f.Close()
		return &prompts.AccessError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &prompts.AccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// fenceFor returns a fence one backtick longer than the longest backtick run
// in text, never shorter than the configured minimum.
func (x Extractor) fenceFor(text string) string {
	fence := x.Fence
	if len(fence) < len(minFence) || strings.Trim(fence, "`") != "" {
		fence = minFence
	}

	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest >= len(fence) {
		fence = strings.Repeat("`", longest+1)
	}
	return fence
}
