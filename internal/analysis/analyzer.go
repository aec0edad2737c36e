// Package analysis computes descriptive statistics over a prompt collection.
package analysis

import (
	"fmt"
	"unicode/utf8"

	"github.com/tiktoken-go/tokenizer"

	"github.com/thebtf/promptlens/internal/prompts"
)

// DefaultPreviewRunes bounds the longest/shortest prompt previews in a report.
const DefaultPreviewRunes = 200

// Options control optional parts of an analysis run.
type Options struct {
	// TokenEncoding selects the tokenizer vocabulary, e.g. "cl100k_base".
	// Only consulted when CountTokens is set.
	TokenEncoding string
	// PreviewRunes bounds the longest/shortest previews; <=0 means default.
	PreviewRunes int
	// CountTokens enables token statistics.
	CountTokens bool
}

// Report holds the aggregate statistics of one collection. It is a plain
// value; identical collections always produce identical reports.
type Report struct {
	PerCategory     map[string]int `json:"categories"`
	LongestPreview  string         `json:"longest_prompt,omitempty"`
	ShortestPreview string         `json:"shortest_prompt,omitempty"`
	TotalEntries    int            `json:"total_entries"`
	CategoryCount   int            `json:"category_count"`
	MinLength       int            `json:"min_length"`
	MaxLength       int            `json:"max_length"`
	MeanLength      float64        `json:"mean_length"`
	TotalTokens     int            `json:"total_tokens,omitempty"`
	MinTokens       int            `json:"min_tokens,omitempty"`
	MaxTokens       int            `json:"max_tokens,omitempty"`
	MeanTokens      float64        `json:"mean_tokens,omitempty"`
}

// Analyze computes a Report in a single pass over the collection, visiting
// categories and entries in source order. An empty collection yields a report
// of zeros. The only possible error is a tokenizer setup failure, which can
// occur only when Options.CountTokens is set.
func Analyze(c *prompts.Collection, opts Options) (Report, error) {
	previewRunes := opts.PreviewRunes
	if previewRunes <= 0 {
		previewRunes = DefaultPreviewRunes
	}

	var codec tokenizer.Codec
	if opts.CountTokens {
		enc := tokenizer.Encoding(opts.TokenEncoding)
		if opts.TokenEncoding == "" {
			enc = tokenizer.Cl100kBase
		}
		var err error
		codec, err = tokenizer.Get(enc)
		if err != nil {
			return Report{}, fmt.Errorf("load tokenizer %q: %w", enc, err)
		}
	}

	r := Report{PerCategory: make(map[string]int)}
	var (
		sumLength         int
		sumTokens         int
		longest, shortest string
		seen              int
	)

	for _, category := range c.Categories() {
		entries := c.Entries(category)
		r.PerCategory[category] = len(entries)
		r.TotalEntries += len(entries)

		for _, e := range entries {
			length := utf8.RuneCountInString(e.Text)
			sumLength += length

			if seen == 0 {
				r.MinLength, r.MaxLength = length, length
				longest, shortest = e.Text, e.Text
			} else {
				if length < r.MinLength {
					r.MinLength = length
					shortest = e.Text
				}
				if length > r.MaxLength {
					r.MaxLength = length
					longest = e.Text
				}
			}

			if codec != nil {
				ids, _, err := codec.Encode(e.Text)
				if err != nil {
					return Report{}, fmt.Errorf("tokenize entry %d of %q: %w", e.Index, category, err)
				}
				n := len(ids)
				sumTokens += n
				if seen == 0 || n < r.MinTokens {
					r.MinTokens = n
				}
				if n > r.MaxTokens {
					r.MaxTokens = n
				}
			}
			seen++
		}
	}

	r.CategoryCount = c.CategoryCount()
	if r.TotalEntries > 0 {
		r.MeanLength = float64(sumLength) / float64(r.TotalEntries)
		r.LongestPreview = prompts.Truncate(longest, previewRunes)
		r.ShortestPreview = prompts.Truncate(shortest, previewRunes)
		if codec != nil {
			r.TotalTokens = sumTokens
			r.MeanTokens = float64(sumTokens) / float64(r.TotalEntries)
		}
	}
	return r, nil
}
