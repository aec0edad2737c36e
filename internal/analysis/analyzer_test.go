package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/promptlens/internal/prompts"
)

func mustParse(t *testing.T, doc string) *prompts.Collection {
	t.Helper()
	c, err := prompts.Parse([]byte(doc))
	require.NoError(t, err)
	return c
}

func TestAnalyze_Counts(t *testing.T) {
	c := mustParse(t, `{
		"greeting": ["hello world"],
		"farewell": ["goodbye world"]
	}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, r.TotalEntries)
	assert.Equal(t, 2, r.CategoryCount)
	assert.Equal(t, map[string]int{"greeting": 1, "farewell": 1}, r.PerCategory)
}

func TestAnalyze_EmptyCategoryCounted(t *testing.T) {
	c := mustParse(t, `{"empty": [], "full": ["x"]}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, r.CategoryCount)
	assert.Equal(t, 1, r.TotalEntries)
	assert.Equal(t, map[string]int{"empty": 0, "full": 1}, r.PerCategory)
}

func TestAnalyze_TotalMatchesPerCategorySum(t *testing.T) {
	c := mustParse(t, `{"a": ["1", "2", "3"], "b": ["4"], "c": ["5", "6"]}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	sum := 0
	for _, n := range r.PerCategory {
		sum += n
	}
	assert.Equal(t, sum, r.TotalEntries)
	assert.Equal(t, 3, r.CategoryCount)
}

func TestAnalyze_LengthStatistics(t *testing.T) {
	c := mustParse(t, `{"a": ["ab", "abcd"], "b": ["abcdef"]}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, r.MinLength)
	assert.Equal(t, 6, r.MaxLength)
	assert.InDelta(t, 4.0, r.MeanLength, 1e-12)
	assert.Equal(t, "abcdef", r.LongestPreview)
	assert.Equal(t, "ab", r.ShortestPreview)
}

func TestAnalyze_LengthIsRuneCount(t *testing.T) {
	c := mustParse(t, `{"a": ["日本語"]}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, r.MinLength)
	assert.Equal(t, 3, r.MaxLength)
}

func TestAnalyze_EmptyCollection(t *testing.T) {
	r, err := Analyze(prompts.NewCollection(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, r.TotalEntries)
	assert.Equal(t, 0, r.CategoryCount)
	assert.Equal(t, 0, r.MinLength)
	assert.Equal(t, 0, r.MaxLength)
	assert.Equal(t, 0.0, r.MeanLength)
	assert.Empty(t, r.LongestPreview)
	assert.Empty(t, r.ShortestPreview)
}

func TestAnalyze_EmptyTextEntry(t *testing.T) {
	c := mustParse(t, `{"a": ["", "xyz"]}`)

	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, r.MinLength)
	assert.Equal(t, 3, r.MaxLength)
}

func TestAnalyze_PreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 250)
	c := mustParse(t, `{"a": ["`+long+`", "short"]}`)

	r, err := Analyze(c, Options{PreviewRunes: 200})
	require.NoError(t, err)

	assert.Len(t, r.LongestPreview, 203) // 200 runes plus "..."
	assert.True(t, strings.HasSuffix(r.LongestPreview, "..."))
	assert.Equal(t, "short", r.ShortestPreview)
}

func TestAnalyze_Deterministic(t *testing.T) {
	c := mustParse(t, `{"a": ["one", "two"], "b": ["three"]}`)

	first, err := Analyze(c, Options{})
	require.NoError(t, err)
	second, err := Analyze(c, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyze_TokenStatistics(t *testing.T) {
	c := mustParse(t, `{"a": ["hello world", "a much longer prompt about testing things"]}`)

	r, err := Analyze(c, Options{CountTokens: true})
	require.NoError(t, err)

	assert.Greater(t, r.TotalTokens, 0)
	assert.Greater(t, r.MinTokens, 0)
	assert.GreaterOrEqual(t, r.MaxTokens, r.MinTokens)
	assert.InDelta(t, float64(r.TotalTokens)/2.0, r.MeanTokens, 1e-12)
}

func TestAnalyze_UnknownTokenEncoding(t *testing.T) {
	c := mustParse(t, `{"a": ["x"]}`)

	_, err := Analyze(c, Options{CountTokens: true, TokenEncoding: "no_such_encoding"})
	assert.Error(t, err)
}

func TestReport_Breakdown(t *testing.T) {
	r := Report{PerCategory: map[string]int{"small": 1, "big": 5, "also_big": 5}}

	pairs := r.Breakdown()
	require.Len(t, pairs, 3)
	assert.Equal(t, CategoryCountPair{Category: "also_big", Count: 5}, pairs[0])
	assert.Equal(t, CategoryCountPair{Category: "big", Count: 5}, pairs[1])
	assert.Equal(t, CategoryCountPair{Category: "small", Count: 1}, pairs[2])
}

func TestReport_Serializers(t *testing.T) {
	c := mustParse(t, `{"greeting": ["hello world"], "farewell": ["goodbye world"]}`)
	r, err := Analyze(c, Options{})
	require.NoError(t, err)

	data, err := r.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_entries": 2`)
	assert.Contains(t, string(data), `"greeting": 1`)

	md := r.Markdown()
	assert.Contains(t, md, "# Prompt Analysis Results")
	assert.Contains(t, md, "**Total Prompts:** 2")
	assert.Contains(t, md, "**greeting:** 1 prompts")

	txt := r.Text()
	assert.Contains(t, txt, "PROMPT ANALYSIS RESULTS")
	assert.Contains(t, txt, "Total Prompts: 2")
	assert.Contains(t, txt, "greeting: 1 prompts")
}
