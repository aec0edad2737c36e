package search

import (
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

func texts(r Result) []string {
	var out []string
	for _, m := range r.Matches() {
		out = append(out, m.Entry.Text)
	}
	return out
}

func TestFind_NoFilters_ReturnsEverythingInOrder(t *testing.T) {
	c := mustParse(t, `{"b": ["1", "2"], "a": ["3"]}`)

	r := Find(c, Query{})

	assert.Equal(t, c.Len(), r.Len())
	assert.Equal(t, []string{"1", "2", "3"}, texts(r))
	assert.Equal(t, []string{"b", "a"}, r.Categories())
}

func TestFind_CategoryFilter(t *testing.T) {
	c := mustParse(t, `{"greeting": ["hello world"], "farewell": ["goodbye world"]}`)

	r := Find(c, Query{Category: "greeting"})

	assert.Equal(t, []string{"hello world"}, texts(r))
}

func TestFind_UnknownCategory_Empty(t *testing.T) {
	c := mustParse(t, `{"greeting": ["hello world"]}`)

	r := Find(c, Query{Category: "nope"})

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Matches())
}

func TestFind_CategoryIsCaseSensitive(t *testing.T) {
	c := mustParse(t, `{"Greeting": ["hello"]}`)

	assert.Equal(t, 0, Find(c, Query{Category: "greeting"}).Len())
	assert.Equal(t, 1, Find(c, Query{Category: "Greeting"}).Len())
}

func TestFind_PatternIsCaseInsensitive(t *testing.T) {
	c := mustParse(t, `{"a": ["fix the TODO list", "nothing here"], "b": ["another todo item"]}`)

	upper := Find(c, Query{Pattern: "TODO"})
	lower := Find(c, Query{Pattern: "todo"})

	assert.Equal(t, texts(upper), texts(lower))
	assert.Equal(t, []string{"fix the TODO list", "another todo item"}, texts(lower))
}

func TestFind_PatternMatchesAcrossCategories(t *testing.T) {
	c := mustParse(t, `{"greeting": ["hello world"], "farewell": ["goodbye world"]}`)

	r := Find(c, Query{Pattern: "world"})

	assert.Equal(t, []string{"hello world", "goodbye world"}, texts(r))
}

func TestFind_EmptyPatternMatchesEverything(t *testing.T) {
	c := mustParse(t, `{"a": ["x", ""], "b": ["y"]}`)

	r := Find(c, Query{Pattern: ""})

	assert.Equal(t, 3, r.Len())
}

func TestFind_BothFiltersAreANDed(t *testing.T) {
	c := mustParse(t, `{
		"greeting": ["hello world", "hi there"],
		"farewell": ["goodbye world"]
	}`)

	r := Find(c, Query{Pattern: "world", Category: "greeting"})

	assert.Equal(t, []string{"hello world"}, texts(r))
}

func TestFind_OrderIsStable(t *testing.T) {
	c := mustParse(t, `{"z": ["za", "zb"], "a": ["aa"], "m": ["ma"]}`)

	first := Find(c, Query{Pattern: "a"})
	second := Find(c, Query{Pattern: "a"})

	assert.Equal(t, texts(first), texts(second))
	assert.Equal(t, []string{"za", "aa", "ma"}, texts(first))
}

func TestResult_GroupedView(t *testing.T) {
	c := mustParse(t, `{"a": ["one", "two"], "b": ["three"]}`)

	r := Find(c, Query{})

	assert.Equal(t, []string{"a", "b"}, r.Categories())
	require.Len(t, r.Entries("a"), 2)
	assert.Equal(t, "one", r.Entries("a")[0].Text)
	assert.Empty(t, r.Entries("missing"))
}
