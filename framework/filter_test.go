package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	assert.True(t, f.AsFilter(TestID{Path: []string{"anything"}}))

	require.NoError(t, f.MustMatch.Set("^users"))
	require.NoError(t, f.MustNotMatch.Set("/offset"))
	assert.True(t, f.AsFilter(TestID{Path: []string{"users list"}}))
	assert.True(t, f.AsFilter(TestID{Path: []string{"users list", "valid limit 5"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"users list", "offset within range"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"companies list"}}))

	assert.Error(t, f.MustMatch.Set("("))
}

func TestRegexFiltersSelectParentsOfMatchingTests(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^company by id$/^invalid id 1\\.5$"))
	assert.True(t, f.AsFilter(TestID{Path: []string{"company by id"}}))
	assert.True(t, f.AsFilter(TestID{Path: []string{"company by id", "invalid id 1.5"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"company by id", "invalid id ABC"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"company by id x"}}))
	assert.False(t, f.AsFilter(TestID{Path: []string{"users list"}}))
}

func TestRegexFiltersKeepBracketedSlashes(t *testing.T) {
	assert.Equal(t, []string{"a[/]b", "(c/d)", ""}, splitLevels("a[/]b/(c/d)/"))
	assert.Equal(t, []string{`a\/b`, "c"}, splitLevels(`a\/b/c`))
}

func TestRunPattern(t *testing.T) {
	id := TestID{Path: []string{"create user", "last_name 1/2 (x)"}}
	assert.Equal(t, `^create user$/^last_name 1\/2 \(x\)$`, id.RunPattern())

	var f RegexFilters
	require.NoError(t, f.MustMatch.Set(id.RunPattern()))
	assert.True(t, f.AsFilter(TestID{Path: []string{"create user"}}))
	assert.True(t, f.AsFilter(id))
	assert.False(t, f.AsFilter(TestID{Path: []string{"create user", "last_name 1"}}))
}

func TestMarkFilter(t *testing.T) {
	var m MarkFilter
	assert.True(t, m.Selects(nil))

	require.NoError(t, m.Set("smoke, negative"))
	assert.Equal(t, "smoke,negative", m.String())
	assert.True(t, m.Selects([]string{"regression", "negative"}))
	assert.False(t, m.Selects([]string{"regression"}))
	assert.False(t, m.Selects(nil))
}

func TestTestID(t *testing.T) {
	parent := TestID{Path: []string{"a"}}
	child := parent.Plus("b")
	assert.Equal(t, "a/b", child.String())
	assert.Equal(t, "a", parent.String())
}

func TestCapturingLogger(t *testing.T) {
	var l CapturingLogger
	LoggerWithPrefix(&l, "[x] ").Printf("hello %s", "there")
	out := l.Output()
	require.Len(t, out, 1)
	assert.Equal(t, "[x] hello there", out[0].Message)
}
