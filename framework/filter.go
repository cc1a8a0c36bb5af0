package framework

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by ID. As with the -run and -skip flags of "go test", each pattern
// is split on slashes that are not inside brackets or parentheses, and each part is matched
// against the corresponding level of the test ID.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter returns true if the test should run. A test whose ID is shorter than a MustMatch
// pattern is run if the levels it has match, since some of its subtests might match the rest.
// A MustNotMatch pattern only excludes a test once every level of the pattern has matched.
func (r RegexFilters) AsFilter(id TestID) bool {
	if r.MustMatch.IsDefined() && !r.MustMatch.anyMatch(id.Path, true) {
		return false
	}
	return !r.MustNotMatch.anyMatch(id.Path, false)
}

type RegexList struct {
	patterns []levelPattern
}

type levelPattern struct {
	source string
	levels []*regexp.Regexp
}

func (p levelPattern) match(path []string, allowPartial bool) bool {
	for i, rx := range p.levels {
		if i >= len(path) {
			return allowPartial
		}
		if !rx.MatchString(path[i]) {
			return false
		}
	}
	return true
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := levelPattern{source: value}
	for _, part := range splitLevels(value) {
		rx, err := regexp.Compile(part)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.levels = append(p.levels, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) anyMatch(path []string, allowPartial bool) bool {
	for _, p := range r.patterns {
		if p.match(path, allowPartial) {
			return true
		}
	}
	return false
}

func splitLevels(pattern string) []string {
	var parts []string
	brackets, parens, start := 0, 0, 0
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			brackets++
		case ']':
			if brackets > 0 {
				brackets--
			}
		case '(':
			if brackets == 0 {
				parens++
			}
		case ')':
			if brackets == 0 && parens > 0 {
				parens--
			}
		case '/':
			if brackets == 0 && parens == 0 {
				parts = append(parts, pattern[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, pattern[start:])
}

// MarkFilter selects tests by the markers they declare, such as "smoke" or "negative". An
// empty MarkFilter selects every test.
type MarkFilter []string

func (m MarkFilter) String() string {
	return strings.Join(m, ",")
}

// Set is called by the command line parser. It accepts a single marker or a comma-separated
// list of markers.
func (m *MarkFilter) Set(value string) error {
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			*m = append(*m, s)
		}
	}
	return nil
}

func (m MarkFilter) IsDefined() bool {
	return len(m) != 0
}

// Selects returns true if the filter is empty or if any of the given markers is in the filter.
func (m MarkFilter) Selects(marks []string) bool {
	if !m.IsDefined() {
		return true
	}
	for _, want := range m {
		for _, have := range marks {
			if want == have {
				return true
			}
		}
	}
	return false
}

func PrintFilterDescription(filters RegexFilters, marks MarkFilter) {
	if !filters.MustMatch.IsDefined() && !filters.MustNotMatch.IsDefined() && !marks.IsDefined() {
		return
	}
	fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
	}
	if marks.IsDefined() {
		fmt.Printf("  skip any not marked as one of: %s\n", marks)
	}
	fmt.Println()
}
