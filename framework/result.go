package framework

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
	// Notes are remarks the test wants shown in the summary whether or not it failed.
	Notes []string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	return TestID{Path: append(append([]string(nil), t.Path...), name)}
}

// RunPattern returns a RegexFilters pattern that selects exactly this test and its subtests.
func (t TestID) RunPattern() string {
	levels := make([]string, len(t.Path))
	for i, name := range t.Path {
		levels[i] = "^" + strings.ReplaceAll(regexp.QuoteMeta(name), "/", `\/`) + "$"
	}
	return strings.Join(levels, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the test run to standard output.
func PrintResults(results Results) {
	printNotes(results)
	ran := len(results.Tests) - len(results.Skipped)
	if results.OK() {
		color.Green("All tests passed (%d run, %d skipped)", ran, len(results.Skipped))
		return
	}
	color.Red("FAILED TESTS (%d of %d run, %d skipped):", len(results.Failures), ran, len(results.Skipped))
	for _, f := range results.Failures {
		fmt.Printf("  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	}
}

func printNotes(results Results) {
	var noted []TestResult
	for _, r := range results.Tests {
		if len(r.Notes) > 0 && !r.Skipped {
			noted = append(noted, r)
		}
	}
	if len(noted) == 0 {
		return
	}
	color.Yellow("NOTES (%d tests):", len(noted))
	for _, r := range noted {
		for _, n := range r.Notes {
			fmt.Printf("  * %s: %s\n", r.TestID, n)
		}
	}
	fmt.Println()
}
