package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	filters  framework.RegexFilters
	marks    framework.MarkFilter
	debug    bool
	debugAll bool
	twin     bool
	seed     int64
	seedSet  bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.Var(&c.marks, "mark", "marker(s) to select tests to run, such as smoke,negative")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.twin, "twin", false, "run against an in-process twin of the service instead of the real one")
	fs.Int64Var(&c.seed, "seed", 0, "seed for random test values (default: based on the current time)")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			c.seedSet = true
		}
	})
	return true
}

// rerunCommand returns a command line that runs only the given tests again, with the same seed.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var cmd commandBuilder
	cmd.add(program)
	if c.twin {
		cmd.add("-twin")
	}
	if c.debug || c.debugAll {
		cmd.add("-debug")
	}
	cmd.add("-seed", fmt.Sprint(c.seed))
	for _, f := range failures {
		cmd.add("-run", f.TestID.RunPattern())
	}
	return cmd.String()
}

// selectedNothing returns true if filters were given and every test was either filtered out or
// skipped, so that a mistyped filter is not reported as a passing run.
func (c *commandParams) selectedNothing(results framework.Results) bool {
	if !c.filters.MustMatch.IsDefined() && !c.marks.IsDefined() {
		return false
	}
	return len(results.Tests) == len(results.Skipped)
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
