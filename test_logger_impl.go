package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/fatih/color"
)

type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		color.Red("  FAILED: %s", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		color.Yellow("  SKIPPED: %s", id)
	} else {
		color.Yellow("  SKIPPED: %s (%s)", id, reason)
	}
}
