package suite

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/sendrequest/api-contract-tests/framework"
)

type environment struct {
	results    framework.Results
	testLogger framework.TestLogger
	filter     framework.Filter
	marks      framework.MarkFilter
	context    interface{}
}

// Config holds the run-wide parameters for Run.
type Config struct {
	// Filter, if not nil, decides which tests are run by ID.
	Filter framework.Filter

	// Marks, if defined, restricts the run to tests that declare a matching marker with T.Mark.
	Marks framework.MarkFilter

	// TestLogger receives progress notifications. If nil, nothing is reported.
	TestLogger framework.TestLogger

	// Context is an arbitrary value made available to every test through T.Context.
	Context interface{}
}

// T represents a test or subtest in the contract test suite.
type T struct {
	env         *environment
	id          framework.TestID
	marks       []string
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	notes       []string
	cleanups    []func()
}

// Run executes the top-level test action and returns the accumulated results of it and all of
// its subtests.
func Run(config Config, action func(*T)) framework.Results {
	testLogger := config.TestLogger
	if testLogger == nil {
		testLogger = framework.NullTestLogger()
	}
	env := &environment{
		filter:     config.Filter,
		marks:      config.Marks,
		testLogger: testLogger,
		context:    config.Context,
	}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	defer func() {
		r := recover()
		t.runCleanups()
		if r != nil && !t.skipped {
			t.failed = true
			var addError error
			if r == t {
				if len(t.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				t.errors = append(t.errors, addError)
				t.env.testLogger.TestError(t.id, addError)
			}
		}
		if len(t.id.Path) == 0 && !t.failed {
			return // the root context only shows up in the results if something went wrong there
		}
		result := framework.TestResult{TestID: t.id, Errors: t.errors, Skipped: t.skipped, Notes: t.notes}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		} else if t.skipped {
			t.env.results.Skipped = append(t.env.results.Skipped, result)
		}
	}()

	action(t)
}

func (t *T) runCleanups() {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.runCleanup(t.cleanups[i])
	}
	t.cleanups = nil
}

func (t *T) runCleanup(f func()) {
	defer func() {
		if r := recover(); r != nil && r != t {
			t.Errorf("unexpected panic in deferred cleanup: %+v", r)
		}
	}()
	f()
}

// ID returns the full identifier of this test.
func (t *T) ID() framework.TestID {
	return t.id
}

// Context returns the value that was passed as Config.Context to Run.
func (t *T) Context() interface{} {
	return t.env.context
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)

	t.env.testLogger.TestStarted(id)
	if t.env.filter != nil && !t.env.filter(id) {
		t.env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	t1 := &T{
		id:    id,
		env:   t.env,
		marks: append([]string(nil), t.marks...),
	}
	t1.run(action)
	if t1.skipped {
		t.env.testLogger.TestSkipped(id, t1.skipReason)
	} else {
		t.env.testLogger.TestFinished(id, t1.failed, t1.debugLogger.Output())
	}
}

// Mark declares markers for this test, such as "smoke" or "negative". Subtests inherit the
// markers of their parent. If the run was restricted to certain markers and none of this
// test's markers are among them, the test is skipped; so Mark should be called at the start
// of a test that makes requests, not by a test that only groups subtests.
func (t *T) Mark(marks ...string) {
	t.marks = append(t.marks, marks...)
	if !t.env.marks.Selects(t.marks) {
		t.SkipWithReason("excluded by marker parameters")
	}
}

// Marks returns the markers declared so far for this test, including inherited ones.
func (t *T) Marks() []string {
	return append([]string(nil), t.marks...)
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.failed = true
	err := fmt.Errorf(format, args...)
	t.errors = append(t.errors, err)
	t.env.testLogger.TestError(t.id, err)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	panic(t)
}

func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer schedules a function to run when the test ends, whether it passed, failed, or
// panicked. Deferred functions run in reverse order of registration.
func (t *T) Defer(f func()) {
	t.cleanups = append(t.cleanups, f)
}

// Note records a remark that is shown in the summary of the run even if the test passes.
func (t *T) Note(format string, args ...interface{}) {
	note := fmt.Sprintf(format, args...)
	t.notes = append(t.notes, note)
	t.debugLogger.Printf("%s", note)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}
