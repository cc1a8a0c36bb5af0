package suite

import (
	"errors"
	"testing"

	"github.com/sendrequest/api-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	skipped  []string
}

func (r *recordingTestLogger) TestStarted(id framework.TestID) {
	r.started = append(r.started, id.String())
}
func (r *recordingTestLogger) TestError(framework.TestID, error) {}
func (r *recordingTestLogger) TestFinished(id framework.TestID, failed bool, _ framework.CapturedOutput) {
	r.finished = append(r.finished, id.String())
}
func (r *recordingTestLogger) TestSkipped(id framework.TestID, _ string) {
	r.skipped = append(r.skipped, id.String())
}

func TestAssertContinuesAndRequireStops(t *testing.T) {
	reachedEnd := false
	results := Run(Config{}, func(t *T) {
		t.Run("soft", func(t *T) {
			assert.Equal(t, 1, 2)
			assert.Equal(t, "a", "b")
			reachedEnd = true
		})
		t.Run("hard", func(t *T) {
			require.Equal(t, 1, 2)
			t.Errorf("not reached")
		})
		t.Run("ok", func(t *T) {})
	})

	assert.True(t, reachedEnd)
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "soft", results.Failures[0].TestID.String())
	assert.Len(t, results.Failures[0].Errors, 2)
	assert.Equal(t, "hard", results.Failures[1].TestID.String())
	assert.Len(t, results.Failures[1].Errors, 1)
	assert.Len(t, results.Tests, 3)
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(Config{}, func(t *T) {
		t.Run("panics", func(t *T) {
			panic(errors.New("boom"))
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestDeferredFunctionsRunInReverseOrderEvenAfterFailure(t *testing.T) {
	var calls []int
	Run(Config{}, func(t *T) {
		t.Run("x", func(t *T) {
			t.Defer(func() { calls = append(calls, 1) })
			t.Defer(func() { calls = append(calls, 2) })
			t.FailNow()
		})
	})
	assert.Equal(t, []int{2, 1}, calls)
}

func TestFailureInDeferredFunctionIsRecorded(t *testing.T) {
	results := Run(Config{}, func(t *T) {
		t.Run("x", func(t *T) {
			t.Defer(func() { require.Fail(t, "cleanup failed") })
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "cleanup failed")
}

func TestFilterSkipsSubtests(t *testing.T) {
	logger := &recordingTestLogger{}
	ran := false
	results := Run(Config{
		Filter:     func(id framework.TestID) bool { return id.String() != "b" },
		TestLogger: logger,
	}, func(t *T) {
		t.Run("a", func(t *T) { ran = true })
		t.Run("b", func(t *T) { t.Errorf("should not run") })
	})
	assert.True(t, ran)
	assert.True(t, results.OK())
	assert.Equal(t, []string{"a", "b"}, logger.started)
	assert.Equal(t, []string{"a"}, logger.finished)
	assert.Equal(t, []string{"b"}, logger.skipped)
}

func TestMarks(t *testing.T) {
	var reached []string
	results := Run(Config{Marks: framework.MarkFilter{"smoke"}}, func(t *T) {
		t.Run("group", func(t *T) {
			t.Run("smoke test", func(t *T) {
				t.Mark("smoke", "regression")
				reached = append(reached, t.ID().String())
				assert.Equal(t, []string{"smoke", "regression"}, t.Marks())
			})
			t.Run("negative test", func(t *T) {
				t.Mark("negative")
				reached = append(reached, t.ID().String())
			})
		})
	})
	assert.Equal(t, []string{"group/smoke test"}, reached)
	require.Len(t, results.Skipped, 1)
	assert.Equal(t, "group/negative test", results.Skipped[0].TestID.String())
	assert.True(t, results.OK())
}

func TestSkipIsNotAFailure(t *testing.T) {
	results := Run(Config{}, func(t *T) {
		t.Run("x", func(t *T) {
			t.SkipWithReason("not applicable")
			t.Errorf("not reached")
		})
	})
	assert.True(t, results.OK())
	assert.Len(t, results.Skipped, 1)
}

func TestContextAndDebugOutput(t *testing.T) {
	var output framework.CapturedOutput
	logger := &outputCapturingLogger{onFinish: func(o framework.CapturedOutput) { output = o }}
	Run(Config{Context: "ctx", TestLogger: logger}, func(t *T) {
		t.Run("x", func(t *T) {
			assert.Equal(t, "ctx", t.Context())
			t.Debug("hello %d", 1)
			t.DebugLogger().Printf("world")
		})
	})
	require.Len(t, output, 2)
	assert.Equal(t, "hello 1", output[0].Message)
	assert.Equal(t, "world", output[1].Message)
}

type outputCapturingLogger struct {
	recordingTestLogger
	onFinish func(framework.CapturedOutput)
}

func (o *outputCapturingLogger) TestFinished(id framework.TestID, failed bool, output framework.CapturedOutput) {
	o.onFinish(output)
}

func TestNotesAreKeptForPassingTests(t *testing.T) {
	results := Run(Config{}, func(t *T) {
		t.Run("noted", func(t *T) {
			t.Note("expects %d", 200)
		})
	})
	require.True(t, results.OK())
	require.Len(t, results.Tests, 1)
	assert.Equal(t, []string{"expects 200"}, results.Tests[0].Notes)
}
