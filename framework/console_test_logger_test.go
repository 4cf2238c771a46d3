package framework

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestConsoleTestLogger(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := TestID{Suite: "Suite", Name: "Fails"}
	debug := CapturedOutput{{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "one\ntwo"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("first line\nsecond line"))
	logger.TestFinished(id, true, debug)
	logger.TestFinished(TestID{Suite: "Suite", Name: "Passes"}, false, debug)
	logger.TestSkipped(TestID{Suite: "Suite", Name: "DISABLED_X"}, "disabled")

	assert.Equal(t, "[Suite.Fails]\n"+
		"  first line\n"+
		"  second line\n"+
		"  FAILED: Suite.Fails\n"+
		"    DEBUG [2024-01-02 03:04:05.000] one\n"+
		"    DEBUG [2024-01-02 03:04:05.000] two\n"+
		"  PASSED: Suite.Passes\n"+
		"  SKIPPED: Suite.DISABLED_X (disabled)\n",
		buf.String())
}

func TestPrintResultsAllPassed(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	h := NewTestHarness(nil, nil)
	h.RegisterTest(testInfo("Suite", "Passes"), func(c *Context) {})
	h.RegisterDisabled(testInfo("Suite", "DISABLED_Later"))
	PrintResults(&buf, h.Run(), "./tests")

	assert.Equal(t, "Ran 1 test(s), 1 skipped\nAll tests passed\n", buf.String())
}

func TestPrintResultsWithFailures(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	PrintResults(&buf, sampleResults(), "./bin/my tests")

	out := buf.String()
	assert.Contains(t, out, "1 test(s) failed:\n  Suite.Fails\n    at harness_test.go:1\n    [Suite.Fails]: uhoh\n")
	assert.Contains(t, out, `'./bin/my tests' --run '^(Suite\.Fails)$'`)
}
