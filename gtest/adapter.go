package gtest

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/launchdarkly/go-test-helpers/v2/testbox"

	"github.com/launchdarkly/gtest-bridge/framework"
)

const noFailureMessage = "test failed with no failure message"

// Outcome is the result of running a test body once. Message holds the failure messages of a
// failed test, or the reason given by a test that skipped itself.
type Outcome struct {
	Failed  bool
	Skipped bool
	Message string
}

func Passed() Outcome {
	return Outcome{}
}

func Failed(message string) Outcome {
	if message == "" {
		message = noFailureMessage
	}
	return Outcome{Failed: true, Message: message}
}

// Skipped is the outcome of a test that called Skip without failing first.
func Skipped(reason string) Outcome {
	return Outcome{Skipped: true, Message: reason}
}

func (o Outcome) String() string {
	switch {
	case o.Failed:
		return "failed: " + o.Message
	case o.Skipped && o.Message != "":
		return "skipped: " + o.Message
	case o.Skipped:
		return "skipped"
	default:
		return "passed"
	}
}

// Run executes the body of d and reports whether it passed. See RunWithLogger.
func Run(d *Descriptor) Outcome {
	return RunWithLogger(d, nil)
}

// RunWithLogger executes the body of d with a fresh T whose Log output goes to logger.
//
// The test fails if the body records a failure through T, returns a non-nil error, panics, or
// exits its goroutine. The body runs in a testbox sandbox on its own goroutine, so none of these
// ever reach the caller. Disabled descriptors are not run and yield a failure.
func RunWithLogger(d *Descriptor, logger framework.Logger) Outcome {
	if d.Disabled() {
		return Failed(fmt.Sprintf("test %s is disabled and must not be run", d))
	}
	result := testbox.SandboxTest(func(tt testbox.TestingT) {
		t := newT(d.Suite()+"."+d.Test(), tt, logger)
		guard(t, func() error { return d.body(t) })
	})
	return outcomeOf(result)
}

// guard runs body on the current goroutine and turns every way it can end other than a
// normal nil return into a failure recorded on t.
func guard(t *T, body func() error) {
	returned := false
	defer func() {
		if returned {
			return
		}
		if r := recover(); r != nil {
			t.Errorf("test terminated abruptly: %s\n%s", describePanic(r), debug.Stack())
		} else if !t.stopped.Load() {
			t.Errorf("test terminated abruptly: runtime.Goexit was called")
		}
	}()
	err := body()
	returned = true
	if err != nil {
		t.Errorf("test returned error: %s", err)
	}
}

func describePanic(r interface{}) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%+v", v)
	}
}

func outcomeOf(result testbox.SandboxResult) Outcome {
	var messages []string
	for _, f := range result.Failures {
		if f.Message == "" {
			continue
		}
		if len(f.Path) > 0 {
			messages = append(messages, strings.Join(f.Path, "/")+": "+f.Message)
		} else {
			messages = append(messages, f.Message)
		}
	}
	switch {
	case result.Failed:
		return Failed(strings.Join(messages, "\n"))
	case result.Skipped:
		return Skipped(skipMessage(result.Skips))
	default:
		return Passed()
	}
}

func skipMessage(skips []testbox.LogItem) string {
	for _, s := range skips {
		if len(s.Path) == 0 {
			return s.Message
		}
	}
	return ""
}
