package gtest

import (
	"fmt"
	"sync/atomic"

	"github.com/launchdarkly/go-test-helpers/v2/testbox"

	"github.com/launchdarkly/gtest-bridge/framework"
)

// T is the execution context of one run of a test body. A new T is created for every run, so
// failures recorded in one run are never visible to another.
//
// T implements the interfaces expected by the testify assert and require packages: assert
// functions record a failure and let the test continue, require functions record a failure
// and stop the goroutine that called them, as with testing.T.
type T struct {
	tt      testbox.TestingT
	name    string
	logger  framework.Logger
	stopped atomic.Bool
}

func newT(name string, tt testbox.TestingT, logger framework.Logger) *T {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &T{tt: tt, name: name, logger: logger}
}

// Name returns the display name of the running test, "Suite.Test", followed by the names of
// any subtests.
func (t *T) Name() string {
	return t.name
}

// Errorf records a failure and continues.
func (t *T) Errorf(format string, args ...interface{}) {
	t.tt.Errorf(format, args...)
}

// Failed reports whether any failure has been recorded so far.
func (t *T) Failed() bool {
	return t.tt.Failed()
}

// Error records a failure and continues.
func (t *T) Error(args ...interface{}) {
	t.Errorf("%s", fmt.Sprint(args...))
}

// Fail marks the test as failed without a message and continues.
func (t *T) Fail() {
	t.Errorf("")
}

// FailNow marks the test as failed and stops the calling goroutine.
func (t *T) FailNow() {
	t.stopped.Store(true)
	t.tt.FailNow()
}

func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

func (t *T) Fatal(args ...interface{}) {
	t.Error(args...)
	t.FailNow()
}

// Skip ends the test early without failing it.
func (t *T) Skip(args ...interface{}) {
	t.stopped.Store(true)
	t.tt.Skip(args...)
}

func (t *T) Skipf(format string, args ...interface{}) {
	t.Skip(fmt.Sprintf(format, args...))
}

func (t *T) SkipNow() {
	t.Skip()
}

// Run runs fn as a subtest. A failure in the subtest fails t, but FailNow or a panic in the
// subtest only ends the subtest.
func (t *T) Run(name string, fn func(t *T)) {
	t.tt.Run(name, func(sub testbox.TestingT) {
		st := newT(t.name+"/"+name, sub, t.logger)
		guard(st, func() error {
			fn(st)
			return nil
		})
	})
}

// Logf writes to the debug logger supplied by the host framework.
func (t *T) Logf(format string, args ...interface{}) {
	t.logger.Printf(format, args...)
}

func (t *T) Log(args ...interface{}) {
	t.logger.Printf("%s", fmt.Sprint(args...))
}

func (t *T) Helper() {}
