package gtest

import (
	"fmt"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/testbox"

	"github.com/launchdarkly/gtest-bridge/framework"
)

type goTestHost struct {
	tests []goTest
}

type goTest struct {
	info TestInfo
	run  Thunk
}

func (h *goTestHost) AddTest(info TestInfo, run Thunk) {
	h.tests = append(h.tests, goTest{info: info, run: run})
}

func (h *goTestHost) AddDisabled(info TestInfo) {
	h.tests = append(h.tests, goTest{info: info})
}

// RunTests runs the tests in the default registry as subtests of t, named "Suite.Test".
// Disabled tests are reported as skipped. A package opts in with
//
//	func TestDeclared(t *testing.T) { gtest.RunTests(t) }
func RunTests(t *testing.T) {
	RunTestsFrom(t, defaultRegistry)
}

// RunTestsFrom is like RunTests but uses the tests in r.
func RunTestsFrom(t *testing.T, r *Registry) {
	host := &goTestHost{}
	Install(r, host)
	for _, test := range host.tests {
		test := test
		t.Run(test.info.Suite+"."+test.info.Test, func(t *testing.T) {
			report(testbox.RealTest(t), test, logfLogger(t.Logf))
		})
	}
}

// logfLogger adapts (*testing.T).Logf to framework.Logger.
type logfLogger func(format string, args ...interface{})

func (f logfLogger) Printf(format string, args ...interface{}) { f(format, args...) }

// report runs test, if it is enabled, and reports its outcome to tt.
func report(tt testbox.TestingT, test goTest, logger framework.Logger) {
	if test.run == nil {
		tt.Skip(fmt.Sprintf("disabled test declared at %s", test.info.Location))
		return
	}
	outcome := test.run(logger)
	switch {
	case outcome.Failed:
		tt.Errorf("%s\n(declared at %s)", outcome.Message, test.info.Location)
	case outcome.Skipped:
		tt.Skip(outcome.Message)
	}
}
