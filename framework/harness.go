package framework

import (
	"strings"
)

// DisabledPrefix is the test name prefix that marks a test as disabled. The harness recognizes
// it on its own, so a test registered with RegisterTest under such a name is still not run.
const DisabledPrefix = "DISABLED_"

const (
	skipReasonDisabled = "disabled"
	skipReasonFilter   = "excluded by filter parameters"
	skipReasonSelf     = "skipped by the test"
)

// TestHarness holds the tests registered for one run. It is not safe for concurrent use;
// all registration is expected to happen before Run.
type TestHarness struct {
	tests      []registeredTest
	filter     Filter
	testLogger TestLogger
}

type registeredTest struct {
	info     TestInfo
	disabled bool
	action   func(*Context)
}

// NewTestHarness creates an empty harness. A nil filter selects every test and a nil
// testLogger discards all events.
func NewTestHarness(filter Filter, testLogger TestLogger) *TestHarness {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	return &TestHarness{
		filter:     filter,
		testLogger: testLogger,
	}
}

// RegisterTest adds a test to be run by Run.
func (h *TestHarness) RegisterTest(info TestInfo, action func(*Context)) {
	h.tests = append(h.tests, registeredTest{
		info:     info,
		disabled: strings.HasPrefix(info.ID.Name, DisabledPrefix),
		action:   action,
	})
}

// RegisterDisabled adds a test that is reported as skipped and never run.
func (h *TestHarness) RegisterDisabled(info TestInfo) {
	h.tests = append(h.tests, registeredTest{info: info, disabled: true})
}

// Tests returns the registered tests in registration order.
func (h *TestHarness) Tests() []TestInfo {
	ret := make([]TestInfo, 0, len(h.tests))
	for _, t := range h.tests {
		ret = append(ret, t.info)
	}
	return ret
}

// Run executes every registered test that is neither disabled nor excluded by the filter, one
// at a time, in registration order.
func (h *TestHarness) Run() Results {
	env := &environment{testLogger: h.testLogger}
	for _, t := range h.tests {
		h.runTest(env, t)
	}
	return env.results
}

func (h *TestHarness) runTest(env *environment, t registeredTest) {
	id := t.info.ID
	env.testLogger.TestStarted(id)

	var skipReason string
	switch {
	case t.disabled || t.action == nil:
		skipReason = skipReasonDisabled
	case h.filter != nil && !h.filter(id):
		skipReason = skipReasonFilter
	}
	if skipReason != "" {
		result := TestResult{TestID: id, Info: t.info, Skipped: true, SkipReason: skipReason}
		env.results.Tests = append(env.results.Tests, result)
		env.results.Skipped = append(env.results.Skipped, result)
		env.testLogger.TestSkipped(id, skipReason)
		return
	}

	c := &Context{id: id, env: env}
	c.run(t.action)

	if c.skipReason != "" && !c.failed {
		result := TestResult{TestID: id, Info: t.info, Skipped: true, SkipReason: c.skipReason}
		env.results.Tests = append(env.results.Tests, result)
		env.results.Skipped = append(env.results.Skipped, result)
		env.testLogger.TestSkipped(id, c.skipReason)
		return
	}

	result := TestResult{TestID: id, Info: t.info, Errors: c.errors}
	env.results.Tests = append(env.results.Tests, result)
	if c.failed {
		env.results.Failures = append(env.results.Failures, result)
	}
	env.testLogger.TestFinished(id, c.failed, c.debugLogger.Output())
}
