package gtest

import (
	"github.com/launchdarkly/gtest-bridge/framework"
)

// TestInfo is what a host framework is told about a declared test.
type TestInfo struct {
	Suite    string
	Test     string
	Location Location
	// Key is the internal disambiguator. Hosts may record it, but it is not part of the test's
	// name.
	Key string
}

// Thunk runs one test and returns its outcome. Log output from the test goes to logger, which
// may be nil.
type Thunk func(logger framework.Logger) Outcome

// Host is the registration interface of a native test framework.
type Host interface {
	// AddTest registers an enabled test. The host calls run once for each execution.
	AddTest(info TestInfo, run Thunk)
	// AddDisabled registers a test that must be reported but never executed.
	AddDisabled(info TestInfo)
}

// Install freezes r and registers every descriptor in it with host, in registration order.
func Install(r *Registry, host Host) {
	r.Freeze()
	for _, d := range r.Enumerate() {
		info := d.info()
		if d.Disabled() {
			host.AddDisabled(info)
			continue
		}
		d := d
		host.AddTest(info, func(logger framework.Logger) Outcome {
			return RunWithLogger(d, logger)
		})
	}
}

func (d *Descriptor) info() TestInfo {
	return TestInfo{
		Suite:    d.Suite(),
		Test:     d.Test(),
		Location: d.Location(),
		Key:      d.Key(),
	}
}
