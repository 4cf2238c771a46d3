package gtest

import (
	"github.com/launchdarkly/gtest-bridge/framework"
)

type harnessHost struct {
	harness *framework.TestHarness
}

// InstallHarness installs the tests in r into a framework.TestHarness.
func InstallHarness(r *Registry, harness *framework.TestHarness) {
	Install(r, harnessHost{harness: harness})
}

func (h harnessHost) AddTest(info TestInfo, run Thunk) {
	h.harness.RegisterTest(harnessInfo(info), func(c *framework.Context) {
		outcome := run(c.DebugLogger())
		switch {
		case outcome.Failed:
			c.Errorf("%s", outcome.Message)
		case outcome.Skipped:
			c.Skip(outcome.Message)
		}
	})
}

func (h harnessHost) AddDisabled(info TestInfo) {
	h.harness.RegisterDisabled(harnessInfo(info))
}

func harnessInfo(info TestInfo) framework.TestInfo {
	return framework.TestInfo{
		ID:   framework.TestID{Suite: info.Suite, Name: info.Test},
		File: info.Location.File,
		Line: info.Location.Line,
		Tag:  info.Key,
	}
}
