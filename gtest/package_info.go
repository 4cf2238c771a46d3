// Package gtest lets ordinary Go functions be declared as tests with an explicit suite name
// and test name, and runs them under a native test framework.
//
// Declaring a test registers a Descriptor in a process-wide Registry while the program
// initializes:
//
//	var _ = gtest.Register("Parser", "HandlesEmptyInput", func(t *gtest.T) {
//		assert.Empty(t, parse(""))
//	})
//
//	var _ = gtest.In("legacy").Register("Parser", "ReadsOldFormat", func() error {
//		_, err := parseOld(sample)
//		return err
//	})
//
// The suite and test names are what the host framework displays; they may repeat across
// declaration sites. Each descriptor also gets an internal key derived from its scope chain and
// source location, so repeated names never overwrite each other. A test name starting with
// DISABLED_ registers the test without ever running it.
//
// When the host starts, Install freezes the registry and hands every descriptor to a Host.
// InstallHarness targets the framework package's TestHarness, and RunTests targets Go's own
// testing package. Each enabled test is executed through RunWithLogger, which turns failures
// recorded through T, returned errors, panics and runtime.Goexit into a single Outcome.
package gtest
