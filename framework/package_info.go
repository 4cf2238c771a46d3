// Package framework is a small native test harness: it owns test registration, filtering,
// execution order, and reporting.
//
// The general model is:
//
// 1. Tests are registered with a TestHarness under a suite name and a test name, along with an
// action to run. Names starting with DisabledPrefix are registered but never run.
//
// 2. TestHarness.Run executes the remaining tests one at a time, giving each a Context which is
// similar to Go's *testing.T, allowing pieces of test logic to accumulate success/failure
// results and debug output.
//
// 3. Progress is reported through a TestLogger, and the final Results can be printed or written
// as a JSON report.
//
// Code that knows how tests are declared (see the gtest package) is responsible for turning its
// declarations into registrations; this package knows nothing about where tests come from.
package framework
