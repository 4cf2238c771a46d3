package framework

import (
	"fmt"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Info       TestInfo
	Errors     []error
	Skipped    bool
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID is the name of a test as the harness presents it: a suite name and a test name.
// Two registered tests may have the same TestID; the harness does not require uniqueness.
type TestID struct {
	Suite string
	Name  string
}

func (t TestID) String() string {
	return t.Suite + "." + t.Name
}

// TestInfo describes a registered test.
type TestInfo struct {
	ID   TestID
	File string
	Line int
	// Tag is an opaque identifier supplied by whoever registered the test. It is included in
	// reports but never used for display or filtering.
	Tag string
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
