package framework

// TestLogger receives the progress of a run. For each test the harness calls TestStarted, then
// TestError once per recorded failure, then either TestFinished or TestSkipped.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	// TestFinished is called after a test ran. debugOutput holds whatever the test sent to its
	// debug logger, including log output of a bridged test body.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	// TestSkipped is called instead of TestFinished for a test that was disabled, excluded by
	// the filter, or that skipped itself.
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (nullTestLogger) TestStarted(TestID)                        {}
func (nullTestLogger) TestError(TestID, error)                   {}
func (nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (nullTestLogger) TestSkipped(TestID, string)                {}
