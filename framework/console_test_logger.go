package framework

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	passedColor  = color.New(color.FgGreen)
	skippedColor = color.New(color.FgYellow)
)

// ConsoleTestLogger prints test progress to Out, or to standard output if Out is nil.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		failedColor.Fprintf(c.out(), "  FAILED: %s\n", id)
	} else {
		passedColor.Fprintf(c.out(), "  PASSED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s\n", id)
	} else {
		skippedColor.Fprintf(c.out(), "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes a summary of the run. If rerunCommand is non-empty, it is printed with
// a -run argument selecting exactly the failed tests, quoted so it can be pasted into a shell.
func PrintResults(out io.Writer, results Results, rerunCommand ...string) {
	ran := len(results.Tests) - len(results.Skipped)
	fmt.Fprintf(out, "Ran %d test(s), %d skipped\n", ran, len(results.Skipped))
	if results.OK() {
		passedColor.Fprintln(out, "All tests passed")
		return
	}
	failedColor.Fprintf(out, "%d test(s) failed:\n", len(results.Failures))
	var names []string
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
		if f.Info.File != "" {
			fmt.Fprintf(out, "    at %s:%d\n", f.Info.File, f.Info.Line)
		}
		for _, err := range f.Errors {
			first := strings.SplitN(TestFailure{ID: f.TestID, Err: err}.Error(), "\n", 2)[0]
			fmt.Fprintf(out, "    %s\n", first)
		}
		names = append(names, rerunPattern(f.TestID))
	}
	if len(rerunCommand) > 0 {
		args := make([]string, 0, len(rerunCommand)+2)
		for _, a := range rerunCommand {
			args = append(args, shellescape.Quote(a))
		}
		args = append(args, "--run", shellescape.Quote("^("+strings.Join(names, "|")+")$"))
		fmt.Fprintf(out, "To rerun the failed tests:\n  %s\n", strings.Join(args, " "))
	}
}

func rerunPattern(id TestID) string {
	return regexp.QuoteMeta(id.Suite) + `\.` + regexp.QuoteMeta(id.Name)
}
