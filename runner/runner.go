// Package runner is the entry point of a test binary whose tests are declared with the gtest
// package. A binary only needs
//
//	func main() { runner.Main() }
//
// in a package that imports the packages declaring its tests.
package runner

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"github.com/launchdarkly/gtest-bridge/config"
	"github.com/launchdarkly/gtest-bridge/framework"
	"github.com/launchdarkly/gtest-bridge/gtest"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitInvalid = 2
)

// Main runs the tests in the default registry with os.Args and exits.
func Main() {
	os.Exit(Run(os.Args, gtest.Default(), os.Stdout))
}

// Run runs the tests in registry according to args and returns the process exit code: 0 if all
// selected tests passed, 1 if any failed, 2 for invalid parameters.
func Run(args []string, registry *gtest.Registry, out io.Writer) int {
	var params commandParams
	if err := params.Read(args, out); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(out, "Invalid parameters: %s\n", err)
		return exitInvalid
	}
	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(out, "Invalid configuration: %s\n", err)
		return exitInvalid
	}
	if err := params.applyConfig(cfg.Run); err != nil {
		fmt.Fprintf(out, "Invalid configuration: %s\n", err)
		return exitInvalid
	}
	glob, err := framework.ParseGlobFilter(params.filter)
	if err != nil {
		fmt.Fprintf(out, "Invalid parameters: %s\n", err)
		return exitInvalid
	}
	if params.noColor {
		color.NoColor = true
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(out, "", log.LstdFlags)
	}

	testLogger := &framework.ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	harness := framework.NewTestHarness(
		framework.AllOf(params.filters.AsFilter, glob.AsFilter),
		testLogger,
	)
	gtest.InstallHarness(registry, harness)
	mainDebugLogger.Printf("Installed %d declared test(s)", len(harness.Tests()))

	if params.list {
		listTests(out, harness.Tests())
		return exitOK
	}

	framework.PrintFilterDescription(out, params.filters, glob)
	fmt.Fprintln(out, "Running test suite")
	results := harness.Run()

	fmt.Fprintln(out)
	var rerun []string
	if len(args) > 0 {
		rerun = args[:1]
	}
	framework.PrintResults(out, results, rerun...)

	if params.jsonReport != "" {
		if err := writeReport(params.jsonReport, results); err != nil {
			fmt.Fprintf(out, "Could not write JSON report: %s\n", err)
			return exitFailed
		}
		mainDebugLogger.Printf("Wrote JSON report to %s", params.jsonReport)
	}
	if !results.OK() {
		return exitFailed
	}
	return exitOK
}

func listTests(out io.Writer, tests []framework.TestInfo) {
	for _, t := range tests {
		line := t.ID.String()
		if strings.HasPrefix(t.ID.Name, framework.DisabledPrefix) {
			line += " (disabled)"
		}
		if t.File != "" {
			line += fmt.Sprintf("  %s:%d", t.File, t.Line)
		}
		fmt.Fprintln(out, line)
	}
}

func writeReport(path string, results framework.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := framework.WriteJSONReport(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
