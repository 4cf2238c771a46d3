package runner

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/launchdarkly/gtest-bridge/config"
	"github.com/launchdarkly/gtest-bridge/framework"
)

type commandParams struct {
	configPath string
	filters    framework.RegexFilters
	filter     string
	list       bool
	debug      bool
	debugAll   bool
	jsonReport string
	noColor    bool
}

// Read parses args, where args[0] is the program name. Output for --help and parse errors goes
// to out.
func (c *commandParams) Read(args []string, out io.Writer) error {
	name := "test"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&c.configPath, "config", "", "YAML config file (default from $"+config.EnvConfigPath+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.filter, "filter", "", `Google Test style filter, e.g. "Suite.*-Suite.Slow*"`)
	fs.BoolVar(&c.list, "list", false, "list tests without running them")
	fs.BoolVar(&c.debug, "debug", false, "show debug output of failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output of all tests and of the runner")
	fs.StringVar(&c.jsonReport, "json", "", "write a JSON report to this file")
	fs.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	return fs.Parse(args)
}

// applyConfig merges file settings underneath the command line: patterns accumulate, and
// scalar settings from the file apply only where the flag was left at its default.
func (c *commandParams) applyConfig(cfg config.RunConfig) error {
	for _, p := range cfg.Include {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return fmt.Errorf("config run.include: %w", err)
		}
	}
	for _, p := range cfg.Exclude {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return fmt.Errorf("config run.exclude: %w", err)
		}
	}
	if c.filter == "" {
		c.filter = cfg.Filter
	}
	if c.jsonReport == "" {
		c.jsonReport = cfg.JSONReport
	}
	c.debug = c.debug || cfg.Debug
	c.debugAll = c.debugAll || cfg.DebugAll
	if cfg.Color != nil && !*cfg.Color {
		c.noColor = true
	}
	return nil
}
