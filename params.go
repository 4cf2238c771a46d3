package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/launchdarkly/gtest-bridge/config"
	"github.com/launchdarkly/gtest-bridge/framework"
)

type commandParams struct {
	configPath string
	root       string
	include    []string
	exclude    []string
	pkg        string
	workers    int
	names      framework.RegexList
	jsonOutput bool
	debug      bool
}

func (c *commandParams) Read(args []string) bool {
	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.StringVar(&c.configPath, "config", "", "YAML config file (default from $"+config.EnvConfigPath+")")
	fs.StringSliceVar(&c.include, "include", nil, "glob(s) of files to scan, relative to the root")
	fs.StringSliceVar(&c.exclude, "exclude", nil, "glob(s) of files not to scan")
	fs.StringVar(&c.pkg, "package", "", `identifier the gtest package is imported as (default "gtest")`)
	fs.IntVar(&c.workers, "workers", 0, "number of files parsed concurrently (default GOMAXPROCS)")
	fs.Var(&c.names, "run", "regex pattern(s) selecting which Suite.Test names to list")
	fs.BoolVar(&c.jsonOutput, "json", false, "print declarations as JSON")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [root]\n\nLists the tests declared with gtest in Go source under root (default \".\").\n\n", args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		if err != pflag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	switch fs.NArg() {
	case 0:
		c.root = "."
	case 1:
		c.root = fs.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "at most one root directory may be given")
		fs.Usage()
		return false
	}
	return true
}

// apply fills in anything not given on the command line from the config file.
func (c *commandParams) apply(cfg config.ScanConfig) {
	if len(c.include) == 0 {
		c.include = cfg.Include
	}
	if len(c.exclude) == 0 {
		c.exclude = cfg.Exclude
	}
	if c.pkg == "" {
		c.pkg = cfg.Package
	}
	if c.workers == 0 {
		c.workers = cfg.Workers
	}
}
