package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/launchdarkly/gtest-bridge/config"
	"github.com/launchdarkly/gtest-bridge/framework"
	"github.com/launchdarkly/gtest-bridge/scan"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(2)
	}
	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(2)
	}
	params.apply(cfg.Scan)

	debugLogger := framework.NullLogger()
	if params.debug {
		debugLogger = log.New(os.Stderr, "", log.LstdFlags)
	}

	result, err := scan.Scan(context.Background(), params.root, scan.Options{
		Include: params.include,
		Exclude: params.exclude,
		Package: params.pkg,
		Workers: params.workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Scan failed: %s\n", err)
		os.Exit(1)
	}
	debugLogger.Printf("Scanned %d file(s) under %s", result.FilesScanned, params.root)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s\n", e)
	}

	var decls []scan.Declaration
	for _, d := range result.Declarations {
		if !params.names.IsDefined() || params.names.AnyMatch(d.Name()) {
			decls = append(decls, d)
		}
	}

	if params.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if decls == nil {
			decls = []scan.Declaration{}
		}
		if err := enc.Encode(decls); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	} else {
		printDeclarations(decls)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

func printDeclarations(decls []scan.Declaration) {
	disabled := 0
	for _, d := range decls {
		line := d.Name()
		if d.Disabled {
			line += " (disabled)"
			disabled++
		}
		fmt.Println(line)
		fmt.Printf("  scope: %s\n", strings.Join(d.Scope, "::"))
		fmt.Printf("  at %s:%d\n", d.File, d.Line)
	}
	fmt.Printf("\n%d test declaration(s), %d disabled\n", len(decls), disabled)
}
