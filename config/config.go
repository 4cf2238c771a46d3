// Package config loads the optional YAML configuration shared by the test runner and the
// declaration scanner. Command line flags override anything set here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names an environment variable holding a config file path, used when no path is
// given on the command line.
const EnvConfigPath = "GTEST_BRIDGE_CONFIG"

type Config struct {
	Run  RunConfig  `yaml:"run"`
	Scan ScanConfig `yaml:"scan"`
}

// RunConfig controls which tests a test binary runs and how it reports them.
type RunConfig struct {
	// Include and Exclude are regular expressions matched against "Suite.Test".
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// Filter uses Google Test filter syntax, e.g. "Foo.*-Foo.Slow*".
	Filter     string `yaml:"filter"`
	Debug      bool   `yaml:"debug"`
	DebugAll   bool   `yaml:"debugAll"`
	JSONReport string `yaml:"jsonReport"`
	Color      *bool  `yaml:"color"`
}

// ScanConfig controls static discovery of declarations in Go source.
type ScanConfig struct {
	// Include and Exclude are doublestar globs relative to the scanned root.
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	// Package is the identifier the gtest package is imported as.
	Package string `yaml:"package"`
	Workers int    `yaml:"workers"`
}

func Default() Config {
	return Config{
		Scan: ScanConfig{
			Include: []string{"**/*.go"},
			Exclude: []string{"vendor/**", "**/testdata/**"},
			Package: "gtest",
		},
	}
}

// Load reads a config file. An empty path returns the defaults, unless EnvConfigPath is set.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML over the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if c.Scan.Package == "" {
		c.Scan.Package = "gtest"
	}
	if c.Scan.Workers < 0 {
		return Config{}, fmt.Errorf("invalid config: scan.workers must not be negative")
	}
	return c, nil
}
