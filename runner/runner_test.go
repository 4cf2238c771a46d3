package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/gtest-bridge/config"
	"github.com/launchdarkly/gtest-bridge/gtest"
)

func init() {
	color.NoColor = true
}

func passingRegistry() *gtest.Registry {
	r := gtest.NewRegistry()
	r.Root().Register("Test", "InTopModule", func(t *gtest.T) { t.Logf("top") })
	r.Root().In("module1").Register("Test", "InChildModule", func() {})
	r.Root().Register("Test", "DISABLED_WithError", func() error { return errors.New("uhoh") })
	return r
}

func failingRegistry() *gtest.Registry {
	r := passingRegistry()
	r.Root().Register("Test", "WithError", func() error { return errors.New("uhoh") })
	return r
}

func run(t *testing.T, r *gtest.Registry, args ...string) (int, string) {
	t.Setenv(config.EnvConfigPath, "")
	var out bytes.Buffer
	code := Run(append([]string{"./tests"}, args...), r, &out)
	return code, out.String()
}

func TestRunAllPassing(t *testing.T) {
	code, out := run(t, passingRegistry())
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "[Test.InTopModule]\n  PASSED: Test.InTopModule")
	assert.Contains(t, out, "SKIPPED: Test.DISABLED_WithError (disabled)")
	assert.Contains(t, out, "Ran 2 test(s), 1 skipped")
	assert.Contains(t, out, "All tests passed")
}

func TestRunWithFailure(t *testing.T) {
	code, out := run(t, failingRegistry())
	assert.Equal(t, exitFailed, code)
	assert.Contains(t, out, "test returned error: uhoh")
	assert.Contains(t, out, "FAILED: Test.WithError")
	assert.Contains(t, out, `./tests --run '^(Test\.WithError)$'`)
}

func TestRunWithFilters(t *testing.T) {
	code, out := run(t, failingRegistry(), "--run", "Module", "--filter", "-*.InChildModule")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "PASSED: Test.InTopModule")
	assert.Contains(t, out, "SKIPPED: Test.InChildModule (excluded by filter parameters)")
	assert.Contains(t, out, "SKIPPED: Test.WithError (excluded by filter parameters)")
	assert.Contains(t, out, "Some tests will be skipped")
}

func TestRunDebugOutput(t *testing.T) {
	code, out := run(t, passingRegistry(), "--debug-all")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "] top\n")
	assert.Contains(t, out, "Installed 3 declared test(s)")
}

func TestRunList(t *testing.T) {
	code, out := run(t, passingRegistry(), "--list")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Test.InTopModule  ")
	assert.Contains(t, out, "Test.DISABLED_WithError (disabled)")
	assert.Contains(t, out, "runner_test.go:")
	assert.NotContains(t, out, "Running test suite")
}

func TestRunJSONReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	code, _ := run(t, failingRegistry(), "--json", path)
	assert.Equal(t, exitFailed, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ok":false`)
	assert.Contains(t, string(data), `"name":"WithError"`)
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  exclude: [\"WithError\"]\n"), 0o644))

	code, out := run(t, failingRegistry(), "--config", path)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "SKIPPED: Test.WithError (excluded by filter parameters)")
}

func TestRunInvalidParameters(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown flag":   {"--bogus"},
		"bad regex":      {"--run", "("},
		"bad filter":     {"--filter", "Test.["},
		"missing config": {"--config", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		t.Run(name, func(t *testing.T) {
			code, _ := run(t, passingRegistry(), args...)
			assert.Equal(t, exitInvalid, code)
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, out := run(t, passingRegistry(), "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "--filter")
}
