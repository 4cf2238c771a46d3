package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyReturnsDefaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
run:
  include: ["^Parser\\."]
  exclude: ["Slow$"]
  filter: "Parser.*-*.Flaky"
  debug: true
  jsonReport: results.json
  color: false
scan:
  exclude: ["third_party/**"]
  package: gt
  workers: 4
`))
	require.NoError(t, err)

	assert.Equal(t, []string{`^Parser\.`}, c.Run.Include)
	assert.Equal(t, []string{"Slow$"}, c.Run.Exclude)
	assert.Equal(t, "Parser.*-*.Flaky", c.Run.Filter)
	assert.True(t, c.Run.Debug)
	assert.False(t, c.Run.DebugAll)
	assert.Equal(t, "results.json", c.Run.JSONReport)
	require.NotNil(t, c.Run.Color)
	assert.False(t, *c.Run.Color)

	assert.Equal(t, []string{"**/*.go"}, c.Scan.Include)
	assert.Equal(t, []string{"third_party/**"}, c.Scan.Exclude)
	assert.Equal(t, "gt", c.Scan.Package)
	assert.Equal(t, 4, c.Scan.Workers)
}

func TestParseRejectsBadInput(t *testing.T) {
	for name, data := range map[string]string{
		"unknown key":      "run:\n  verbose: true\n",
		"wrong type":       "run:\n  debug: [1]\n",
		"negative workers": "scan:\n  workers: -1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  debugAll: true\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Run.DebugAll)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadUsesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  filter: \"A.*\"\n"), 0o644))

	t.Setenv(EnvConfigPath, "")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	t.Setenv(EnvConfigPath, path)
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "A.*", c.Run.Filter)
}
