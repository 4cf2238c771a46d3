package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/gtest-bridge/config"
)

func TestReadParams(t *testing.T) {
	var c commandParams
	require.True(t, c.Read([]string{"gtest-bridge", "--exclude", "gen/**,vendor/**", "--run", "^Parser", "--json", "src"}))
	assert.Equal(t, "src", c.root)
	assert.Equal(t, []string{"gen/**", "vendor/**"}, c.exclude)
	assert.True(t, c.names.AnyMatch("Parser.Empty"))
	assert.False(t, c.names.AnyMatch("Lexer.Empty"))
	assert.True(t, c.jsonOutput)

	c = commandParams{}
	require.True(t, c.Read([]string{"gtest-bridge"}))
	assert.Equal(t, ".", c.root)

	c = commandParams{}
	assert.False(t, c.Read([]string{"gtest-bridge", "a", "b"}))
}

func TestApplyConfig(t *testing.T) {
	c := commandParams{pkg: "gt"}
	c.apply(config.Default().Scan)
	assert.Equal(t, []string{"**/*.go"}, c.include)
	assert.Equal(t, "gt", c.pkg)

	cfg := config.Default().Scan
	cfg.Workers = 3
	c = commandParams{workers: 8}
	c.apply(cfg)
	assert.Equal(t, 8, c.workers)
	assert.Equal(t, "gtest", c.pkg)
}
