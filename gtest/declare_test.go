package gtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declareInFunctionBody(r *Registry, runs *int) *Descriptor {
	return r.Root().Register("Test", "X", func() { *runs++ })
}

func TestSameNamesInDifferentScopesAreDistinct(t *testing.T) {
	r := NewRegistry()
	runs := make([]int, 4)
	top := r.Root().Register("Test", "X", func() { runs[0]++ })
	child := r.Root().In("m1").Register("Test", "X", func() { runs[1]++ })
	grandchild := r.Root().In("m1").In("m2").Register("Test", "X", func() { runs[2]++ })
	inBody := declareInFunctionBody(r, &runs[3])

	all := r.Enumerate()
	require.Len(t, all, 4)
	keys := make(map[string]bool)
	for _, d := range all {
		assert.Equal(t, "Test", d.Suite())
		assert.Equal(t, "X", d.Test())
		keys[d.Key()] = true
	}
	assert.Len(t, keys, 4)

	assert.Equal(t, []string{"m1"}, tail(child.Identity().Scope, 1))
	assert.Equal(t, []string{"m1", "m2"}, tail(grandchild.Identity().Scope, 2))
	assert.Equal(t, "declareInFunctionBody", tail(inBody.Identity().Scope, 1)[0])
	assert.Equal(t, tail(top.Identity().Scope, 1), []string{"TestSameNamesInDifferentScopesAreDistinct"})

	for _, d := range all {
		assert.False(t, Run(d).Failed)
	}
	assert.Equal(t, []int{1, 1, 1, 1}, runs)
}

func tail(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[len(s)-n:]
}

func TestRegisterRecordsCallerLocation(t *testing.T) {
	r := NewRegistry()
	d := r.Root().Register("Test", "Located", func() {})
	assert.True(t, strings.HasSuffix(d.Location().File, "declare_test.go"), d.Location().File)
	assert.Greater(t, d.Location().Line, 0)
	assert.Contains(t, d.Identity().Scope, "gtest")
}

func TestRegisterInLoopKeepsEveryDeclaration(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 3; i++ {
		r.Root().Register("Test", "Repeated", func() {})
	}
	all := r.Enumerate()
	require.Len(t, all, 3)
	assert.NotEqual(t, all[0].Key(), all[1].Key())
	assert.NotEqual(t, all[1].Key(), all[2].Key())
}

func TestRegisterAcceptsAllBodyTypes(t *testing.T) {
	r := NewRegistry()
	root := r.Root()
	root.Register("Body", "NoOutcome", func() {})
	root.Register("Body", "ErrorOutcome", func() error { return nil })
	root.Register("Body", "WithT", func(*T) {})
	root.Register("Body", "WithTAndErrorOutcome", func(*T) error { return nil })
	root.Register("Body", "Normalized", Body(func(*T) error { return nil }))
	assert.Equal(t, 5, r.Len())
}

func TestRegisterPanicsOnInvalidDeclaration(t *testing.T) {
	r := NewRegistry()
	root := r.Root()
	assert.Panics(t, func() { root.Register("", "X", func() {}) })
	assert.Panics(t, func() { root.Register("DISABLED_Suite", "X", func() {}) })
	assert.Panics(t, func() { root.Register("Test", "X", func(int) {}) })
	assert.Panics(t, func() { root.Register("Test", "X", nil) })
	var nilFunc func()
	assert.Panics(t, func() { root.Register("Test", "X", nilFunc) })
	assert.Equal(t, 0, r.Len())
}

func TestRegisterDisabled(t *testing.T) {
	r := NewRegistry()
	d := r.Root().Register("Test", "DISABLED_Later", func() {})
	assert.True(t, d.Disabled())
	assert.Equal(t, "DISABLED_Later", d.Test())
}
