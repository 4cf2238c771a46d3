package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func declaringFile(pkg, test string) string {
	return "package " + pkg + "\n\nvar _ = gtest.Register(\"Suite\", \"" + test + "\", func() {})\n"
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", declaringFile("a", "A"))
	writeFile(t, root, "sub/b.go", declaringFile("b", "B"))
	writeFile(t, root, "sub/deeper/c_test.go", declaringFile("c", "C"))
	writeFile(t, root, "vendor/v/v.go", declaringFile("v", "Vendored"))
	writeFile(t, root, "testdata/t.go", declaringFile("t", "TestData"))
	writeFile(t, root, "_hidden/h.go", declaringFile("h", "Hidden"))
	writeFile(t, root, "notes.txt", declaringFile("n", "NotGo"))

	result, err := Scan(context.Background(), root, Options{
		Exclude: []string{"vendor/**"},
		Workers: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.FilesScanned)

	var names []string
	for _, d := range result.Declarations {
		names = append(names, d.Name())
	}
	assert.Equal(t, []string{"Suite.A", "Suite.B", "Suite.C"}, names)
	assert.Equal(t, []string{"b"}, result.Declarations[1].Scope)
}

func TestScanIncludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", declaringFile("a", "A"))
	writeFile(t, root, "a_test.go", declaringFile("a", "ATest"))

	result, err := Scan(context.Background(), root, Options{Include: []string{"**/*_test.go"}})
	require.NoError(t, err)
	require.Len(t, result.Declarations, 1)
	assert.Equal(t, "Suite.ATest", result.Declarations[0].Name())
}

func TestScanCollectsFileErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.go", declaringFile("a", "Good"))
	writeFile(t, root, "bad.go", "package a\n\nvar _ = gtest.Register(\"\", \"Bad\", func() {})\n")

	result, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, filepath.Join(root, "bad.go"), result.Errors[0].Path)
	require.Len(t, result.Declarations, 1)
	assert.Equal(t, "Suite.Good", result.Declarations[0].Name())
}

func TestScanRejectsInvalidPattern(t *testing.T) {
	_, err := Scan(context.Background(), t.TempDir(), Options{Include: []string{"[abc"}})
	assert.Error(t, err)
}

func TestScanFindsEveryDemoDeclaration(t *testing.T) {
	result, err := Scan(context.Background(), filepath.Join("..", "examples", "gtestdemo"), Options{})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	var names []string
	for _, d := range result.Declarations {
		names = append(names, d.Name())
	}
	assert.ElementsMatch(t, []string{
		"Test.InTopModule",
		"Test.InChildModule",
		"Test.InGrandChildModule",
		"Test.InFunctionBody",
		"Test.InFunctionBodyInChildModule",
		"ExactSuite.ExactTest",
		"Test.WithResultType",
		"Test.DISABLED_WithError",
	}, names)
}
