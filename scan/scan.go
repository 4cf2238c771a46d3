// Package scan discovers test declarations in Go source without compiling or running it.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps the number of files parsed concurrently.
const MaxWorkers = 32

type Options struct {
	// Include and Exclude are doublestar globs matched against slash-separated paths relative
	// to the root. An empty Include means "**/*.go".
	Include []string
	Exclude []string
	// Package is the identifier the gtest package is imported as; empty means "gtest".
	Package string
	Workers int
}

// FileError is a failure to read or parse one file. It does not stop the scan.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

type Result struct {
	Declarations []Declaration
	Errors       []FileError
	FilesScanned int
}

// Scan parses every matching Go file under root. Declarations are sorted by file and line.
// The returned error is non-nil only if the directory tree itself cannot be walked or ctx is
// cancelled.
func Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	if opts.Package == "" {
		opts.Package = "gtest"
	}
	if len(opts.Include) == 0 {
		opts.Include = []string{"**/*.go"}
	}
	for _, p := range append(append([]string(nil), opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}

	files, err := collectFiles(root, opts)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	result := &Result{FilesScanned: len(files)}
	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			decls, err := parsePath(gCtx, file, opts.Package)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, FileError{Path: file, Err: err})
				return nil
			}
			result.Declarations = append(result.Declarations, decls...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Goroutines finish in arbitrary order.
	sort.Slice(result.Declarations, func(i, j int) bool {
		a, b := result.Declarations[i], result.Declarations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	return result, nil
}

func parsePath(ctx context.Context, path, pkg string) ([]Declaration, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFile(ctx, source, path, pkg)
}

// collectFiles walks root the way the go tool does, ignoring directories whose names start
// with "." or "_" and directories named testdata.
func collectFiles(root string, opts Options) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(opts.Include, rel) && !matchesAny(opts.Exclude, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func matchesAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
