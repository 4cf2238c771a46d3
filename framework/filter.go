package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// AllOf returns a Filter that selects a test only if every non-nil filter selects it.
func AllOf(filters ...Filter) Filter {
	return func(id TestID) bool {
		for _, f := range filters {
			if f != nil && !f(id) {
				return false
			}
		}
		return true
	}
}

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

// Type is called by the command line parser when printing usage.
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// GlobFilter selects tests with Google Test filter syntax: colon-separated positive patterns,
// optionally followed by a '-' and colon-separated negative patterns, as in "Foo.*:Bar.*-*.Slow".
// An empty positive list means "*".
type GlobFilter struct {
	Positive []string
	Negative []string
}

// ParseGlobFilter parses and validates a filter expression.
func ParseGlobFilter(expr string) (GlobFilter, error) {
	var f GlobFilter
	positive, negative := expr, ""
	if i := strings.Index(expr, "-"); i >= 0 {
		positive, negative = expr[:i], expr[i+1:]
	}
	f.Positive = splitPatterns(positive)
	f.Negative = splitPatterns(negative)
	for _, p := range append(append([]string(nil), f.Positive...), f.Negative...) {
		if !doublestar.ValidatePattern(p) {
			return GlobFilter{}, fmt.Errorf("invalid filter pattern %q", p)
		}
	}
	return f, nil
}

func splitPatterns(s string) []string {
	var ret []string
	for _, p := range strings.Split(s, ":") {
		if p = strings.TrimSpace(p); p != "" {
			ret = append(ret, p)
		}
	}
	return ret
}

func (f GlobFilter) IsDefined() bool {
	return len(f.Positive) != 0 || len(f.Negative) != 0
}

func (f GlobFilter) String() string {
	s := strings.Join(f.Positive, ":")
	if len(f.Negative) != 0 {
		s += "-" + strings.Join(f.Negative, ":")
	}
	return s
}

func (f GlobFilter) AsFilter(id TestID) bool {
	name := id.String()
	return (len(f.Positive) == 0 || globAnyMatch(f.Positive, name)) && !globAnyMatch(f.Negative, name)
}

func globAnyMatch(patterns []string, name string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

func PrintFilterDescription(out io.Writer, filters RegexFilters, glob GlobFilter) {
	if !filters.IsDefined() && !glob.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	if glob.IsDefined() {
		fmt.Fprintf(out, "  skip any not selected by filter %q\n", glob)
	}
	fmt.Fprintln(out)
}
