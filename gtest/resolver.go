package gtest

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// DisabledPrefix marks a test as disabled when it starts the test name. The prefix stays part
// of the name reported to the host framework.
const DisabledPrefix = "DISABLED_"

const scopeSeparator = "::"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Location is a declaration site. It is used for diagnostics and for telling apart
// declarations that otherwise look the same.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Identity is the resolved name of a declared test.
//
// Suite and Test are what the host framework sees. They do not depend on where the test was
// declared, so two declarations may share them. Key is unique to a declaration site and is
// only used internally.
type Identity struct {
	Suite    string
	Test     string
	Disabled bool
	Scope    []string
	Key      string
}

// QualifiedName renders the scope chain and display name, e.g. "pkg::m1::Suite.Test".
func (id Identity) QualifiedName() string {
	name := id.Suite + "." + id.Test
	if len(id.Scope) == 0 {
		return name
	}
	return strings.Join(id.Scope, scopeSeparator) + scopeSeparator + name
}

// Resolve validates a declared (suite, test) pair and computes its identity. scope is the chain
// of enclosing named scopes from outermost to innermost; it may be empty.
func Resolve(suite, test string, scope []string, loc Location) (Identity, error) {
	if !identifierPattern.MatchString(suite) {
		return Identity{}, fmt.Errorf("invalid test suite name %q: must be a non-empty identifier", suite)
	}
	if strings.HasPrefix(suite, DisabledPrefix) {
		return Identity{}, fmt.Errorf("invalid test suite name %q: only test names may start with %s", suite, DisabledPrefix)
	}
	if !identifierPattern.MatchString(test) {
		return Identity{}, fmt.Errorf("invalid test name %q: must be a non-empty identifier", test)
	}
	for _, s := range scope {
		if s == "" {
			return Identity{}, fmt.Errorf("invalid scope for %s.%s: empty scope name", suite, test)
		}
	}
	return Identity{
		Suite:    suite,
		Test:     test,
		Disabled: strings.HasPrefix(test, DisabledPrefix),
		Scope:    append([]string(nil), scope...),
		Key:      identityKey(suite, test, scope, loc),
	}, nil
}

func identityKey(suite, test string, scope []string, loc Location) string {
	h := blake3.New()
	for _, s := range scope {
		h.WriteString(s)
		h.WriteString(scopeSeparator)
	}
	// NUL never appears in an identifier or a scope name, so the fields cannot run together.
	fmt.Fprintf(h, "%s.%s\x00%s\x00%d", suite, test, loc.File, loc.Line)
	return hex.EncodeToString(h.Sum(nil)[:16])
}
