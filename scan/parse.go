package scan

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/launchdarkly/gtest-bridge/gtest"
)

// Tree-sitter node types for Go
const (
	nodeCallExpression     = "call_expression"
	nodeFunctionDecl       = "function_declaration"
	nodeIdentifier         = "identifier"
	nodeInterpretedString  = "interpreted_string_literal"
	nodeMethodDecl         = "method_declaration"
	nodePackageClause      = "package_clause"
	nodePackageIdentifier  = "package_identifier"
	nodeRawString          = "raw_string_literal"
	nodeSelectorExpression = "selector_expression"
	nodeTypeIdentifier     = "type_identifier"
	nodeVarDeclaration     = "var_declaration"
	nodeVarSpec            = "var_spec"
)

// maxTreeDepth bounds recursion on pathological input.
const maxTreeDepth = 1000

// Declaration is a test declaration found in source.
//
// Scope starts with the package name rather than the import path, which a single file does not
// reveal, so it is not expected to equal the scope chain seen at run time.
type Declaration struct {
	Suite    string   `json:"suite"`
	Test     string   `json:"test"`
	Disabled bool     `json:"disabled"`
	Scope    []string `json:"scope"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
}

func (d Declaration) Name() string {
	return d.Suite + "." + d.Test
}

// ParseFile finds calls of the form
//
//	pkg.Register("Suite", "Test", fn)
//	pkg.In("a", "b").In("c").Register("Suite", "Test", fn)
//	scope.Register("Suite", "Test", fn)
//
// in one Go source file, where pkg is the identifier the gtest package is imported as and scope
// is a package-level variable of the file initialized with a pkg.In chain, such as
// var scope = pkg.In("a").
// Declarations whose names are not string literals cannot be resolved statically and are
// skipped. Literal names that are invalid are reported as an error.
func ParseFile(ctx context.Context, source []byte, filename, pkg string) ([]Declaration, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer tree.Close()

	f := &fileParser{source: source, filename: filename, pkg: pkg}
	root := tree.RootNode()
	f.collectScopeVars(root)
	var scope []string
	if name := f.packageName(root); name != "" {
		scope = []string{name}
	}
	f.walk(root, scope, 0)
	return f.decls, f.err
}

type fileParser struct {
	source   []byte
	filename string
	pkg      string
	decls    []Declaration
	err      error
	// scopeVars maps package-level variables holding a Scope to the names passed to In.
	scopeVars map[string][]string
}

func (f *fileParser) text(n *sitter.Node) string {
	if n == nil || n.EndByte() > uint32(len(f.source)) {
		return ""
	}
	return n.Content(f.source)
}

func (f *fileParser) packageName(root *sitter.Node) string {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != nodePackageClause {
			continue
		}
		if id := findFirst(child, nodePackageIdentifier, 0); id != nil {
			return f.text(id)
		}
	}
	return ""
}

func (f *fileParser) walk(n *sitter.Node, scope []string, depth int) {
	if depth > maxTreeDepth || f.err != nil {
		return
	}
	switch n.Type() {
	case nodeFunctionDecl:
		scope = appendScope(scope, f.text(n.ChildByFieldName("name")))
	case nodeMethodDecl:
		if recv := findFirst(n.ChildByFieldName("receiver"), nodeTypeIdentifier, 0); recv != nil {
			scope = appendScope(scope, f.text(recv))
		}
		scope = appendScope(scope, f.text(n.ChildByFieldName("name")))
	case nodeCallExpression:
		f.declaration(n, scope)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		f.walk(n.NamedChild(i), scope, depth+1)
	}
}

func (f *fileParser) declaration(call *sitter.Node, scope []string) {
	sel := call.ChildByFieldName("function")
	if sel == nil || sel.Type() != nodeSelectorExpression || f.text(sel.ChildByFieldName("field")) != "Register" {
		return
	}
	sub, ok := f.subScopes(sel.ChildByFieldName("operand"), 0)
	if !ok {
		return
	}
	args := f.stringArgs(call.ChildByFieldName("arguments"))
	if len(args) < 2 || args[0] == nil || args[1] == nil {
		return
	}

	fullScope := append(append([]string(nil), scope...), sub...)
	line := int(call.StartPoint().Row) + 1
	id, err := gtest.Resolve(*args[0], *args[1], fullScope, gtest.Location{File: f.filename, Line: line})
	if err != nil {
		f.err = fmt.Errorf("%s:%d: %w", f.filename, line, err)
		return
	}
	f.decls = append(f.decls, Declaration{
		Suite:    id.Suite,
		Test:     id.Test,
		Disabled: id.Disabled,
		Scope:    id.Scope,
		File:     f.filename,
		Line:     line,
	})
}

// subScopes resolves the receiver of a Register call. It returns the names passed to In along
// the chain, or false if the chain does not start at the gtest package identifier.
func (f *fileParser) subScopes(operand *sitter.Node, depth int) ([]string, bool) {
	if operand == nil || depth > maxTreeDepth {
		return nil, false
	}
	switch operand.Type() {
	case nodeIdentifier:
		name := f.text(operand)
		if name == f.pkg {
			return nil, true
		}
		sub, ok := f.scopeVars[name]
		return append([]string(nil), sub...), ok
	case nodeCallExpression:
		sel := operand.ChildByFieldName("function")
		if sel == nil || sel.Type() != nodeSelectorExpression || f.text(sel.ChildByFieldName("field")) != "In" {
			return nil, false
		}
		prefix, ok := f.subScopes(sel.ChildByFieldName("operand"), depth+1)
		if !ok {
			return nil, false
		}
		names := f.stringArgs(operand.ChildByFieldName("arguments"))
		for _, name := range names {
			if name == nil {
				return nil, false
			}
			prefix = append(prefix, *name)
		}
		return prefix, true
	}
	return nil, false
}

// collectScopeVars records the package-level variables initialized with an In chain. A
// variable may be built from another one declared later in the file, so this repeats until no
// new variable is found.
func (f *fileParser) collectScopeVars(root *sitter.Node) {
	var specs []*sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if decl := root.NamedChild(i); decl.Type() == nodeVarDeclaration {
			specs = appendVarSpecs(specs, decl, 0)
		}
	}
	f.scopeVars = make(map[string][]string)
	for found := true; found; {
		found = false
		for _, spec := range specs {
			name, value := f.singleAssignment(spec)
			if name == "" || name == f.pkg {
				continue
			}
			if _, done := f.scopeVars[name]; done {
				continue
			}
			if sub, ok := f.subScopes(value, 0); ok && value.Type() == nodeCallExpression {
				f.scopeVars[name] = sub
				found = true
			}
		}
	}
}

func appendVarSpecs(specs []*sitter.Node, n *sitter.Node, depth int) []*sitter.Node {
	if depth > maxTreeDepth {
		return specs
	}
	if n.Type() == nodeVarSpec {
		return append(specs, n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		specs = appendVarSpecs(specs, n.NamedChild(i), depth+1)
	}
	return specs
}

// singleAssignment returns the name and value of a var spec declaring exactly one variable.
func (f *fileParser) singleAssignment(spec *sitter.Node) (string, *sitter.Node) {
	values := spec.ChildByFieldName("value")
	if values == nil || values.NamedChildCount() != 1 {
		return "", nil
	}
	var names []string
	for i := 0; i < int(spec.NamedChildCount()); i++ {
		if child := spec.NamedChild(i); child.Type() == nodeIdentifier {
			names = append(names, f.text(child))
		}
	}
	if len(names) != 1 {
		return "", nil
	}
	return names[0], values.NamedChild(0)
}

// stringArgs returns the literal value of each argument, or nil for an argument that is not a
// string literal.
func (f *fileParser) stringArgs(args *sitter.Node) []*string {
	if args == nil {
		return nil
	}
	var ret []*string
	for i := 0; i < int(args.NamedChildCount()); i++ {
		ret = append(ret, f.stringLiteral(args.NamedChild(i)))
	}
	return ret
}

func (f *fileParser) stringLiteral(n *sitter.Node) *string {
	raw := f.text(n)
	switch n.Type() {
	case nodeInterpretedString:
		if s, err := strconv.Unquote(raw); err == nil {
			return &s
		}
	case nodeRawString:
		s := strings.TrimSuffix(strings.TrimPrefix(raw, "`"), "`")
		return &s
	}
	return nil
}

func appendScope(scope []string, name string) []string {
	if name == "" {
		return scope
	}
	return append(append([]string(nil), scope...), name)
}

func findFirst(n *sitter.Node, nodeType string, depth int) *sitter.Node {
	if n == nil || depth > maxTreeDepth {
		return nil
	}
	if n.Type() == nodeType {
		return n
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findFirst(n.NamedChild(i), nodeType, depth+1); found != nil {
			return found
		}
	}
	return nil
}
