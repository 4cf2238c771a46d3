package gtest

import (
	"runtime"
	"strings"
)

// ScopeOf turns a fully qualified Go function name, as reported by runtime.FuncForPC, into a
// lexical scope chain: the import path segments followed by the named functions and methods
// enclosing the declaration.
//
// Package initialization wrappers ("init", "init.0", "glob.") and anonymous closures ("func1")
// have no name in the source, so they are left out:
//
//	example.com/m/pkg.init                 -> [example.com m pkg]
//	example.com/m/pkg.bar.func1            -> [example.com m pkg bar]
//	example.com/m/pkg.(*Server).setup.func2 -> [example.com m pkg Server setup]
func ScopeOf(funcName string) []string {
	if funcName == "" {
		return nil
	}
	slash := strings.LastIndex(funcName, "/")
	dot := strings.Index(funcName[slash+1:], ".")
	if dot < 0 {
		return splitPath(funcName)
	}
	pkgEnd := slash + 1 + dot
	scope := splitPath(funcName[:pkgEnd])

	rest := stripTypeArguments(funcName[pkgEnd+1:])
	for _, part := range strings.Split(rest, ".") {
		part = strings.TrimSuffix(strings.TrimPrefix(part, "("), ")")
		part = strings.TrimPrefix(part, "*")
		if isUnnamedScope(part) {
			continue
		}
		scope = append(scope, part)
	}
	return scope
}

func splitPath(path string) []string {
	var ret []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			ret = append(ret, s)
		}
	}
	return ret
}

func stripTypeArguments(s string) string {
	for {
		open := strings.Index(s, "[")
		if open < 0 {
			return s
		}
		end := strings.Index(s[open:], "]")
		if end < 0 {
			return s[:open]
		}
		s = s[:open] + s[open+end+1:]
	}
}

func isUnnamedScope(part string) bool {
	switch {
	case part == "", part == "init", part == "glob":
		return true
	case strings.HasPrefix(part, "func") && isDigits(part[len("func"):]):
		return true
	default:
		return isDigits(part)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// callerSite reports the scope chain and location of a function on the call stack. skip 0 is
// the function that called callerSite, 1 is its caller, and so on.
func callerSite(skip int) ([]string, Location) {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if skip == 0 {
			return ScopeOf(frame.Function), Location{File: frame.File, Line: frame.Line}
		}
		if !more {
			return nil, Location{}
		}
		skip--
	}
}
