package gtest

// Scope declares tests within a chain of named sub-scopes. Go has no nested modules, so a
// Scope stands in for them: tests declared through In("a").In("b") get the scope chain of the
// declaring function followed by "a" and "b".
type Scope struct {
	registry *Registry
	path     []string
}

// Register declares a test in the default registry. It is meant to be used while the program
// initializes, typically as
//
//	var _ = gtest.Register("Suite", "Name", func(t *gtest.T) {
//		assert.Equal(t, 2, 1+1)
//	})
//
// fn may be a func(), func() error, func(*T) or func(*T) error. A name starting with
// DISABLED_ declares a disabled test. Register panics if the names are invalid, fn has an
// unsupported type, or the default registry is already frozen.
func Register(suite, test string, fn interface{}) *Descriptor {
	return Scope{registry: defaultRegistry}.declare(suite, test, fn, 2)
}

// In returns a Scope of the default registry.
func In(names ...string) Scope {
	return Scope{registry: defaultRegistry}.In(names...)
}

// Root returns a Scope that declares tests in r.
func (r *Registry) Root() Scope {
	return Scope{registry: r}
}

// In returns a nested Scope.
func (s Scope) In(names ...string) Scope {
	path := make([]string, 0, len(s.path)+len(names))
	path = append(append(path, s.path...), names...)
	return Scope{registry: s.registry, path: path}
}

// Register declares a test within s. See the package-level Register.
func (s Scope) Register(suite, test string, fn interface{}) *Descriptor {
	return s.declare(suite, test, fn, 2)
}

func (s Scope) declare(suite, test string, fn interface{}, skip int) *Descriptor {
	scope, loc := callerSite(skip)
	scope = append(scope, s.path...)
	d, err := NewDescriptor(suite, test, scope, loc, fn)
	if err != nil {
		panic("gtest: " + err.Error())
	}
	r := s.registry
	if r == nil {
		r = defaultRegistry
	}
	return r.Add(d)
}
