package gtest

import (
	"fmt"
)

// Body is the normalized form of a declared test function.
type Body func(t *T) error

// Descriptor is a declared test: its identity, where it was declared, and the function to run.
// Descriptors are immutable.
type Descriptor struct {
	id   Identity
	loc  Location
	body Body
}

// NewDescriptor resolves a declaration into a Descriptor. fn must be one of:
//
//	func()
//	func() error
//	func(*T)
//	func(*T) error
func NewDescriptor(suite, test string, scope []string, loc Location, fn interface{}) (*Descriptor, error) {
	id, err := Resolve(suite, test, scope, loc)
	if err != nil {
		return nil, err
	}
	body, err := bodyOf(fn)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", id.QualifiedName(), err)
	}
	return &Descriptor{id: id, loc: loc, body: body}, nil
}

func bodyOf(fn interface{}) (Body, error) {
	switch f := fn.(type) {
	case func():
		if f != nil {
			return func(*T) error { f(); return nil }, nil
		}
	case func() error:
		if f != nil {
			return func(*T) error { return f() }, nil
		}
	case func(*T):
		if f != nil {
			return func(t *T) error { f(t); return nil }, nil
		}
	case func(*T) error:
		if f != nil {
			return f, nil
		}
	case Body:
		if f != nil {
			return f, nil
		}
	default:
		return nil, fmt.Errorf("unsupported test function type %T", fn)
	}
	return nil, fmt.Errorf("test function is nil")
}

func (d *Descriptor) Suite() string { return d.id.Suite }

func (d *Descriptor) Test() string { return d.id.Test }

func (d *Descriptor) Disabled() bool { return d.id.Disabled }

func (d *Descriptor) Location() Location { return d.loc }

// Key is the internal disambiguator; it is unique within a Registry.
func (d *Descriptor) Key() string { return d.id.Key }

// Identity returns a copy of the resolved identity.
func (d *Descriptor) Identity() Identity {
	id := d.id
	id.Scope = append([]string(nil), d.id.Scope...)
	return id
}

func (d *Descriptor) String() string {
	return d.id.QualifiedName()
}

// withKey returns a copy of d with a different key. The registry uses it to keep keys unique.
func (d *Descriptor) withKey(key string) *Descriptor {
	d1 := *d
	d1.id.Key = key
	return &d1
}
