// Package ident defines the identity scheme for products managed by a
// container. A product is identified either by its static Go type or by an
// explicit string name; the two namespaces never collide.
package ident

import (
	"reflect"
	"strconv"
)

// ID is the comparable key naming a product. The zero value is not a valid
// identity; construct one with Of or Named.
//
// Two IDs are equal iff their underlying tags are equal. The display form
// returned by String is for diagnostics only and is never used for lookup.
type ID struct {
	typ  reflect.Type
	name string
}

// Of returns the identity of a product keyed by its static type.
func Of[T any]() ID {
	return ID{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Named returns the identity of a product keyed by an explicit name.
func Named(name string) ID {
	return ID{name: name}
}

// IsZero reports whether the ID carries neither a type tag nor a name.
func (id ID) IsZero() bool {
	return id.typ == nil && id.name == ""
}

// IsNamed reports whether the ID is keyed by an explicit name rather than
// a type tag.
func (id ID) IsNamed() bool {
	return id.typ == nil && id.name != ""
}

// String returns the human-readable form of the identity: the Go type
// string for type-keyed IDs, the quoted name for named IDs.
func (id ID) String() string {
	if id.typ != nil {
		return id.typ.String()
	}
	if id.name != "" {
		return strconv.Quote(id.name)
	}
	return "<zero identity>"
}
