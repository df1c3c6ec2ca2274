// Package manifest is the declarative registration adapter: it loads HCL
// manifests describing an object graph and applies them to a container
// against caller-supplied sets of named builders and mutators. The
// adapter is a thin layer over RegisterFactory / RegisterLateInit; it has
// no influence on build semantics.
package manifest

import "github.com/vk/wirebox/registry"

// Product is one declared factory registration.
type Product struct {
	Name     string
	Builder  string
	Requires []string
	Kind     registry.Kind
}

// LateInitDecl is one declared late-init registration.
type LateInitDecl struct {
	Name     string
	Mutator  string
	Requires []string
}

// Value is one declared constant product, already converted from its cty
// literal to a plain Go value.
type Value struct {
	Name  string
	Value any
}

// Model is the format-agnostic result of loading manifests. Slice order
// follows declaration order across files, which fixes registration order
// and therefore the deterministic build order.
type Model struct {
	Products  []*Product
	LateInits []*LateInitDecl
	Values    []*Value
}

func (m *Model) merge(other *Model) {
	m.Products = append(m.Products, other.Products...)
	m.LateInits = append(m.LateInits, other.LateInits...)
	m.Values = append(m.Values, other.Values...)
}
