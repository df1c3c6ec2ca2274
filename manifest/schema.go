package manifest

import "github.com/zclconf/go-cty/cty"

// The structs below mirror the HCL surface of a manifest file. They are
// decoded verbatim by gohcl and then translated into the format-agnostic
// Model, so nothing outside this package touches HCL types.

// productSchema is a `product "name" { ... }` block: one factory
// registration binding a named builder to its ordered requirements.
type productSchema struct {
	Name     string   `hcl:"name,label"`
	Builder  string   `hcl:"builder,optional"`
	Requires []string `hcl:"requires,optional"`
	Kind     string   `hcl:"kind,optional"`
}

// lateInitSchema is a `late_init "name" { ... }` block: one late-init
// registration binding a named mutator to its ordered late requirements.
type lateInitSchema struct {
	Name     string   `hcl:"name,label"`
	Mutator  string   `hcl:"mutator,optional"`
	Requires []string `hcl:"requires,optional"`
}

// valueSchema is a `value "name" { value = ... }` block: a constant
// product registered as a zero-requirement factory.
type valueSchema struct {
	Name  string    `hcl:"name,label"`
	Value cty.Value `hcl:"value"`
}

// fileSchema is the top-level structure of one manifest file.
type fileSchema struct {
	Products  []*productSchema  `hcl:"product,block"`
	LateInits []*lateInitSchema `hcl:"late_init,block"`
	Values    []*valueSchema    `hcl:"value,block"`
}
