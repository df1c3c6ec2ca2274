package manifest

import (
	"strconv"

	"github.com/vk/wirebox"
	"github.com/vk/wirebox/ident"
	"github.com/vk/wirebox/registry"
)

// BuilderSet maps builder names referenced by product blocks to the boxed
// construction functions that implement them.
type BuilderSet map[string]registry.BuildFunc

// MutatorSet maps mutator names referenced by late_init blocks to the
// boxed mutation functions that implement them.
type MutatorSet map[string]registry.MutateFunc

// UnknownBuilderError is returned by Apply when a product block names a
// builder absent from the builder set.
type UnknownBuilderError struct {
	Product string
	Builder string
}

func (e *UnknownBuilderError) Error() string {
	return "manifest: product " + strconv.Quote(e.Product) + " references unknown builder " +
		strconv.Quote(e.Builder)
}

// UnknownMutatorError is returned by Apply when a late_init block names a
// mutator absent from the mutator set.
type UnknownMutatorError struct {
	Product string
	Mutator string
}

func (e *UnknownMutatorError) Error() string {
	return "manifest: late_init " + strconv.Quote(e.Product) + " references unknown mutator " +
		strconv.Quote(e.Mutator)
}

// Apply registers everything the model declares onto the container, in
// declaration order: constant values first, then products, then
// late-inits. Registration errors from the container (duplicates, arity)
// propagate unchanged.
func Apply(c *wirebox.Container, model *Model, builders BuilderSet, mutators MutatorSet) error {
	for _, v := range model.Values {
		val := v.Value
		build := func(args []any) (any, error) { return val, nil }
		if err := c.RegisterFactory(ident.Named(v.Name), nil, build, registry.KindFactory); err != nil {
			return err
		}
	}
	for _, p := range model.Products {
		build, ok := builders[p.Builder]
		if !ok {
			return &UnknownBuilderError{Product: p.Name, Builder: p.Builder}
		}
		if err := c.RegisterFactory(ident.Named(p.Name), namedIDs(p.Requires), build, p.Kind); err != nil {
			return err
		}
	}
	for _, li := range model.LateInits {
		mutate, ok := mutators[li.Mutator]
		if !ok {
			return &UnknownMutatorError{Product: li.Name, Mutator: li.Mutator}
		}
		if err := c.RegisterLateInit(ident.Named(li.Name), namedIDs(li.Requires), mutate); err != nil {
			return err
		}
	}
	return nil
}

// Placeholder is what stub builders produce. Inspection tooling builds
// graphs without real constructors; the placeholder keeps the store
// well-formed.
type Placeholder struct {
	Builder string
}

// StubBuilders returns a builder set that covers every builder the model
// references: entries from base are kept, missing ones are filled with
// stubs producing a Placeholder. Likewise for mutators, which become
// no-ops. Used by graph inspection tools that never run real factories.
func StubBuilders(model *Model, base BuilderSet, baseMutators MutatorSet) (BuilderSet, MutatorSet) {
	builders := make(BuilderSet, len(model.Products))
	for _, p := range model.Products {
		if fn, ok := base[p.Builder]; ok {
			builders[p.Builder] = fn
			continue
		}
		name := p.Builder
		builders[name] = func(args []any) (any, error) {
			return Placeholder{Builder: name}, nil
		}
	}
	mutators := make(MutatorSet, len(model.LateInits))
	for _, li := range model.LateInits {
		if fn, ok := baseMutators[li.Mutator]; ok {
			mutators[li.Mutator] = fn
			continue
		}
		mutators[li.Mutator] = func(cur any, args []any) (any, error) {
			return cur, nil
		}
	}
	return builders, mutators
}

func namedIDs(names []string) []ident.ID {
	out := make([]ident.ID, len(names))
	for i, n := range names {
		out[i] = ident.Named(n)
	}
	return out
}
