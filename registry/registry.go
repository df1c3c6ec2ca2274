// Package registry holds the two registration tables of a container: the
// factory records describing how to construct each product, and the
// late-init records describing how to mutate an already-built product
// once its remaining dependencies exist.
//
// Records are immutable after registration. All cross-references are by
// identity, never by pointer, which is what lets the dependency graphs be
// rebuilt from these tables at any time.
package registry

import (
	"log/slog"

	"github.com/vk/wirebox/ident"
)

// MaxRequirements is the positional argument cap for both factories and
// late-initializers. Declaring more requirements fails registration with
// TooManyRequirementsError.
const MaxRequirements = 6

// Kind tags what a factory produces so external tooling can distinguish
// plain products from startup tasks and protocol adapters.
type Kind uint8

const (
	KindFactory Kind = iota
	KindStartupTask
	KindProtocolAdapter
)

// String returns the manifest spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindStartupTask:
		return "startup_task"
	case KindProtocolAdapter:
		return "adapter"
	default:
		return "factory"
	}
}

// BuildFunc constructs a product from its already-built requirements,
// passed positionally in registration order as boxed values.
type BuildFunc func(args []any) (any, error)

// MutateFunc late-initializes a built product. It receives the stored
// boxed value plus its late requirements and returns the value to store
// back, which is usually the same reference it was given.
type MutateFunc func(product any, args []any) (any, error)

// Factory is the registration record for one product.
type Factory struct {
	Product  ident.ID
	Requires []ident.ID
	Build    BuildFunc
	Kind     Kind
}

// LateInit is the registration record for one product's late
// initialization. At most one exists per product, and only for products
// that already have a Factory.
type LateInit struct {
	Product  ident.ID
	Requires []ident.ID
	Mutate   MutateFunc
}

// Set is the pair of registration tables. Iteration order over records is
// registration order, which downstream code relies on for deterministic
// graph derivation.
type Set struct {
	factories map[ident.ID]*Factory
	order     []ident.ID

	lateInits map[ident.ID]*LateInit
	lateOrder []ident.ID
}

// NewSet returns an empty registration set.
func NewSet() *Set {
	return &Set{
		factories: make(map[ident.ID]*Factory),
		lateInits: make(map[ident.ID]*LateInit),
	}
}

// AddFactory records f. It fails if f names a zero identity or no build
// function, if the product already has a factory, or if f declares more
// than MaxRequirements requirements. On failure the set is unchanged.
func (s *Set) AddFactory(f *Factory) error {
	if f == nil || f.Product.IsZero() {
		return ErrZeroIdentity
	}
	if f.Build == nil {
		return ErrNilBuildFunc
	}
	if len(f.Requires) > MaxRequirements {
		return &TooManyRequirementsError{Product: f.Product, Count: len(f.Requires)}
	}
	if _, exists := s.factories[f.Product]; exists {
		return &DuplicateFactoryError{Product: f.Product}
	}
	slog.Debug("Registering factory.", "product", f.Product.String(), "kind", f.Kind.String(), "requires", len(f.Requires))
	s.factories[f.Product] = f
	s.order = append(s.order, f.Product)
	return nil
}

// AddLateInit records li. It fails if the product has no factory yet, if
// it already has a late-init record, or on the same argument checks as
// AddFactory. On failure the set is unchanged.
func (s *Set) AddLateInit(li *LateInit) error {
	if li == nil || li.Product.IsZero() {
		return ErrZeroIdentity
	}
	if li.Mutate == nil {
		return ErrNilMutateFunc
	}
	if len(li.Requires) > MaxRequirements {
		return &TooManyRequirementsError{Product: li.Product, Count: len(li.Requires), LateInit: true}
	}
	if _, exists := s.factories[li.Product]; !exists {
		return &NoFactoryError{Product: li.Product}
	}
	if _, exists := s.lateInits[li.Product]; exists {
		return &DuplicateLateInitError{Product: li.Product}
	}
	slog.Debug("Registering late-init.", "product", li.Product.String(), "requires", len(li.Requires))
	s.lateInits[li.Product] = li
	s.lateOrder = append(s.lateOrder, li.Product)
	return nil
}

// Factory returns the factory record for id, if any.
func (s *Set) Factory(id ident.ID) (*Factory, bool) {
	f, ok := s.factories[id]
	return f, ok
}

// LateInit returns the late-init record for id, if any.
func (s *Set) LateInit(id ident.ID) (*LateInit, bool) {
	li, ok := s.lateInits[id]
	return li, ok
}

// Factories returns all factory records in registration order.
func (s *Set) Factories() []*Factory {
	out := make([]*Factory, len(s.order))
	for i, id := range s.order {
		out[i] = s.factories[id]
	}
	return out
}

// LateInits returns all late-init records in registration order.
func (s *Set) LateInits() []*LateInit {
	out := make([]*LateInit, len(s.lateOrder))
	for i, id := range s.lateOrder {
		out[i] = s.lateInits[id]
	}
	return out
}

// Len returns the number of registered factories.
func (s *Set) Len() int {
	return len(s.order)
}
