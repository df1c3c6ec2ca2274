// Package wirebox is an object-graph container: callers register
// factories describing how to construct a named product from other named
// products, the container computes a build order, constructs every
// product exactly once, then runs a late-initialization pass that mutates
// already-built products using further dependencies. Late initialization
// is how reference cycles that cannot be expressed through constructor
// arguments get broken.
//
// The typical surface is the generic helpers: Provide registers a typed
// constructor, LateInit a typed mutator, and Get fetches a built product.
// The boxed RegisterFactory / RegisterLateInit / Finalize / Build / Get
// methods underneath are the contract adapters such as the manifest
// loader build on.
//
// A container is single-owner: registration and Build assume exclusive
// access and are not synchronized.
package wirebox

import (
	"log/slog"

	"github.com/vk/wirebox/graph"
	"github.com/vk/wirebox/ident"
	"github.com/vk/wirebox/registry"
	"github.com/vk/wirebox/store"
)

// Kind re-exports the registry kind tag for callers wiring the boxed API.
type Kind = registry.Kind

const (
	KindFactory         = registry.KindFactory
	KindStartupTask     = registry.KindStartupTask
	KindProtocolAdapter = registry.KindProtocolAdapter
)

// BuildFunc is the type-erased construction function of a factory record.
type BuildFunc = registry.BuildFunc

// MutateFunc is the type-erased mutation function of a late-init record.
type MutateFunc = registry.MutateFunc

// Container owns the registries, the two dependency graphs and the
// built-product store. Create one with New; the zero value is not usable.
type Container struct {
	reg        *registry.Set
	buildGraph *graph.Directed
	lateGraph  *graph.Directed
	products   *store.Store
	lateDone   map[ident.ID]bool
	logger     *slog.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used by registration and build. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		reg:        registry.NewSet(),
		buildGraph: graph.NewDirected(),
		lateGraph:  graph.NewDirected(),
		products:   store.New(),
		lateDone:   make(map[ident.ID]bool),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterFactory records a factory for product with its ordered
// requirement list and boxed build function. The product becomes a vertex
// of both graphs; edges are derived later by Finalize. Registration can
// continue after a Build, enabling incremental extension of an already
// partially built container.
func (c *Container) RegisterFactory(product ident.ID, requires []ident.ID, build BuildFunc, kind Kind) error {
	f := &registry.Factory{
		Product:  product,
		Requires: append([]ident.ID(nil), requires...),
		Build:    build,
		Kind:     kind,
	}
	if err := c.reg.AddFactory(f); err != nil {
		return err
	}
	// Every product is also a vertex of the late-init graph so that
	// late requirements may name any registered product, not only the
	// ones carrying late-init work of their own.
	c.buildGraph.AddVertex(product)
	c.lateGraph.AddVertex(product)
	c.logger.Debug("Factory registered.", "product", product.String(), "kind", kind.String())
	return nil
}

// RegisterLateInit records a late-init for product with its ordered late
// requirement list and boxed mutate function. The product must already
// have a factory; at most one late-init may exist per product.
func (c *Container) RegisterLateInit(product ident.ID, requires []ident.ID, mutate MutateFunc) error {
	li := &registry.LateInit{
		Product:  product,
		Requires: append([]ident.ID(nil), requires...),
		Mutate:   mutate,
	}
	if err := c.reg.AddLateInit(li); err != nil {
		return err
	}
	c.lateGraph.AddVertex(product)
	c.logger.Debug("Late-init registered.", "product", product.String())
	return nil
}

// Finalize rebuilds the edges of both graphs from the current
// registration state. It clears all existing edges first, so it is
// idempotent and safe to call at any time regardless of registration
// order; Build invokes it implicitly.
func (c *Container) Finalize() error {
	if err := c.buildGraph.ClearEdges(); err != nil {
		return err
	}
	if err := c.lateGraph.ClearEdges(); err != nil {
		return err
	}
	for _, f := range c.reg.Factories() {
		for _, req := range f.Requires {
			if !c.buildGraph.HasVertex(req) {
				return &MissingRequirementError{Requirement: req, RequestedBy: f.Product}
			}
			if err := c.buildGraph.AddEdge(req, f.Product); err != nil {
				return err
			}
		}
	}
	for _, li := range c.reg.LateInits() {
		for _, req := range li.Requires {
			if !c.lateGraph.HasVertex(req) {
				return &MissingRequirementError{Requirement: req, RequestedBy: li.Product, LateInit: true}
			}
			if err := c.lateGraph.AddEdge(req, li.Product); err != nil {
				return err
			}
		}
	}
	c.logger.Debug("Graphs finalized.", "vertices", c.buildGraph.Len())
	return nil
}

// Get returns the stored boxed value for id. Use the generic Get / As
// helpers for typed access.
func (c *Container) Get(id ident.ID) (any, error) {
	v, ok := c.products.Get(id)
	if !ok {
		return nil, &NotBuiltError{Product: id}
	}
	return v, nil
}

// Built reports whether id has a stored product.
func (c *Container) Built(id ident.ID) bool {
	return c.products.Has(id)
}

// Products returns the identities of all built products in build order.
func (c *Container) Products() []ident.ID {
	return c.products.IDs()
}
