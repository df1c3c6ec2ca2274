package wirebox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/wirebox/ident"
	"github.com/vk/wirebox/internal/ctxlog"
)

// Build finalizes both graphs, constructs every not-yet-built product in
// topological order, then runs the late-initialization pass over the
// late-init graph.
//
// Build is incremental: products already present in the store are never
// reconstructed and already-late-initialized products are never mutated
// again, so registering further factories and calling Build again only
// touches the new vertices.
//
// On failure Build stops at the first failing step and returns; the store
// is left exactly as it was before that step, so fixing the registration
// and calling Build again resumes where the previous call left off. The
// context carries the logger only; Build never suspends.
func (c *Container) Build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx, c.logger)
	logger.Debug("Build started.", "registered", c.reg.Len(), "built", c.products.Len())

	if err := c.Finalize(); err != nil {
		return err
	}

	order, err := c.buildGraph.TopologicalSort()
	if err != nil {
		cycles, cerr := c.buildGraph.Cycles()
		if cerr != nil {
			return cerr
		}
		return &CycleError{Cycles: cycles}
	}
	logger.Debug("Construction order computed.", "vertices", len(order))

	for _, id := range order {
		if c.products.Has(id) {
			continue
		}
		if err := c.construct(id); err != nil {
			return err
		}
		logger.Debug("Product constructed.", "product", id.String())
	}

	if err := c.lateInitialize(logger); err != nil {
		return err
	}

	logger.Debug("Build finished.", "built", c.products.Len())
	return nil
}

// construct builds the product for one scheduled vertex. The topological
// order guarantees the factory record and every requirement's product
// exist; a miss is an engine bug surfaced as InternalError.
func (c *Container) construct(id ident.ID) error {
	f, ok := c.reg.Factory(id)
	if !ok {
		return &InternalError{Product: id, Cause: "factory record missing for scheduled vertex"}
	}
	args := make([]any, len(f.Requires))
	for i, req := range f.Requires {
		v, ok := c.products.Get(req)
		if !ok {
			return &InternalError{Product: id, Cause: "built product missing for requirement " + req.String()}
		}
		args[i] = v
	}
	v, err := f.Build(args)
	if err != nil {
		return fmt.Errorf("wirebox: building %s: %w", id, err)
	}
	return c.products.Put(id, v)
}

// lateInitialize runs the second pass: every vertex of the late-init
// graph is visited in topological order, and the ones carrying a not-yet-
// applied late-init record get their mutation function invoked with the
// stored product and the resolved late requirements.
func (c *Container) lateInitialize(logger *slog.Logger) error {
	order, err := c.lateGraph.TopologicalSort()
	if err != nil {
		cycles, cerr := c.lateGraph.Cycles()
		if cerr != nil {
			return cerr
		}
		return &CycleError{Cycles: cycles, LateInit: true}
	}

	for _, id := range order {
		li, ok := c.reg.LateInit(id)
		if !ok || c.lateDone[id] {
			// No late-init work, or applied by an earlier Build.
			continue
		}
		cur, ok := c.products.Get(id)
		if !ok {
			return &InternalError{Product: id, Cause: "built product missing for late initialization"}
		}
		args := make([]any, len(li.Requires))
		for i, req := range li.Requires {
			v, ok := c.products.Get(req)
			if !ok {
				return &InternalError{Product: id, Cause: "built product missing for late requirement " + req.String()}
			}
			args[i] = v
		}
		v, err := li.Mutate(cur, args)
		if err != nil {
			return fmt.Errorf("wirebox: late-initializing %s: %w", id, err)
		}
		if err := c.products.Replace(id, v); err != nil {
			return err
		}
		c.lateDone[id] = true
		logger.Debug("Product late-initialized.", "product", id.String())
	}
	return nil
}
