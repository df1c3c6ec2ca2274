package wirebox

import (
	"github.com/vk/wirebox/ident"
	"github.com/vk/wirebox/registry"
)

// GraphSnapshot is the read-only view of one dependency graph: its
// vertices in registration order and its adjacency, requirement ->
// dependent products.
type GraphSnapshot struct {
	Vertices  []ident.ID
	Adjacency map[ident.ID][]ident.ID
}

// Snapshot is the serializable view of a container's graphs that external
// tooling (such as the viz package) renders. The container exposes the
// structure only; serialization formats live outside the core.
type Snapshot struct {
	Construction GraphSnapshot
	LateInit     GraphSnapshot
	Kinds        map[ident.ID]registry.Kind
}

// Snapshot finalizes the graphs and returns their current structure plus
// the kind tag of every registered product.
func (c *Container) Snapshot() (*Snapshot, error) {
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	buildAdj, err := c.buildGraph.Adjacency()
	if err != nil {
		return nil, err
	}
	lateAdj, err := c.lateGraph.Adjacency()
	if err != nil {
		return nil, err
	}

	kinds := make(map[ident.ID]registry.Kind, c.reg.Len())
	for _, f := range c.reg.Factories() {
		kinds[f.Product] = f.Kind
	}

	return &Snapshot{
		Construction: GraphSnapshot{Vertices: c.buildGraph.Vertices(), Adjacency: buildAdj},
		LateInit:     GraphSnapshot{Vertices: c.lateGraph.Vertices(), Adjacency: lateAdj},
		Kinds:        kinds,
	}, nil
}
