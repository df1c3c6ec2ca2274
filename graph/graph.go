// Package graph provides the directed dependency graph used by the
// container: one instance orders construction, a second independent
// instance orders late initialization. Vertices are product identities;
// edges always point requirement -> product and are derived from the
// registries, so the whole edge set can be cleared and rebuilt at any
// time.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/vk/wirebox/ident"
)

// ErrNotAcyclic is returned by TopologicalSort when the graph contains at
// least one cycle. Callers wanting the offending cycles call Cycles.
var ErrNotAcyclic = errors.New("graph: not a directed acyclic graph")

// ErrVertexNotFound is returned by AddEdge when an endpoint has not been
// added as a vertex.
var ErrVertexNotFound = errors.New("graph: vertex not found")

// Directed is a directed graph over product identities.
//
// Vertex insertion order is remembered and used to break ties in
// TopologicalSort, which makes the build order fully deterministic for a
// given registration sequence.
type Directed struct {
	g     graph.Graph[ident.ID, ident.ID]
	seq   map[ident.ID]int
	verts []ident.ID

	// Self-referential edges are tracked separately: they are cycles of
	// length one and must fail the sort, but the backing structure is
	// only ever asked to hold proper edges.
	loops map[ident.ID]bool
}

// NewDirected returns an empty directed graph.
func NewDirected() *Directed {
	return &Directed{
		g:     graph.New(func(id ident.ID) ident.ID { return id }, graph.Directed()),
		seq:   make(map[ident.ID]int),
		loops: make(map[ident.ID]bool),
	}
}

// AddVertex inserts id as a vertex. Inserting an existing vertex is a
// no-op, so registration code never needs to check first.
func (d *Directed) AddVertex(id ident.ID) {
	if _, ok := d.seq[id]; ok {
		return
	}
	if err := d.g.AddVertex(id); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		// The only failure mode of AddVertex is the duplicate we just
		// ruled out.
		panic(fmt.Sprintf("graph: AddVertex(%s): %v", id, err))
	}
	d.seq[id] = len(d.verts)
	d.verts = append(d.verts, id)
}

// HasVertex reports whether id has been inserted.
func (d *Directed) HasVertex(id ident.ID) bool {
	_, ok := d.seq[id]
	return ok
}

// Len returns the number of vertices.
func (d *Directed) Len() int {
	return len(d.verts)
}

// Vertices returns all vertices in insertion order.
func (d *Directed) Vertices() []ident.ID {
	out := make([]ident.ID, len(d.verts))
	copy(out, d.verts)
	return out
}

// AddEdge adds the directed edge from -> to. Both endpoints must already
// be vertices. Duplicate edges are ignored; a self-referential edge is
// recorded as a one-vertex cycle.
func (d *Directed) AddEdge(from, to ident.ID) error {
	if !d.HasVertex(from) {
		return fmt.Errorf("%w: %s", ErrVertexNotFound, from)
	}
	if !d.HasVertex(to) {
		return fmt.Errorf("%w: %s", ErrVertexNotFound, to)
	}
	if from == to {
		d.loops[from] = true
		return nil
	}
	if err := d.g.AddEdge(from, to); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return fmt.Errorf("graph: adding edge %s -> %s: %w", from, to, err)
	}
	return nil
}

// ClearEdges removes every edge while keeping the vertex set. Finalize
// calls this before re-deriving edges so stale edges cannot linger.
func (d *Directed) ClearEdges() error {
	edges, err := d.g.Edges()
	if err != nil {
		return fmt.Errorf("graph: listing edges: %w", err)
	}
	for _, e := range edges {
		if err := d.g.RemoveEdge(e.Source, e.Target); err != nil {
			return fmt.Errorf("graph: removing edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}
	d.loops = make(map[ident.ID]bool)
	return nil
}

// Successors returns the targets of all edges leaving id, ordered by
// vertex insertion order. Self-loops are included.
func (d *Directed) Successors(id ident.ID) ([]ident.ID, error) {
	adj, err := d.adjacency()
	if err != nil {
		return nil, err
	}
	return adj[id], nil
}

// Adjacency returns the full successor map in deterministic order.
func (d *Directed) Adjacency() (map[ident.ID][]ident.ID, error) {
	return d.adjacency()
}

func (d *Directed) adjacency() (map[ident.ID][]ident.ID, error) {
	raw, err := d.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("graph: adjacency map: %w", err)
	}
	adj := make(map[ident.ID][]ident.ID, len(d.verts))
	for _, v := range d.verts {
		var succ []ident.ID
		for t := range raw[v] {
			succ = append(succ, t)
		}
		if d.loops[v] {
			succ = append(succ, v)
		}
		sort.Slice(succ, func(i, j int) bool { return d.seq[succ[i]] < d.seq[succ[j]] })
		adj[v] = succ
	}
	return adj, nil
}

// TopologicalSort returns a linear order of all vertices in which every
// edge runs from earlier to later, i.e. every requirement precedes every
// product depending on it. Ties between independent vertices are broken
// by insertion order. If the graph is not acyclic it returns ErrNotAcyclic
// and no partial order.
func (d *Directed) TopologicalSort() ([]ident.ID, error) {
	if len(d.loops) > 0 {
		return nil, ErrNotAcyclic
	}
	order, err := graph.StableTopologicalSort(d.g, func(a, b ident.ID) bool {
		return d.seq[a] < d.seq[b]
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAcyclic, err)
	}
	return order, nil
}
