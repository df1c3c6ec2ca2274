package graph

import "github.com/vk/wirebox/ident"

// Cycles enumerates every elementary cycle in the graph, each reported as
// an ordered vertex sequence ending where it began.
//
// The walk expands simple open paths breadth-first from every start
// vertex. A path closes into a cycle when its tail has an edge back to
// its head. Extending a path onto a vertex it already contains, or onto a
// vertex inserted earlier than the head, is pruned: the former keeps
// paths simple, the latter guarantees each cycle is found exactly once,
// rooted at its earliest-inserted vertex, instead of once per rotation.
func (d *Directed) Cycles() ([][]ident.ID, error) {
	adj, err := d.adjacency()
	if err != nil {
		return nil, err
	}

	var cycles [][]ident.ID
	for _, head := range d.verts {
		paths := [][]ident.ID{{head}}
		for len(paths) > 0 {
			var next [][]ident.ID
			for _, path := range paths {
				tail := path[len(path)-1]
				for _, succ := range adj[tail] {
					if succ == head {
						closed := make([]ident.ID, len(path)+1)
						copy(closed, path)
						closed[len(path)] = head
						cycles = append(cycles, closed)
						continue
					}
					if d.seq[succ] < d.seq[head] || onPath(path, succ) {
						continue
					}
					grown := make([]ident.ID, len(path)+1)
					copy(grown, path)
					grown[len(path)] = succ
					next = append(next, grown)
				}
			}
			paths = next
		}
	}
	return cycles, nil
}

func onPath(path []ident.ID, id ident.ID) bool {
	for _, v := range path {
		if v == id {
			return true
		}
	}
	return false
}
