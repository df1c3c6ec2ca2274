// Package viz renders a container's graph snapshot into serializable
// form for external tooling: a JSON bundle describing both graphs and a
// Graphviz DOT document. The container exposes structure only; every
// format decision lives here.
package viz

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/vk/wirebox"
)

// Bundle is the exported view of a container: vertex lists, adjacency
// and kind tags for the construction graph and the late-init graph.
type Bundle struct {
	Metadata     Metadata  `json:"metadata"`
	Construction GraphDump `json:"construction"`
	LateInit     GraphDump `json:"lateInit"`
}

// Metadata names the bundle and carries a render hash for change
// detection.
type Metadata struct {
	Name       string `json:"name"`
	RenderHash string `json:"renderHash,omitempty"`
}

// GraphDump is one graph flattened into vertex and edge lists, ordered
// deterministically.
type GraphDump struct {
	Vertices []Vertex `json:"vertices"`
	Edges    []Edge   `json:"edges,omitempty"`
}

// Vertex is one product in the graph.
type Vertex struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
}

// Edge is one requirement -> product dependency.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FromSnapshot flattens a container snapshot into a named bundle and
// stamps its render hash. Vertex order follows registration order, edge
// order follows the snapshot's deterministic adjacency.
func FromSnapshot(name string, snap *wirebox.Snapshot) *Bundle {
	b := &Bundle{
		Metadata:     Metadata{Name: name},
		Construction: dumpGraph(snap.Construction, snap),
		LateInit:     dumpGraph(snap.LateInit, snap),
	}
	b.SetHash()
	return b
}

func dumpGraph(g wirebox.GraphSnapshot, snap *wirebox.Snapshot) GraphDump {
	dump := GraphDump{Vertices: make([]Vertex, 0, len(g.Vertices))}
	for _, id := range g.Vertices {
		dump.Vertices = append(dump.Vertices, Vertex{ID: id.String(), Kind: snap.Kinds[id].String()})
		for _, to := range g.Adjacency[id] {
			dump.Edges = append(dump.Edges, Edge{From: id.String(), To: to.String()})
		}
	}
	return dump
}

// ComputeHash returns the xxhash of the bundle's canonical JSON form,
// ignoring any hash already stamped in the metadata.
func (b *Bundle) ComputeHash() string {
	unstamped := *b
	unstamped.Metadata.RenderHash = ""
	data, err := json.Marshal(&unstamped)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

// SetHash computes and stamps the render hash.
func (b *Bundle) SetHash() {
	b.Metadata.RenderHash = b.ComputeHash()
}

// WriteJSON writes the bundle as indented JSON.
func (b *Bundle) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}
