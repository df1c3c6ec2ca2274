package viz

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT renders the bundle as a Graphviz digraph. Construction edges
// are solid, late-init edges dashed; vertex shape follows the kind tag.
func (b *Bundle) WriteDOT(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", b.Metadata.Name)
	sb.WriteString("  rankdir=LR;\n")

	for _, v := range b.Construction.Vertices {
		fmt.Fprintf(&sb, "  %q [shape=%s];\n", v.ID, kindShape(v.Kind))
	}
	for _, e := range b.Construction.Edges {
		fmt.Fprintf(&sb, "  %q -> %q;\n", e.From, e.To)
	}
	for _, e := range b.LateInit.Edges {
		fmt.Fprintf(&sb, "  %q -> %q [style=dashed];\n", e.From, e.To)
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func kindShape(kind string) string {
	switch kind {
	case "startup_task":
		return "diamond"
	case "adapter":
		return "hexagon"
	default:
		return "box"
	}
}
