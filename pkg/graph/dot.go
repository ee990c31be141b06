package graph

import (
	"fmt"
	"io"
	"strings"

	"github.com/velkom/depviz/pkg/object"
)

// Style holds the Graphviz fill colors for the three node classes.
type Style struct {
	CommitColor string
	FileColor   string
	DirColor    string
}

// DefaultStyle returns the default palette: commits lightblue, files
// lightgreen, directories orange.
func DefaultStyle() Style {
	return Style{
		CommitColor: "lightblue",
		FileColor:   "lightgreen",
		DirColor:    "orange",
	}
}

func (s Style) color(kind NodeKind) string {
	switch kind {
	case KindCommit:
		return s.CommitColor
	case KindDir:
		return s.DirColor
	default:
		return s.FileColor
	}
}

// WriteDot renders the graph as a Graphviz digraph. Output is sorted, so
// identical graphs produce byte-identical dot files.
//
// Dot node identifiers are namespaced by class ("c_", "f_", "d_" prefixes)
// rather than using the raw keys: a file path is never expected to collide
// with a 40-hex commit hash, but the emitted file should not depend on it.
// Labels stay human-readable, commits abbreviated to the short hash.
func WriteDot(w io.Writer, g *Graph, style Style) error {
	var b strings.Builder
	b.WriteString("digraph dependencies {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=rectangle, fontname=\"Helvetica\"];\n\n")

	for _, key := range g.SortedNodes() {
		kind := g.Nodes[key]
		label := key
		if kind == KindCommit {
			label = object.Hash(key).Short()
		}
		fmt.Fprintf(&b, "  %s [label=%s style=filled fillcolor=%s];\n",
			nodeID(key, kind), quote(label), style.color(kind))
	}

	b.WriteString("\n")
	for _, e := range g.SortedEdges() {
		fmt.Fprintf(&b, "  %s -> %s;\n", nodeID(e.From, g.Nodes[e.From]), nodeID(e.To, g.Nodes[e.To]))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func nodeID(key string, kind NodeKind) string {
	switch kind {
	case KindCommit:
		return quote("c_" + key)
	case KindDir:
		return quote("d_" + key)
	default:
		return quote("f_" + key)
	}
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}
