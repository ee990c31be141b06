package graph

import (
	"sort"
	"strings"

	"github.com/velkom/depviz/pkg/object"
)

// NodeKind classifies a graph node.
type NodeKind int

const (
	KindCommit NodeKind = iota // keyed by commit hash
	KindFile                   // keyed by slash path to a blob
	KindDir                    // keyed by slash path to a tree
)

// Edge is a directed edge between two node keys.
type Edge struct {
	From string
	To   string
}

// Graph is the dependency graph handed to the dot emitter: commit, file,
// and directory nodes plus a set of directed edges. Every edge endpoint
// has a node; membership is a set, so duplicates collapse and iteration
// order carries no meaning.
type Graph struct {
	Nodes map[string]NodeKind
	Edges map[Edge]struct{}
}

// Assemble builds the graph from a walked history, the per-commit changed
// names, and the file/dir enumeration of the newest snapshot.
//
// A path that the diffs report but the enumeration knows as a directory
// is classified as a directory; the file class never shadows it. Ancestor
// prefixes of every file and directory path become directory nodes, so no
// ancestor chain is ever missing.
func Assemble(commits []object.Hash, diffs map[object.Hash]map[string]struct{}, files, dirs map[string]struct{}) *Graph {
	g := &Graph{
		Nodes: make(map[string]NodeKind),
		Edges: make(map[Edge]struct{}),
	}

	dirSet := make(map[string]struct{}, len(dirs))
	for d := range dirs {
		dirSet[d] = struct{}{}
		addAncestors(d, dirSet)
	}

	fileSet := make(map[string]struct{}, len(files))
	for f := range files {
		fileSet[f] = struct{}{}
	}
	for _, changed := range diffs {
		for name := range changed {
			fileSet[name] = struct{}{}
		}
	}
	for f := range fileSet {
		if _, isDir := dirSet[f]; isDir {
			delete(fileSet, f)
			continue
		}
		addAncestors(f, dirSet)
	}

	for _, c := range commits {
		g.Nodes[string(c)] = KindCommit
	}
	for f := range fileSet {
		g.Nodes[f] = KindFile
	}
	for d := range dirSet {
		g.Nodes[d] = KindDir
	}

	// Commit -> changed entry. A nested path is attributed to its parent
	// directory; a root-level name gets the edge directly.
	for _, c := range commits {
		for name := range diffs[c] {
			target := name
			if parent := parentDir(name); parent != "" {
				target = parent
			}
			g.Edges[Edge{From: string(c), To: target}] = struct{}{}
		}
	}

	// Directory -> parent directory.
	for d := range dirSet {
		if parent := parentDir(d); parent != "" {
			g.Edges[Edge{From: d, To: parent}] = struct{}{}
		}
	}

	// Directory -> child file.
	for f := range fileSet {
		if parent := parentDir(f); parent != "" {
			g.Edges[Edge{From: parent, To: f}] = struct{}{}
		}
	}

	return g
}

func parentDir(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}
	return path[:i]
}

func addAncestors(path string, dirs map[string]struct{}) {
	for {
		i := strings.LastIndexByte(path, '/')
		if i < 0 {
			return
		}
		path = path[:i]
		dirs[path] = struct{}{}
	}
}

// SortedNodes returns the node keys in lexicographic order.
func (g *Graph) SortedNodes() []string {
	keys := make([]string, 0, len(g.Nodes))
	for k := range g.Nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedEdges returns the edges ordered by (From, To).
func (g *Graph) SortedEdges() []Edge {
	edges := make([]Edge, 0, len(g.Edges))
	for e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
