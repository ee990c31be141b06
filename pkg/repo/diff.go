package repo

import (
	"fmt"

	"github.com/velkom/depviz/pkg/object"
)

// DiffCommit compares a commit's top-level tree against its first
// parent's and returns the set of changed top-level names: names present
// on only one side, plus names whose target hash differs. A root commit
// is diffed against the empty mapping, so every name it carries comes
// back changed.
//
// Only the first parent is consulted; the extra parents of a merge are
// never diffed. The comparison does not recurse: a modified subtree shows
// up once, under its top-level name.
func (r *Repo) DiffCommit(h object.Hash) (map[string]struct{}, error) {
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", h.Short(), err)
	}

	cur, err := r.topLevel(c.TreeHash)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", h.Short(), err)
	}

	parent := map[string]object.Hash{}
	if p := c.FirstParent(); p != "" {
		pc, err := r.Store.ReadCommit(p)
		if err != nil {
			return nil, fmt.Errorf("diff %s: parent: %w", h.Short(), err)
		}
		parent, err = r.topLevel(pc.TreeHash)
		if err != nil {
			return nil, fmt.Errorf("diff %s: parent: %w", h.Short(), err)
		}
	}

	changed := make(map[string]struct{})
	for name, target := range cur {
		if parent[name] != target {
			changed[name] = struct{}{}
		}
	}
	for name, target := range parent {
		if cur[name] != target {
			changed[name] = struct{}{}
		}
	}
	return changed, nil
}

// topLevel reads a tree and maps its entry names to their targets. Names
// are unique within one tree level.
func (r *Repo) topLevel(tree object.Hash) (map[string]object.Hash, error) {
	entries, err := r.Store.ReadTree(tree)
	if err != nil {
		return nil, err
	}
	out := make(map[string]object.Hash, len(entries))
	for _, e := range entries {
		out[e.Name] = e.Target
	}
	return out, nil
}
