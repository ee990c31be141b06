package repo

import (
	"fmt"

	"github.com/velkom/depviz/pkg/object"
)

// WalkHistory enumerates every commit reachable from the current head,
// each exactly once. The traversal is an explicit-stack depth-first walk
// with a visited set, so histories of any length stay off the call stack.
//
// The returned order is reachability order, the stack's pop sequence; it
// is NOT chronological. Callers that need time ordering must sort on the
// commits' own dates.
func (r *Repo) WalkHistory() ([]object.Hash, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}

	visited := make(map[object.Hash]struct{})
	var out []object.Hash

	stack := []object.Hash{head}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[h]; ok {
			continue
		}
		visited[h] = struct{}{}
		out = append(out, h)

		c, err := r.Store.ReadCommit(h)
		if err != nil {
			return nil, fmt.Errorf("walk history: %w", err)
		}
		stack = append(stack, c.Parents...)
	}

	return out, nil
}
