package graph

import (
	"fmt"

	"github.com/velkom/depviz/pkg/object"
	"github.com/velkom/depviz/pkg/repo"
)

// BuildOptions tunes the pipeline. Warnf, when set, receives one line per
// commit whose diff had to be skipped.
type BuildOptions struct {
	Warnf func(format string, args ...any)
}

func (o BuildOptions) warnf(format string, args ...any) {
	if o.Warnf != nil {
		o.Warnf(format, args...)
	}
}

// Build runs the whole pipeline against an opened repository: walk the
// history, diff every commit against its first parent, enumerate the
// newest commit's full tree once, and assemble the graph.
//
// Repository-level failures (unreadable history, broken head commit) are
// fatal. A failure while diffing one commit degrades to "no changes
// recorded for that commit": the commit node stays, a warning is emitted,
// and the rest of the graph is built normally.
func Build(r *repo.Repo, opts BuildOptions) (*Graph, error) {
	commits, err := r.WalkHistory()
	if err != nil {
		return nil, err
	}

	diffs := make(map[object.Hash]map[string]struct{}, len(commits))
	for _, h := range commits {
		changed, err := r.DiffCommit(h)
		if err != nil {
			opts.warnf("skipping diff for commit %s: %v", h.Short(), err)
			continue
		}
		diffs[h] = changed
	}

	// The walk starts at head, so commits[0] is the newest snapshot.
	head, err := r.Store.ReadCommit(commits[0])
	if err != nil {
		return nil, fmt.Errorf("read head commit: %w", err)
	}
	files, dirs, err := r.EnumerateTree(head.TreeHash)
	if err != nil {
		return nil, err
	}

	return Assemble(commits, diffs, files, dirs), nil
}
