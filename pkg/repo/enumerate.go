package repo

import (
	"fmt"
	"strings"

	"github.com/velkom/depviz/pkg/object"
)

// EnumerateTree lists every blob path and every directory path that
// exists under the given tree, by recursive descent. An entry whose
// target decodes as a tree is recorded as a directory and descended into;
// any other target (blob, or an object that cannot be read at all) is
// recorded as a file, along with every proper ancestor prefix of its path
// as a directory.
//
// One call seeded at the newest commit's tree gives the graph the final
// repository snapshot, independent of what the per-commit diffs saw.
func (r *Repo) EnumerateTree(tree object.Hash) (files, dirs map[string]struct{}, err error) {
	files = make(map[string]struct{})
	dirs = make(map[string]struct{})
	if err := r.enumerate(tree, "", files, dirs); err != nil {
		return nil, nil, fmt.Errorf("enumerate tree %s: %w", tree.Short(), err)
	}
	return files, dirs, nil
}

func (r *Repo) enumerate(tree object.Hash, prefix string, files, dirs map[string]struct{}) error {
	entries, err := r.Store.ReadTree(tree)
	if err != nil {
		return err
	}

	for _, e := range entries {
		path := e.Name
		if prefix != "" {
			path = prefix + "/" + e.Name
		}

		objType, _, err := r.Store.Read(e.Target)
		if err == nil && objType == object.TypeTree {
			dirs[path] = struct{}{}
			if err := r.enumerate(e.Target, path, files, dirs); err != nil {
				return err
			}
			continue
		}

		files[path] = struct{}{}
		addAncestors(path, dirs)
	}
	return nil
}

// addAncestors records every proper ancestor prefix of path as a
// directory, so intermediate levels exist purely from path segmentation.
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
