package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/velkom/depviz/pkg/object"
)

// Head resolves the current head commit hash. .git/HEAD either holds a
// hash directly (detached HEAD) or "ref: <relative-path>", in which case
// exactly one level of indirection is followed by reading that file under
// .git/. A missing ref file is ErrUnresolvableRef.
func (r *Repo) Head() (object.Hash, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, "HEAD"))
	if err != nil {
		return "", fmt.Errorf("head: %w", ErrNotAGitRepository)
	}
	content := strings.TrimSpace(string(data))

	if target, ok := strings.CutPrefix(content, "ref:"); ok {
		return r.readRef(strings.TrimSpace(target))
	}
	return object.Hash(content), nil
}

// readRef reads a ref file named relative to .git/, e.g. "refs/heads/main".
func (r *Repo) readRef(name string) (object.Hash, error) {
	data, err := os.ReadFile(filepath.Join(r.GitDir, filepath.FromSlash(name)))
	if err != nil {
		return "", fmt.Errorf("resolve ref %q: %w", name, ErrUnresolvableRef)
	}
	return object.Hash(strings.TrimSpace(string(data))), nil
}
