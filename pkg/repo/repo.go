package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/velkom/depviz/pkg/object"
)

var (
	// ErrNotAGitRepository means no .git directory with an object store
	// and a HEAD file was found at or above the given path.
	ErrNotAGitRepository = errors.New("not a git repository")

	// ErrUnresolvableRef means HEAD names a ref whose file is missing.
	ErrUnresolvableRef = errors.New("unresolvable ref")
)

// Repo represents an opened git repository, accessed read-only through
// its loose object store.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ directory
	Store   *object.Store // loose object store under .git/objects
}

// Open locates a repository at path or any parent directory. The .git
// directory must contain an objects/ directory and a HEAD file; anything
// less is ErrNotAGitRepository.
//
// The store is cached for the lifetime of the Repo: history traversal,
// diffing, and enumeration all revisit the same trees, and one run only
// ever reads.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		gitDir := filepath.Join(cur, ".git")
		info, err := os.Stat(gitDir)
		if err == nil && info.IsDir() {
			if err := validateLayout(gitDir); err != nil {
				return nil, err
			}
			return &Repo{
				RootDir: cur,
				GitDir:  gitDir,
				Store:   object.NewCachedStore(filepath.Join(gitDir, "objects")),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .git/.
			return nil, fmt.Errorf("open %s: %w", path, ErrNotAGitRepository)
		}
		cur = parent
	}
}

func validateLayout(gitDir string) error {
	info, err := os.Stat(filepath.Join(gitDir, "objects"))
	if err != nil || !info.IsDir() {
		return fmt.Errorf("open %s: missing object store: %w", gitDir, ErrNotAGitRepository)
	}
	if _, err := os.Stat(filepath.Join(gitDir, "HEAD")); err != nil {
		return fmt.Errorf("open %s: missing HEAD: %w", gitDir, ErrNotAGitRepository)
	}
	return nil
}
