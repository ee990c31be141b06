package object

import "time"

// Hash is a 40-character hex-encoded SHA-1 digest, the address of a single
// loose object (commit, tree, or blob).
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Canonical Git mode strings for tree entries. The decoder carries
	// modes verbatim; these constants exist for writers.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
)

// Commit holds the decoded header of a commit object. Parents preserve
// file order: index 0 is the first parent, the only one diffing consults.
// Author and AuthorDate are zero-valued when the author line is missing
// or too short to parse; that is not an error.
type Commit struct {
	TreeHash   Hash
	Parents    []Hash
	Author     string
	AuthorDate time.Time
}

// FirstParent returns the commit's first parent, or "" for a root commit.
func (c *Commit) FirstParent() Hash {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// TreeEntry is one entry of a tree object: a named reference to a blob or
// a subtree. Mode is whatever mode string the object carried.
type TreeEntry struct {
	Mode   string
	Name   string
	Target Hash
}
