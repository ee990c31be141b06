package object

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// Store is a loose-object store with Git's 2-character fan-out directory
// layout: objects/ab/cdef0123... Every object is a single zlib-deflated
// file addressed by its content hash. Packed storage is not consulted.
type Store struct {
	root string

	// cache, when non-nil, memoizes inflated objects by hash. History
	// traversal and diffing revisit the same trees repeatedly, so one
	// run-scoped cache avoids redundant decompression. The store is used
	// strictly sequentially; no locking.
	cache map[Hash]cachedObject
}

type cachedObject struct {
	objType ObjectType
	body    []byte
}

// NewStore creates a Store rooted at the given objects directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// NewCachedStore creates a Store with an in-memory read-through cache.
func NewCachedStore(root string) *Store {
	return &Store{root: root, cache: make(map[Hash]cachedObject)}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains a loose object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !h.Valid() {
		return false
	}
	if _, ok := s.cache[h]; ok {
		return true
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// Read retrieves an object by hash, returning its declared type and body.
// The whole file is read and inflated in one shot, then the envelope
// "type size\0body" is split at the first NUL. The declared size is
// informational and deliberately not checked against the body length.
func (s *Store) Read(h Hash) (ObjectType, []byte, error) {
	if c, ok := s.cache[h]; ok {
		return c.objType, c.body, nil
	}

	if !h.Valid() {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrObjectNotFound)
	}
	raw, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, ErrObjectNotFound)
	}

	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: %v", h, ErrDecompression, err)
	}
	data, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w: %v", h, ErrDecompression, err)
	}

	objType, _, body, err := ParseHeader(data)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}

	if s.cache != nil {
		s.cache[h] = cachedObject{objType: objType, body: body}
	}
	return objType, body, nil
}

// ParseHeader splits inflated object bytes into declared type, declared
// size, and body. The header is the ASCII "type size" prefix terminated by
// the first NUL byte. The declared size is returned as-is, without
// verifying it against the actual body length.
func ParseHeader(data []byte) (ObjectType, int, []byte, error) {
	nulIdx := bytes.IndexByte(data, 0)
	if nulIdx < 0 {
		return "", 0, nil, fmt.Errorf("%w: no NUL separator", ErrMalformedHeader)
	}
	header := string(data[:nulIdx])
	body := data[nulIdx+1:]

	objType, sizeStr, ok := strings.Cut(header, " ")
	if !ok {
		return "", 0, nil, fmt.Errorf("%w: %q", ErrMalformedHeader, header)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: bad size %q", ErrMalformedHeader, sizeStr)
	}
	return ObjectType(objType), size, body, nil
}

// Write stores an object and returns its content hash. The body is wrapped
// in the canonical "type len\0body" envelope, deflated, and written
// atomically via temp + rename. The running tool never writes; Write
// exists for constructing repositories in tests and fixtures.
func (s *Store) Write(objType ObjectType, body []byte) (Hash, error) {
	envelope := fmt.Sprintf("%s %d\x00", objType, len(body))
	raw := append([]byte(envelope), body...)

	h := HashObject(objType, body)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	dir := filepath.Join(s.root, string(h[:2]))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}

	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return "", fmt.Errorf("object write deflate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("object write deflate close: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(deflated.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write close: %w", err)
	}

	if err := os.Rename(tmpName, s.objectPath(h)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("object write rename: %w", err)
	}

	return h, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadCommit reads and decodes a commit object.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	objType, body, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeCommit {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeCommit)
	}
	return DecodeCommit(body)
}

// ReadTree reads and decodes a tree object.
func (s *Store) ReadTree(h Hash) ([]TreeEntry, error) {
	objType, body, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if objType != TypeTree {
		return nil, fmt.Errorf("object %s: type mismatch: got %q, want %q", h, objType, TypeTree)
	}
	return DecodeTree(body), nil
}

// WriteCommit encodes and stores a Commit.
func (s *Store) WriteCommit(c *Commit, message string) (Hash, error) {
	return s.Write(TypeCommit, EncodeCommit(c, message))
}

// WriteTree encodes and stores a tree.
func (s *Store) WriteTree(entries []TreeEntry) (Hash, error) {
	body, err := EncodeTree(entries)
	if err != nil {
		return "", err
	}
	return s.Write(TypeTree, body)
}

// WriteBlob stores raw file data as a blob.
func (s *Store) WriteBlob(data []byte) (Hash, error) {
	return s.Write(TypeBlob, data)
}
