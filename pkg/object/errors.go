package object

import "errors"

// Sentinel errors for the failure modes callers are expected to tell
// apart. Wrapped with %w so errors.Is works across call sites.
var (
	// ErrObjectNotFound means no loose object file exists for the hash.
	// Objects that only exist inside a packfile also surface as this;
	// packed storage is not read.
	ErrObjectNotFound = errors.New("object not found")

	// ErrDecompression means the loose object file exists but its zlib
	// stream is corrupt or truncated.
	ErrDecompression = errors.New("object decompression failed")

	// ErrMalformedHeader means the inflated bytes carry no NUL-terminated
	// "type size" header.
	ErrMalformedHeader = errors.New("malformed object header")

	// ErrMalformedCommit means a commit body is missing its tree line.
	ErrMalformedCommit = errors.New("malformed commit: missing tree")
)
