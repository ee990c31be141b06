package object

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// DecodeTree parses a tree body: repeated binary records of the form
// "mode SP name NUL" followed by a 20-byte raw hash, which is hex-encoded
// on read. Entries come back in encoding order with modes verbatim.
//
// Parsing is lenient about truncation: when a boundary search or the
// fixed-width hash read runs past the end of the body, whatever entries
// were already collected are returned. Callers that care can compare
// against an expected entry count; nothing here does.
func DecodeTree(body []byte) []TreeEntry {
	var entries []TreeEntry

	pos := 0
	for pos < len(body) {
		sp := bytes.IndexByte(body[pos:], ' ')
		if sp < 0 {
			break
		}
		mode := string(body[pos : pos+sp])
		pos += sp + 1

		nul := bytes.IndexByte(body[pos:], 0)
		if nul < 0 {
			break
		}
		name := string(body[pos : pos+nul])
		pos += nul + 1

		if pos+rawHashLen > len(body) {
			break
		}
		target := Hash(hex.EncodeToString(body[pos : pos+rawHashLen]))
		pos += rawHashLen

		entries = append(entries, TreeEntry{Mode: mode, Name: name, Target: target})
	}

	return entries
}

// EncodeTree serializes tree entries into the binary tree format, the
// inverse of DecodeTree. Targets must be well-formed 40-hex hashes since
// they are packed back down to 20 raw bytes.
func EncodeTree(entries []TreeEntry) ([]byte, error) {
	var buf bytes.Buffer
	for _, e := range entries {
		raw, err := hex.DecodeString(string(e.Target))
		if err != nil || len(raw) != rawHashLen {
			return nil, fmt.Errorf("encode tree entry %q: bad target hash %q", e.Name, e.Target)
		}
		fmt.Fprintf(&buf, "%s %s\x00", e.Mode, e.Name)
		buf.Write(raw)
	}
	return buf.Bytes(), nil
}
