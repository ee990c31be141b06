package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DecodeCommit parses a commit body. Header lines run up to the first
// blank line; the free-text message after it is not needed here and is
// skipped. Recognized keys are "tree" (required), "parent" (zero or
// more, order preserved), and "author". Anything else, including the
// indented continuation lines of multi-line headers such as gpgsig, is
// ignored.
func DecodeCommit(body []byte) (*Commit, error) {
	c := &Commit{}

	header := body
	if idx := bytes.Index(body, []byte("\n\n")); idx >= 0 {
		header = body[:idx]
	}

	for _, line := range strings.Split(string(header), "\n") {
		switch {
		case strings.HasPrefix(line, "tree "):
			c.TreeHash = Hash(strings.TrimPrefix(line, "tree "))
		case strings.HasPrefix(line, "parent "):
			c.Parents = append(c.Parents, Hash(strings.TrimPrefix(line, "parent ")))
		case strings.HasPrefix(line, "author "):
			c.Author, c.AuthorDate = parseAuthor(strings.TrimPrefix(line, "author "))
		}
	}

	if c.TreeHash == "" {
		return nil, ErrMalformedCommit
	}
	return c, nil
}

// parseAuthor splits "Name <email> unixtime tzoffset" from the right into
// the trailing timestamp and timezone tokens, leaving the name/email text
// in front. A line without enough tokens or with a non-numeric timestamp
// yields zero values; that is deliberate, author metadata is optional.
func parseAuthor(rest string) (string, time.Time) {
	i := strings.LastIndexByte(rest, ' ')
	if i < 0 {
		return "", time.Time{}
	}
	j := strings.LastIndexByte(rest[:i], ' ')
	if j < 0 {
		return "", time.Time{}
	}

	ts, err := strconv.ParseInt(rest[j+1:i], 10, 64)
	if err != nil {
		return "", time.Time{}
	}
	return rest[:j], time.Unix(ts, 0)
}

// EncodeCommit serializes a commit body in the canonical layout:
//
//	tree H
//	parent H     (zero or more)
//	author A T Z (when author metadata is set)
//
//	message
//
// The inverse of DecodeCommit, used when constructing repositories.
func EncodeCommit(c *Commit, message string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	for _, p := range c.Parents {
		fmt.Fprintf(&buf, "parent %s\n", string(p))
	}
	if c.Author != "" {
		fmt.Fprintf(&buf, "author %s %d +0000\n", c.Author, c.AuthorDate.Unix())
	}
	buf.WriteByte('\n')
	buf.WriteString(message)
	return buf.Bytes()
}
