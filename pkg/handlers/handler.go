// Package handlers contains one handler per file-format family. A handler
// pairs a cheap capability predicate with a rendering action that shells out
// to a format-specific tool, falling back to plainer rendering when the tool
// is missing or the content is not what it claims to be.
package handlers

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// sniffBudget caps how much of a file a content predicate may read.
// Predicates must be O(1) in file size.
const sniffBudget = 1024

// Handler is a named unit combining a content-classification predicate and a
// rendering action for one file-format family.
type Handler interface {
	// Name is the unique key used in configuration.
	Name() string
	// CanHandle reports whether this handler applies to the path. It may
	// read file metadata or a bounded content prefix but must not mutate
	// anything, and it never fails: unreadable files report false.
	CanHandle(path string, info fs.FileInfo) bool
	// Handle renders the path. Recoverable conditions (missing tool,
	// invalid content, oversized file) are absorbed by delegating to the
	// fallback rendering path.
	Handle(path string) error
	// Priority is the handler's default priority; higher runs first.
	Priority() int
}

// hasExt reports whether the path has one of the given extensions,
// case-insensitively. Extensions include the leading dot.
func hasExt(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// readPrefix returns up to n leading bytes of the file, or nil when the file
// cannot be read. Errors are deliberately swallowed: a predicate that cannot
// read simply does not match.
func readPrefix(path string, n int) []byte {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil
	}
	return buf[:read]
}

// isEmptyFile reports whether info describes a zero-byte regular file.
// Zero-byte files with a format extension are a positive match for that
// format so the renderer can short-circuit to an "(empty ...)" marker.
func isEmptyFile(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Size() == 0
}
