// Package source provides sequential access to the line-delimited files an
// ingestion job reads.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when the requested file does not exist.
var ErrNotFound = errors.New("source file not found")

// LineSource opens a named file for sequential reading.
type LineSource interface {
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
}

// DirSource reads files from a local directory.
type DirSource struct {
	root string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{root: dir}
}

// Open opens fileID relative to the source directory.
func (s *DirSource) Open(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// rooting the id before cleaning keeps it inside the directory
	f, err := os.Open(filepath.Join(s.root, filepath.Clean("/"+fileID)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", fileID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fileID, err)
	}
	return f, nil
}
