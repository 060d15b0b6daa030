// Package storage defines the occasion directory abstraction.
package storage

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/starford/jcal/internal/models"
)

// ErrNotOccasionFile is returned when a path does not name a YAML occasion file.
var ErrNotOccasionFile = errors.New("storage: not an occasion file")

// Provider is the interface for occasion file operations. Paths are
// relative to the occasion root.
type Provider interface {
	// List returns metadata for every occasion file under dir.
	List(dir string) ([]models.FileMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}

// IsOccasionFile reports whether name is a visible YAML file.
func IsOccasionFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// hiddenDir reports whether a directory should be skipped while listing.
func hiddenDir(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
