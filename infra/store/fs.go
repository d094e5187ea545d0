// Package store provides artifact storage backends.
package store

import "os"

// FS serves artifacts from the local filesystem. The artifact directory is
// read-only from the service's perspective.
type FS struct{}

// NewFS returns a filesystem-backed artifact store.
func NewFS() FS { return FS{} }

// Exists reports whether path names a regular file.
func (FS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile returns the full artifact contents.
func (FS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
