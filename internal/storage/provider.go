// Package storage defines the data-directory file abstraction used for
// generated blog images and published export files.
package storage

import "time"

// FileInfo is lightweight metadata for a stored file.
type FileInfo struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for data-directory file operations.
// All paths are relative to the provider's root.
type Provider interface {
	// List returns metadata for every file under dir whose extension is in
	// exts (e.g. ".png"). An empty exts list matches every file.
	List(dir string, exts ...string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
}
