// Package gallery tracks the generated-blog-image directory: it lists the
// images the converter's URLs point at and watches the directory so an
// editing session learns when a generated image lands on disk.
package gallery

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmalab/blogforge/internal/storage"
)

// ImageExtensions are the file extensions treated as images.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// IsImage reports whether name has a recognized image extension.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Gallery lists generated blog images from a storage provider.
type Gallery struct {
	store storage.Provider
}

// New creates a gallery over the given provider.
func New(store storage.Provider) *Gallery {
	return &Gallery{store: store}
}

// List returns every image in the gallery, newest first.
func (g *Gallery) List() ([]storage.FileInfo, error) {
	files, err := g.store.List("", ImageExtensions...)
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})
	return files, nil
}
