// Package quill converts between the canonical blog document model and a
// Quill-style rich-text operation stream. The two directions are not fully
// symmetric: introduction, conclusion, and FAQ are flattened into body
// content on import and are emitted empty on export.
package quill

import (
	"strings"
)

// Default locations of generated blog images relative to the API origin.
const (
	DefaultStaticPrefix  = "/static/"
	DefaultImageBasePath = "/static/blog/create_naver/"
)

// Converter holds the settings needed to build fully-qualified image URLs
// during import. The zero value uses a same-origin base URL and the default
// static paths.
type Converter struct {
	// BaseURL is the API origin prefixed to relative image paths.
	BaseURL string
	// StaticPrefix marks paths already rooted at the static file mount.
	StaticPrefix string
	// ImageBasePath is the directory prepended to bare relative paths.
	ImageBasePath string
}

// NewConverter creates a converter with the default static paths.
func NewConverter(baseURL string) *Converter {
	return &Converter{
		BaseURL:       baseURL,
		StaticPrefix:  DefaultStaticPrefix,
		ImageBasePath: DefaultImageBasePath,
	}
}

func (c *Converter) staticPrefix() string {
	if c.StaticPrefix == "" {
		return DefaultStaticPrefix
	}
	return c.StaticPrefix
}

func (c *Converter) imageBasePath() string {
	if c.ImageBasePath == "" {
		return DefaultImageBasePath
	}
	return c.ImageBasePath
}

// ImageURL builds the fully-qualified URL for a generated image path.
// Absolute URLs pass through unchanged; paths already under the static
// mount get only the API origin; any other relative path gets the origin
// plus the image base directory.
func (c *Converter) ImageURL(imagePath string) string {
	normalized := strings.ReplaceAll(imagePath, `\`, "/")
	switch {
	case strings.HasPrefix(normalized, "http://"), strings.HasPrefix(normalized, "https://"):
		return normalized
	case strings.HasPrefix(normalized, c.staticPrefix()):
		return c.BaseURL + normalized
	default:
		return c.BaseURL + c.imageBasePath() + normalized
	}
}
