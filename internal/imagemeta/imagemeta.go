// Package imagemeta holds per-editing-session image metadata (style tag,
// thumbnail flag, caption) keyed by image source, and matches image
// placeholders to generated-image records.
package imagemeta

import "github.com/dmalab/blogforge/internal/blog"

// AI-generated image style tag.
const StyleAI = "ai"

// Session is the per-editing-session side table set. It is owned by the
// caller and passed explicitly into conversion entry points; it is not part
// of the canonical document and lives only as long as the editing session.
type Session struct {
	StyleMap     map[string]string `json:"styleMap"`
	ThumbnailMap map[string]bool   `json:"thumbnailMap"`
	CaptionMap   map[string]string `json:"captionMap"`
}

// NewSession returns an empty session with all maps allocated.
func NewSession() *Session {
	return &Session{
		StyleMap:     map[string]string{},
		ThumbnailMap: map[string]bool{},
		CaptionMap:   map[string]string{},
	}
}

// ensure re-allocates any map lost to JSON round-trips of partial payloads.
func (s *Session) ensure() {
	if s.StyleMap == nil {
		s.StyleMap = map[string]string{}
	}
	if s.ThumbnailMap == nil {
		s.ThumbnailMap = map[string]bool{}
	}
	if s.CaptionMap == nil {
		s.CaptionMap = map[string]string{}
	}
}

// Caption returns the stored caption for src, or empty string.
func (s *Session) Caption(src string) string {
	if s == nil || s.CaptionMap == nil {
		return ""
	}
	return s.CaptionMap[src]
}

// Style returns the stored style tag for src, or empty string.
func (s *Session) Style(src string) string {
	if s == nil || s.StyleMap == nil {
		return ""
	}
	return s.StyleMap[src]
}

// IsThumbnail reports whether src is marked as the post thumbnail.
func (s *Session) IsThumbnail(src string) bool {
	if s == nil || s.ThumbnailMap == nil {
		return false
	}
	return s.ThumbnailMap[src]
}

// Apply records the metadata of a resolved generated image under the final
// image source. The caption falls back to the normalized placeholder label
// when the image record carries none.
func (s *Session) Apply(src string, img *blog.GeneratedImage, placeholder string) {
	s.ensure()
	if img.Style != "" {
		s.StyleMap[src] = img.Style
	}
	if img.IsThumbnail {
		s.ThumbnailMap[src] = true
	}
	caption := img.Caption
	if caption == "" {
		caption = blog.NormalizePlaceholder(placeholder)
	}
	s.CaptionMap[src] = caption
}

// Resolve matches an image placeholder to a generated-image record. Exact
// index equality wins over placeholder-label equality; within each rule the
// first match in list order is taken. Pure and deterministic.
func Resolve(index int, placeholder string, images []blog.GeneratedImage) (*blog.GeneratedImage, bool) {
	for i := range images {
		if images[i].Index == index {
			return &images[i], true
		}
	}
	for i := range images {
		if images[i].Placeholder != "" && images[i].Placeholder == placeholder {
			return &images[i], true
		}
	}
	return nil, false
}
