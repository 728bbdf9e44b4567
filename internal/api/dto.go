package api

import (
	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/imagemeta"
	"github.com/dmalab/blogforge/internal/quill"
	"github.com/dmalab/blogforge/internal/storage"
)

// ImportRequest carries a generated blog document into the editor.
type ImportRequest struct {
	BlogContent *blog.Document     `json:"blog_content" validate:"required"`
	ImageMeta   *imagemeta.Session `json:"image_meta,omitempty"`
}

// ImportResponse is the resulting editor state.
type ImportResponse = quill.EditorState

// EditorStateRequest is an editor snapshot submitted for export.
type EditorStateRequest struct {
	Title     delta.Delta        `json:"title"`
	Body      delta.Delta        `json:"body" validate:"required"`
	Tags      delta.Delta        `json:"tags"`
	ImageMeta *imagemeta.Session `json:"image_meta,omitempty"`
}

// ExportResponse wraps the canonical document produced from editor state.
type ExportResponse struct {
	BlogContent *blog.Document        `json:"blog_content" validate:"required"`
	Images      []quill.ExportedImage `json:"images" validate:"required"`
}

// ExportBlogRequest additionally carries the generated images to resolve
// placeholders against when rendering.
type ExportBlogRequest struct {
	EditorStateRequest
	GeneratedImages []blog.GeneratedImage `json:"generated_images,omitempty"`
}

// ExportBlogResponse reports the rendered publish file.
type ExportBlogResponse struct {
	Success bool   `json:"success" validate:"required"`
	File    string `json:"file" example:"exports/blog_20250101_120000.html" validate:"required"`
	HTML    string `json:"html" validate:"required"`
}

// SaveDraftRequest is the fire-and-forget editor snapshot payload.
type SaveDraftRequest struct {
	Title     delta.Delta        `json:"title"`
	Body      delta.Delta        `json:"body"`
	Tags      delta.Delta        `json:"tags"`
	ImageMeta *imagemeta.Session `json:"image_meta,omitempty"`
}

// SaveDraftResponse acknowledges a persisted snapshot.
type SaveDraftResponse struct {
	Success  bool   `json:"success" validate:"required"`
	Checksum string `json:"checksum" example:"abc123..." validate:"required"`
}

// GetDraftResponse restores a stored snapshot.
type GetDraftResponse struct {
	Success   bool               `json:"success" validate:"required"`
	Title     delta.Delta        `json:"title"`
	Body      delta.Delta        `json:"body"`
	Tags      delta.Delta        `json:"tags"`
	ImageMeta *imagemeta.Session `json:"image_meta"`
	Checksum  string             `json:"checksum"`
}

// DraftListResponse wraps paginated draft listings.
type DraftListResponse struct {
	Drafts []draftstore.Summary `json:"drafts" validate:"required"`
	Total  int                  `json:"total" example:"42" validate:"required"`
}

// SearchResponse wraps draft search results.
type SearchResponse struct {
	Results []draftstore.SearchResult `json:"results" validate:"required"`
}

// ImageListResponse wraps the generated image gallery listing.
type ImageListResponse struct {
	Images []storage.FileInfo `json:"images" validate:"required"`
}

// ImageUploadResponse is returned after a successful image upload.
type ImageUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/static/blog/create_naver/image.png" validate:"required"`
}
