package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmalab/blogforge/internal/gallery"
)

const maxUploadBytes = 50 << 20 // 50 MB

// ImageHandler serves and accepts generated-image files.
type ImageHandler struct {
	imageDir string
	urlBase  string
}

// NewImageHandler creates a handler rooted at the generated-image
// directory. urlBase is the public prefix images are served under,
// e.g. "/static/blog/create_naver/".
func NewImageHandler(imageDir, urlBase string) *ImageHandler {
	if !strings.HasSuffix(urlBase, "/") {
		urlBase += "/"
	}
	return &ImageHandler{imageDir: imageDir, urlBase: urlBase}
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal) and returns the absolute path under the image dir.
func (h *ImageHandler) safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	abs := filepath.Join(h.imageDir, cleaned)
	if !strings.HasPrefix(abs, h.imageDir+string(os.PathSeparator)) && abs != h.imageDir {
		return "", fmt.Errorf("path escapes image directory")
	}
	return abs, nil
}

// ServeFile handles GET {urlBase}{filename}.
func (h *ImageHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.safeName(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/images (multipart/form-data, field "file").
//
//	@Summary		Upload a generated image
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image file"
//	@Success		201		{object}	ImageUploadResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	if !gallery.IsImage(header.Filename) {
		writeJSON(w, http.StatusBadRequest, errorBody("unsupported image type"))
		return
	}

	abs, err := h.safeName(header.Filename)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := os.MkdirAll(h.imageDir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create image dir"))
		return
	}

	dst, err := os.Create(abs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create file"))
		return
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to write file"))
		return
	}

	writeJSON(w, http.StatusCreated, ImageUploadResponse{
		Filename: header.Filename,
		Size:     written,
		URL:      h.urlBase + header.Filename,
	})
}
