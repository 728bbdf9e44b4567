package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmalab/blogforge/internal/apperr"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/imagemeta"
	"github.com/dmalab/blogforge/internal/storage"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ImportBlogContent handles POST /api/convert/import.
//
//	@Summary		Convert a generated blog document into editor state
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ImportRequest	true	"Blog content to import"
//	@Success		200		{object}	ImportResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/import [post]
func (h *Handler) ImportBlogContent(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.BlogContent == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("blog_content is required"))
		return
	}
	state := h.svc.ImportDocument(req.BlogContent, req.ImageMeta)
	writeJSON(w, http.StatusOK, state)
}

// ExportEditorState handles POST /api/convert/export.
//
//	@Summary		Convert editor state back into a canonical blog document
//	@Tags			convert
//	@Accept			json
//	@Produce		json
//	@Param			body	body		EditorStateRequest	true	"Editor state to export"
//	@Success		200		{object}	ExportResponse
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/convert/export [post]
func (h *Handler) ExportEditorState(w http.ResponseWriter, r *http.Request) {
	var req EditorStateRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess := req.ImageMeta
	if sess == nil {
		sess = imagemeta.NewSession()
	}
	doc, images, err := h.svc.ExportEditorState(req.Title, req.Body, req.Tags, sess)
	if err != nil {
		if errors.Is(err, apperr.ErrEditorNotReady) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("editor holds no content to export"))
			return
		}
		slog.Error("export failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ExportResponse{BlogContent: doc, Images: images})
}

// ExportBlog handles POST /api/export-blog.
//
//	@Summary		Export editor state as publish-ready HTML
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ExportBlogRequest	true	"Editor state to publish"
//	@Success		200		{object}	ExportBlogResponse
//	@Failure		400		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/export-blog [post]
func (h *Handler) ExportBlog(w http.ResponseWriter, r *http.Request) {
	var req ExportBlogRequest
	if !readJSON(w, r, &req) {
		return
	}
	sess := req.ImageMeta
	if sess == nil {
		sess = imagemeta.NewSession()
	}
	_, html, file, err := h.svc.ExportBlog(req.Title, req.Body, req.Tags, sess, req.GeneratedImages)
	if err != nil {
		if errors.Is(err, apperr.ErrEditorNotReady) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("editor holds no content to export"))
			return
		}
		slog.Error("export blog failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ExportBlogResponse{Success: true, File: file, HTML: html})
}

// SaveDraft handles POST /api/save-draft.
//
//	@Summary		Persist an editor snapshot for the calling client
//	@Tags			drafts
//	@Accept			json
//	@Produce		json
//	@Param			If-Match	header	string				false	"Checksum for optimistic concurrency"
//	@Param			body		body	SaveDraftRequest	true	"Editor snapshot"
//	@Success		200			{object}	SaveDraftResponse
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/save-draft [post]
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveDraftRequest
	if !readJSON(w, r, &req) {
		return
	}

	ifMatch := strings.Trim(r.Header.Get("If-Match"), `"`)
	d := &draftstore.Draft{
		ClientID:  clientID(r),
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		ImageMeta: req.ImageMeta,
	}
	cs, err := h.svc.SaveDraft(d, ifMatch)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
			return
		}
		slog.Error("save draft failed", slog.String("client_id", d.ClientID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SaveDraftResponse{Success: true, Checksum: cs})
}

// GetDraft handles GET /api/get-draft.
//
//	@Summary		Restore the calling client's editor snapshot
//	@Tags			drafts
//	@Produce		json
//	@Success		200	{object}	GetDraftResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/get-draft [get]
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	id := clientID(r)
	d, err := h.svc.GetDraft(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("no draft for client"))
			return
		}
		slog.Error("get draft failed", slog.String("client_id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, GetDraftResponse{
		Success:   true,
		Title:     d.Title,
		Body:      d.Body,
		Tags:      d.Tags,
		ImageMeta: d.ImageMeta,
		Checksum:  d.Checksum,
	})
}

// DeleteDraft handles DELETE /api/drafts/{clientID}.
//
//	@Summary		Delete a stored draft
//	@Tags			drafts
//	@Param			clientID	path	string	true	"Client ID"
//	@Success		204			"Draft deleted"
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/drafts/{clientID} [delete]
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("client id is required"))
		return
	}
	if err := h.svc.DeleteDraft(id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("delete draft failed", slog.String("client_id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDrafts handles GET /api/drafts.
//
//	@Summary		List stored drafts with pagination
//	@Tags			drafts
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	DraftListResponse
//	@Security		BearerAuth
//	@Router			/drafts [get]
func (h *Handler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	drafts, total, err := h.svc.ListDrafts(limit, offset)
	if err != nil {
		slog.Error("list drafts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DraftListResponse{Drafts: drafts, Total: total})
}

// SearchDrafts handles GET /api/search.
//
//	@Summary		Full-text search across stored drafts
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) SearchDrafts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.SearchDrafts(q, limit)
	if err != nil {
		slog.Error("search drafts failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []draftstore.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// ListImages handles GET /api/images.
//
//	@Summary		List generated images available on disk
//	@Tags			images
//	@Produce		json
//	@Success		200	{object}	ImageListResponse
//	@Security		BearerAuth
//	@Router			/images [get]
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.ListImages()
	if err != nil {
		slog.Error("list images failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if images == nil {
		images = []storage.FileInfo{}
	}
	writeJSON(w, http.StatusOK, ImageListResponse{Images: images})
}
