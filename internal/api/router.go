package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// imageDir is used to resolve uploaded image files; imageURLBase is the
// public prefix they are served under.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler, imageDir, imageURLBase string) chi.Router {
	h := NewHandler(svc)
	ih := NewImageHandler(imageDir, imageURLBase)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Conversion between blog documents and editor state.
	r.Post("/convert/import", h.ImportBlogContent)
	r.Post("/convert/export", h.ExportEditorState)
	r.Post("/export-blog", h.ExportBlog)

	// Draft persistence.
	r.Post("/save-draft", h.SaveDraft)
	r.Get("/get-draft", h.GetDraft)
	r.Get("/drafts", h.ListDrafts)
	r.Delete("/drafts/{clientID}", h.DeleteDraft)

	// Search.
	r.Get("/search", h.SearchDrafts)

	// Image gallery.
	r.Get("/images", h.ListImages)
	r.Post("/images", ih.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
