package api

import (
	"fmt"
	"time"

	"github.com/dmalab/blogforge/internal/blog"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/draftstore"
	"github.com/dmalab/blogforge/internal/gallery"
	"github.com/dmalab/blogforge/internal/imagemeta"
	"github.com/dmalab/blogforge/internal/naver"
	"github.com/dmalab/blogforge/internal/quill"
	"github.com/dmalab/blogforge/internal/storage"
)

// DraftNotifier publishes draft persistence events to connected editors.
type DraftNotifier interface {
	PublishDraftSaved(clientID string)
}

// Service coordinates conversion, draft persistence, and export rendering.
type Service struct {
	conv     *quill.Converter
	drafts   draftstore.Store
	exports  storage.Provider
	gallery  *gallery.Gallery
	notifier DraftNotifier
}

// NewService creates a new API service. notifier may be nil.
func NewService(conv *quill.Converter, drafts draftstore.Store, exports storage.Provider, g *gallery.Gallery, notifier DraftNotifier) *Service {
	return &Service{conv: conv, drafts: drafts, exports: exports, gallery: g, notifier: notifier}
}

// ImportDocument converts a canonical blog document into editor state.
func (s *Service) ImportDocument(doc *blog.Document, sess *imagemeta.Session) quill.EditorState {
	return s.conv.FromDocument(doc, sess)
}

// ExportEditorState folds live editor streams back into a canonical
// document plus the flat image list walked from the body stream.
func (s *Service) ExportEditorState(title, body, tags delta.Delta, sess *imagemeta.Session) (*blog.Document, []quill.ExportedImage, error) {
	doc, err := s.conv.ToDocument(title, body, tags.PlainText(), sess)
	if err != nil {
		return nil, nil, err
	}
	return doc, quill.ExportedImages(body, sess), nil
}

// ExportBlog converts editor state, renders publish-ready HTML, and writes
// it to the exports area. Returns the document, the rendered HTML, and the
// stored file name.
func (s *Service) ExportBlog(title, body, tags delta.Delta, sess *imagemeta.Session, images []blog.GeneratedImage) (*blog.Document, string, string, error) {
	doc, err := s.conv.ToDocument(title, body, tags.PlainText(), sess)
	if err != nil {
		return nil, "", "", err
	}
	doc.GeneratedImages = images

	html := naver.Render(doc, s.conv.ImageURL)
	file := fmt.Sprintf("exports/blog_%s.html", time.Now().UTC().Format("20060102_150405"))
	if err := s.exports.Write(file, []byte(html)); err != nil {
		return nil, "", "", fmt.Errorf("write export: %w", err)
	}
	return doc, html, file, nil
}

// SaveDraft persists an editor snapshot for a client. Returns the new
// checksum.
func (s *Service) SaveDraft(d *draftstore.Draft, ifMatch string) (string, error) {
	cs, err := s.drafts.Save(d, ifMatch)
	if err != nil {
		return "", err
	}
	if s.notifier != nil {
		s.notifier.PublishDraftSaved(d.ClientID)
	}
	return cs, nil
}

// GetDraft restores the stored editor snapshot for a client.
func (s *Service) GetDraft(clientID string) (*draftstore.Draft, error) {
	return s.drafts.Get(clientID)
}

// DeleteDraft removes a client's draft.
func (s *Service) DeleteDraft(clientID string) error {
	return s.drafts.Delete(clientID)
}

// ListDrafts returns paginated draft summaries.
func (s *Service) ListDrafts(limit, offset int) ([]draftstore.Summary, int, error) {
	return s.drafts.List(limit, offset)
}

// SearchDrafts searches draft text.
func (s *Service) SearchDrafts(query string, limit int) ([]draftstore.SearchResult, error) {
	return s.drafts.Search(query, limit)
}

// ListImages lists the generated images available on disk.
func (s *Service) ListImages() ([]storage.FileInfo, error) {
	return s.gallery.List()
}
