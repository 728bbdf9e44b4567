package draftstore

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmalab/blogforge/internal/apperr"
	"github.com/dmalab/blogforge/internal/delta"
	"github.com/dmalab/blogforge/internal/imagemeta"
)

// Draft is an opaque snapshot of live editor state: the three region
// streams plus the image side tables. Restoring it reproduces the exact
// operation streams, never a re-derived document.
type Draft struct {
	ClientID  string             `json:"client_id"`
	Title     delta.Delta        `json:"title"`
	Body      delta.Delta        `json:"body"`
	Tags      delta.Delta        `json:"tags"`
	ImageMeta *imagemeta.Session `json:"image_meta"`
	Checksum  string             `json:"checksum"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Summary is a lightweight representation returned by list operations.
type Summary struct {
	ClientID  string    `json:"client_id"`
	Snippet   string    `json:"snippet"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult represents one search hit.
type SearchResult struct {
	ClientID string `json:"client_id"`
	Snippet  string `json:"snippet"`
}

// Checksum returns the hex SHA-256 digest of a draft's editor state,
// used for optimistic concurrency on saves.
func Checksum(d *Draft) string {
	payload, _ := json.Marshal(struct {
		Title delta.Delta `json:"title"`
		Body  delta.Delta `json:"body"`
		Tags  delta.Delta `json:"tags"`
	}{d.Title, d.Body, d.Tags})
	h := sha256.Sum256(payload)
	return hex.EncodeToString(h[:])
}

// plainText extracts the searchable text of a draft.
func plainText(d *Draft) string {
	parts := []string{d.Title.PlainText(), d.Body.PlainText(), d.Tags.PlainText()}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// Save upserts a draft snapshot. A non-empty ifMatch that differs from the
// stored checksum returns apperr.ErrConflict; an empty ifMatch is
// last-write-wins, which is safe because the payload is the full state.
// Returns the new checksum.
func (db *DB) Save(d *Draft, ifMatch string) (string, error) {
	if d.ClientID == "" {
		return "", fmt.Errorf("draftstore: client id is required")
	}
	if ifMatch != "" {
		stored, err := db.getChecksum(d.ClientID)
		if err != nil {
			return "", err
		}
		if stored != "" && stored != ifMatch {
			return "", apperr.ErrConflict
		}
	}

	titleJSON, _ := json.Marshal(d.Title)
	bodyJSON, _ := json.Marshal(d.Body)
	tagsJSON, _ := json.Marshal(d.Tags)
	meta := d.ImageMeta
	if meta == nil {
		meta = imagemeta.NewSession()
	}
	metaJSON, _ := json.Marshal(meta)

	cs := Checksum(d)
	plain := plainText(d)
	now := time.Now().UTC()

	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("draftstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO drafts (client_id, title, body, tags, image_meta, plain_text, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(client_id) DO UPDATE SET
			title      = excluded.title,
			body       = excluded.body,
			tags       = excluded.tags,
			image_meta = excluded.image_meta,
			plain_text = excluded.plain_text,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, d.ClientID, string(titleJSON), string(bodyJSON), string(tagsJSON), string(metaJSON), plain, cs, now)
	if err != nil {
		return "", fmt.Errorf("draftstore: upsert draft: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, d.ClientID, plain); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("draftstore: commit: %w", err)
	}
	return cs, nil
}

// Get returns the stored draft for a client, or apperr.ErrNotFound.
func (db *DB) Get(clientID string) (*Draft, error) {
	var (
		titleJSON, bodyJSON, tagsJSON, metaJSON string
		cs                                      string
		updatedAt                               time.Time
	)
	err := db.conn.QueryRow(`
		SELECT title, body, tags, image_meta, checksum, updated_at
		FROM drafts WHERE client_id = ?
	`, clientID).Scan(&titleJSON, &bodyJSON, &tagsJSON, &metaJSON, &cs, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draftstore: get draft: %w", err)
	}

	d := &Draft{ClientID: clientID, Checksum: cs, UpdatedAt: updatedAt}
	_ = json.Unmarshal([]byte(titleJSON), &d.Title)
	_ = json.Unmarshal([]byte(bodyJSON), &d.Body)
	_ = json.Unmarshal([]byte(tagsJSON), &d.Tags)
	meta := imagemeta.NewSession()
	_ = json.Unmarshal([]byte(metaJSON), meta)
	d.ImageMeta = meta
	return d, nil
}

// Delete removes a draft and its FTS entry.
func (db *DB) Delete(clientID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("draftstore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, clientID)
	res, err := tx.Exec(`DELETE FROM drafts WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("draftstore: delete draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return tx.Commit()
}

// List returns paginated draft summaries, most recently updated first,
// plus the total count.
func (db *DB) List(limit, offset int) ([]Summary, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("draftstore: count: %w", err)
	}

	rows, err := db.conn.Query(`
		SELECT client_id, substr(plain_text, 1, 120), checksum, updated_at
		FROM drafts
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("draftstore: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ClientID, &s.Snippet, &s.Checksum, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

// getChecksum returns the stored checksum for a draft, or empty string
// when the draft does not exist.
func (db *DB) getChecksum(clientID string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM drafts WHERE client_id = ?`, clientID).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("draftstore: get checksum: %w", err)
	}
	return cs, nil
}
