//go:build !sqlite_fts5

package draftstore

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses a LIKE fallback on drafts.plain_text.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _ string) error {
	// Plain text is already stored in the drafts table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT client_id, substr(plain_text, 1, 200)
		FROM drafts
		WHERE plain_text LIKE ?
		LIMIT ?
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("draftstore: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ClientID, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
