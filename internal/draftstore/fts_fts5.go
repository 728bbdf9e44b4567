//go:build sqlite_fts5

package draftstore

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS drafts_fts USING fts5(
			client_id UNINDEXED,
			plain_text,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, clientID, plainText string) error {
	_, _ = tx.Exec(`DELETE FROM drafts_fts WHERE client_id = ?`, clientID)
	_, err := tx.Exec(`INSERT INTO drafts_fts (client_id, plain_text) VALUES (?, ?)`,
		clientID, plainText)
	if err != nil {
		return fmt.Errorf("draftstore: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, clientID string) {
	_, _ = tx.Exec(`DELETE FROM drafts_fts WHERE client_id = ?`, clientID)
}

// Search performs an FTS5 full-text search over draft text and returns
// matching drafts with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT client_id,
		       snippet(drafts_fts, 1, '<b>', '</b>', '...', 64)
		FROM drafts_fts
		WHERE drafts_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
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
