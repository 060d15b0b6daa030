//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS occasions_fts USING fts5(
			title,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

// ftsInsert indexes an occasion title under the occasion's id.
func ftsInsert(tx *sql.Tx, id int64, title string) error {
	if _, err := tx.Exec(`INSERT INTO occasions_fts (rowid, title) VALUES (?, ?)`, id, title); err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

// ftsDelete must run before the occasions rows of path are deleted.
func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM occasions_fts WHERE rowid IN (SELECT id FROM occasions WHERE path = ?)`, path)
}

// Search performs an FTS5 title search and returns matching occasions with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT o.id, o.path, o.year, o.month, o.day, o.title, o.holiday,
		       snippet(occasions_fts, 0, '<b>', '</b>', '...', 16)
		FROM occasions_fts
		JOIN occasions o ON o.id = occasions_fts.rowid
		WHERE occasions_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		o, err := scanOccasion(rows, &r.Snippet)
		if err != nil {
			return nil, err
		}
		r.Occasion = o
		out = append(out, r)
	}
	return out, rows.Err()
}
