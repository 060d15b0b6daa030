//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE on occasions.title.
	return nil
}

func ftsInsert(_ *sql.Tx, _ int64, _ string) error { return nil }

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based title search (fallback when FTS5 is not
// compiled in). The snippet is the whole title.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT `+occasionColumns+`
		FROM occasions
		WHERE title LIKE ?
		ORDER BY month, day, id
		LIMIT ?
	`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, SearchResult{Occasion: o, Snippet: o.Title})
	}
	return out, rows.Err()
}
