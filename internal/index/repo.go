package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/jcal/internal/models"
)

// FileRow represents a row in the files table.
type FileRow struct {
	Path      string    `json:"path"`
	Title     string    `json:"title"`
	Checksum  string    `json:"checksum"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchResult represents one search hit.
type SearchResult struct {
	Occasion models.Occasion `json:"occasion"`
	Snippet  string          `json:"snippet"`
}

const occasionColumns = `id, path, year, month, day, title, holiday`

// UpsertFile replaces a file's row and all of its occasions within a
// transaction. The occasions' IDs are ignored and reassigned.
func (db *DB) UpsertFile(f FileRow, occasions []models.Occasion) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO files (path, title, checksum, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			updated_at = excluded.updated_at
	`, f.Path, f.Title, f.Checksum, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert file: %w", err)
	}

	if err := deleteOccasions(tx, f.Path); err != nil {
		return err
	}
	if len(occasions) > 0 {
		stmt, err := tx.Prepare(`INSERT INTO occasions (path, year, month, day, title, holiday) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("index: prepare occasion insert: %w", err)
		}
		defer stmt.Close()
		for _, o := range occasions {
			res, err := stmt.Exec(f.Path, o.Year, o.Month, o.Day, o.Title, o.Holiday)
			if err != nil {
				return fmt.Errorf("index: insert occasion: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("index: occasion id: %w", err)
			}
			// FTS upsert (no-op when FTS5 tag is absent).
			if err := ftsInsert(tx, id, o.Title); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func deleteOccasions(tx *sql.Tx, path string) error {
	ftsDelete(tx, path)
	if _, err := tx.Exec(`DELETE FROM occasions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete occasions: %w", err)
	}
	return nil
}

// DeleteFile removes a file and its occasions.
func (db *DB) DeleteFile(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteOccasions(tx, path); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM files WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete file: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a file, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM files WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// AllChecksums returns the checksum of every indexed file keyed by path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM files`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListFiles returns every indexed file with its occasion count, by path.
func (db *DB) ListFiles() ([]FileRow, error) {
	rows, err := db.conn.Query(`
		SELECT f.path, f.title, f.checksum, f.updated_at,
		       (SELECT count(*) FROM occasions o WHERE o.path = f.path)
		FROM files f
		ORDER BY f.path
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list files: %w", err)
	}
	defer rows.Close()

	var out []FileRow
	for rows.Next() {
		var f FileRow
		if err := rows.Scan(&f.Path, &f.Title, &f.Checksum, &f.UpdatedAt, &f.Count); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Month returns the occasions falling in the given Jalali month: recurring
// ones plus those dated in year. Results are ordered by day.
func (db *DB) Month(year, month int) ([]models.Occasion, error) {
	return db.queryOccasions(`
		SELECT `+occasionColumns+` FROM occasions
		WHERE month = ? AND (year = 0 OR year = ?)
		ORDER BY day, holiday DESC, id
	`, month, year)
}

// Day returns the occasions on one Jalali date.
func (db *DB) Day(year, month, day int) ([]models.Occasion, error) {
	return db.queryOccasions(`
		SELECT `+occasionColumns+` FROM occasions
		WHERE month = ? AND day = ? AND (year = 0 OR year = ?)
		ORDER BY holiday DESC, id
	`, month, day, year)
}

// Count returns the number of indexed occasions.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM occasions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func (db *DB) queryOccasions(query string, args ...any) ([]models.Occasion, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query occasions: %w", err)
	}
	defer rows.Close()

	var out []models.Occasion
	for rows.Next() {
		o, err := scanOccasion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOccasion(s scanner, extra ...any) (models.Occasion, error) {
	var o models.Occasion
	dest := append([]any{&o.ID, &o.Source, &o.Year, &o.Month, &o.Day, &o.Title, &o.Holiday}, extra...)
	if err := s.Scan(dest...); err != nil {
		return models.Occasion{}, fmt.Errorf("index: scan occasion: %w", err)
	}
	return o, nil
}
