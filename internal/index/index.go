package index

import "github.com/starford/jcal/internal/models"

// OccasionIndex defines the interface for occasion indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type.
type OccasionIndex interface {
	UpsertFile(f FileRow, occasions []models.Occasion) error
	DeleteFile(path string) error
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	ListFiles() ([]FileRow, error)
	Month(year, month int) ([]models.Occasion, error)
	Day(year, month, day int) ([]models.Occasion, error)
	Search(query string, limit int) ([]SearchResult, error)
	Count() (int, error)
	Ping() error
	Close() error
}

// Verify *DB satisfies OccasionIndex at compile time.
var _ OccasionIndex = (*DB)(nil)
