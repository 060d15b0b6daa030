package index

import (
	"log/slog"
	"time"

	"github.com/starford/jcal/internal/checksum"
	"github.com/starford/jcal/internal/parser"
	"github.com/starford/jcal/internal/storage"
)

// Sync walks the occasion directory and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db OccasionIndex, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, m.Path, data, logger); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteFile(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile parses data and upserts it into the index. Entries that fail
// validation are logged and left out.
func IndexFile(db OccasionIndex, path string, data []byte, logger *slog.Logger) error {
	res, err := parser.Parse(path, data)
	if err != nil {
		return err
	}
	for _, msg := range res.Skipped {
		logger.Warn("index: skipped occasion", slog.String("path", path), slog.String("reason", msg))
	}
	return db.UpsertFile(FileRow{
		Path:      path,
		Title:     res.Title,
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}, res.Occasions)
}
