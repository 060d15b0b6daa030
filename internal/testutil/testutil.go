// Package testutil provides shared test helpers for occasion directories,
// databases and clocks.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/jcal/internal/index"
	"github.com/starford/jcal/internal/storage"
	"github.com/starford/jcal/pkg/jalali"
)

// Tehran is a fixed +03:30 zone, the Iran standard time offset.
var Tehran = time.FixedZone("IRST", 3*3600+1800)

// Now is the instant returned by FakeClock: 1392-09-01 16:02:14 IRST,
// 2013-11-22 12:32:14 UTC.
var Now = time.Unix(1385123534, 0).UTC()

// FakeClock returns a clock frozen at Now in the Tehran zone.
func FakeClock() *jalali.FakeClock {
	return jalali.Fake(Now, Tehran)
}

// QuietLogger discards all log output.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB opens an index database in a temporary directory.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "jcal-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestOccasionDir creates a temporary occasion directory with a storage.Provider.
func TestOccasionDir(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFile writes content to rel under dir, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	abs := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// HolidaysYAML is a small occasion file used across tests.
const HolidaysYAML = `title: Official holidays
occasions:
  - date: "01-01"
    title: Nowruz
    holiday: true
  - date: "01-13"
    title: Sizdah Bedar
    holiday: true
  - date: "1392-09-22"
    title: Ashura
    holiday: true
  - date: "09-30"
    title: Yalda
`
