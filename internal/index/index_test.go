package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/jcal/internal/models"
	"github.com/starford/jcal/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "jcal-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func holidays() []models.Occasion {
	return []models.Occasion{
		{Month: 1, Day: 1, Title: "Nowruz", Holiday: true},
		{Month: 1, Day: 13, Title: "Sizdah Bedar", Holiday: true},
		{Year: 1392, Month: 1, Day: 5, Title: "Trip"},
		{Month: 12, Day: 29, Title: "Esfand end"},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM files`).Scan(&count); err != nil {
		t.Fatalf("files table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM occasions`).Scan(&count); err != nil {
		t.Fatalf("occasions table missing: %v", err)
	}
}

func TestUpsertAndQuery(t *testing.T) {
	db := testDB(t)
	row := FileRow{Path: "holidays.yaml", Title: "Holidays", Checksum: "abc123", UpdatedAt: time.Now()}
	if err := db.UpsertFile(row, holidays()); err != nil {
		t.Fatalf("UpsertFile: %v", err)
	}

	cs, err := db.GetChecksum("holidays.yaml")
	if err != nil || cs != "abc123" {
		t.Errorf("checksum = %q, %v", cs, err)
	}

	farvardin, err := db.Month(1392, 1)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if len(farvardin) != 3 {
		t.Fatalf("1392-01 occasions = %+v", farvardin)
	}
	if farvardin[0].Title != "Nowruz" || farvardin[1].Title != "Trip" || farvardin[2].Title != "Sizdah Bedar" {
		t.Errorf("order = %+v", farvardin)
	}
	if farvardin[0].Source != "holidays.yaml" || !farvardin[0].Holiday || farvardin[0].ID == 0 {
		t.Errorf("nowruz = %+v", farvardin[0])
	}

	other, _ := db.Month(1393, 1)
	if len(other) != 2 {
		t.Errorf("1393-01 should only have recurring occasions: %+v", other)
	}

	day, err := db.Day(1392, 1, 13)
	if err != nil || len(day) != 1 || day[0].Title != "Sizdah Bedar" {
		t.Errorf("Day = %+v, %v", day, err)
	}

	n, err := db.Count()
	if err != nil || n != 4 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestUpsertReplacesOccasions(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertFile(FileRow{Path: "f.yaml", Checksum: "1", UpdatedAt: now}, holidays())
	_ = db.UpsertFile(FileRow{Path: "f.yaml", Checksum: "2", UpdatedAt: now}, []models.Occasion{{Month: 2, Day: 2, Title: "Only"}})

	n, _ := db.Count()
	if n != 1 {
		t.Errorf("count after replace = %d, want 1", n)
	}
	files, err := db.ListFiles()
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 1 || files[0].Checksum != "2" || files[0].Count != 1 {
		t.Errorf("files = %+v", files)
	}
}

func TestDeleteFile(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertFile(FileRow{Path: "del.yaml", Checksum: "x", UpdatedAt: time.Now()}, holidays())

	if err := db.DeleteFile("del.yaml"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if cs, _ := db.GetChecksum("del.yaml"); cs != "" {
		t.Errorf("deleted file still has checksum %q", cs)
	}
	if n, _ := db.Count(); n != 0 {
		t.Errorf("occasions left after delete: %d", n)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertFile(FileRow{Path: "s.yaml", Checksum: "1", UpdatedAt: time.Now()}, holidays())

	results, err := db.Search("Nowruz", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Occasion.Title != "Nowruz" || results[0].Snippet == "" {
		t.Errorf("search results = %+v, want 1 hit for Nowruz", results)
	}
}

func TestSync(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	_ = store.Write("a.yaml", []byte("occasions:\n  - date: \"01-01\"\n    title: Nowruz\n    holiday: true\n"))
	_ = store.Write("b.yaml", []byte("occasions:\n  - date: \"99-99\"\n    title: Broken\n  - date: \"02-01\"\n    title: Kept\n"))
	_ = store.Write("bad.yaml", []byte("occasions: [{{{"))

	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if n, _ := db.Count(); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	if cs, _ := db.GetChecksum("bad.yaml"); cs != "" {
		t.Error("unparseable file should not be indexed")
	}

	_ = os.Remove(filepath.Join(dir, "a.yaml"))
	if err := Sync(db, store, quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if cs, _ := db.GetChecksum("a.yaml"); cs != "" {
		t.Error("removed file should be dropped from the index")
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count after removal = %d, want 1", n)
	}
}
