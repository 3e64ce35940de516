package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { Close(db) })
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Second Migrate failed: %v", err)
	}
	if !db.Migrator().HasTable("logs") {
		t.Fatal("Expected logs table to exist")
	}
	for _, column := range []string{"id", "court", "case_type", "case_number", "case_year", "timestamp", "raw_html"} {
		if !db.Migrator().HasColumn(&QueryLog{}, column) {
			t.Errorf("Expected column %s on logs", column)
		}
	}
	for _, index := range []string{"idx_logs_court", "idx_logs_timestamp"} {
		if !db.Migrator().HasIndex(&QueryLog{}, index) {
			t.Errorf("Expected index %s on logs", index)
		}
	}
}

func TestInitializeExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "restart.db")

	db, err := Initialize(path)
	if err != nil {
		t.Fatalf("First Initialize failed: %v", err)
	}
	if _, err := NewLogStore(db).Append(context.Background(), LogEntry{Court: "Delhi High Court"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	Close(db)

	for i := 0; i < 2; i++ {
		db, err = Initialize(path)
		if err != nil {
			t.Fatalf("Initialize on existing file (run %d) failed: %v", i+2, err)
		}
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate after Initialize failed: %v", err)
		}

		total, err := NewLogStore(db).Count(context.Background())
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if total != 1 {
			t.Errorf("Expected existing row to survive restart, got %d rows", total)
		}
		Close(db)
	}
}

func TestAppendAssignsIdentityAndTimestamp(t *testing.T) {
	store := NewLogStore(setupTestDB(t))
	fixed := time.Date(2025, 7, 1, 10, 30, 0, 0, time.FixedZone("IST", 19800))
	store.now = func() time.Time { return fixed }

	ctx := context.Background()
	first, err := store.Append(ctx, LogEntry{
		Court:      "Delhi High Court",
		CaseType:   "CS",
		CaseNumber: "100",
		CaseYear:   "2023",
		RawHTML:    "<html><body><h1>A vs B</h1></body></html>",
	})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := store.Append(ctx, LogEntry{Court: "Delhi High Court"})
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if first.ID == 0 || second.ID <= first.ID {
		t.Errorf("Expected increasing ids, got %d then %d", first.ID, second.ID)
	}
	if first.Timestamp != "2025-07-01T05:00:00.000000Z" {
		t.Errorf("Unexpected timestamp %s", first.Timestamp)
	}

	parsed, err := first.Time()
	if err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if !parsed.Equal(fixed) {
		t.Errorf("Expected %v, got %v", fixed, parsed)
	}
}

func TestCounts(t *testing.T) {
	store := NewLogStore(setupTestDB(t))
	ctx := context.Background()

	courts := []string{"Delhi High Court", "Faridabad District Court", "Delhi High Court"}
	for _, court := range courts {
		if _, err := store.Append(ctx, LogEntry{Court: court}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	total, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected 3 rows, got %d", total)
	}

	delhi, _ := store.CountByCourt(ctx, "Delhi High Court")
	faridabad, _ := store.CountByCourt(ctx, "Faridabad District Court")
	other, _ := store.CountByCourt(ctx, "Bombay High Court")
	if delhi != 2 || faridabad != 1 || other != 0 {
		t.Errorf("Unexpected per-court counts delhi=%d faridabad=%d other=%d", delhi, faridabad, other)
	}
}

func TestRecentOrdering(t *testing.T) {
	store := NewLogStore(setupTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{5 * time.Minute, time.Minute, 10 * time.Minute, time.Minute}
	for i, offset := range offsets {
		at := base.Add(offset)
		store.now = func() time.Time { return at }
		if _, err := store.Append(ctx, LogEntry{Court: "Delhi High Court", CaseNumber: string(rune('A' + i))}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(recent))
	}

	want := []string{"C", "A", "D"}
	for i, row := range recent {
		if row.CaseNumber != want[i] {
			t.Errorf("Row %d: expected case %s, got %s", i, want[i], row.CaseNumber)
		}
	}
}

func TestRecentRejectsBadLimit(t *testing.T) {
	store := NewLogStore(setupTestDB(t))

	if _, err := store.Recent(context.Background(), 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("Expected ErrInvalidLimit, got %v", err)
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	store := NewLogStore(db)

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	Close(db)
	if err := store.Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail on a closed database")
	}
}
