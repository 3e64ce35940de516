package dashboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/JustJay7/ecourts-case-lookup/internal/database"
	"github.com/JustJay7/ecourts-case-lookup/internal/scraper"
	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func setupStore(t *testing.T) *database.LogStore {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "dashboard.db"))
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return database.NewLogStore(db)
}

func TestSnapshotEmpty(t *testing.T) {
	agg := NewAggregator(setupStore(t), scraper.Courts(), 10, logger.NewNop())

	snap, err := agg.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.TotalQueries != 0 || snap.DelhiQueries != 0 || snap.FaridabadQueries != 0 {
		t.Errorf("Expected zero counts, got %+v", snap)
	}
	if len(snap.Recent) != 0 {
		t.Errorf("Expected no recent entries, got %d", len(snap.Recent))
	}
	if len(snap.Courts) != 2 {
		t.Errorf("Expected a count per court, got %+v", snap.Courts)
	}
}

func TestSnapshotReadsPartiesFromSnapshot(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if _, err := store.Append(ctx, database.LogEntry{
		Court:   scraper.Delhi.Name,
		RawHTML: scraper.RenderSnapshot("Sunil Kumar vs Delhi Police"),
	}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, database.LogEntry{Court: scraper.Faridabad.Name, RawHTML: "not html"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	snap, err := NewAggregator(store, scraper.Courts(), 10, logger.NewNop()).Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Recent) != 2 {
		t.Fatalf("Expected 2 recent entries, got %d", len(snap.Recent))
	}

	byCourt := map[string]RecentEntry{}
	for _, e := range snap.Recent {
		byCourt[e.Court] = e
	}
	if got := byCourt[scraper.Delhi.Name].Parties; got != "Sunil Kumar vs Delhi Police" {
		t.Errorf("Expected parties from snapshot, got %q", got)
	}
	if got := byCourt[scraper.Faridabad.Name].Parties; got != "" {
		t.Errorf("Expected empty parties for a snapshot without headline, got %q", got)
	}
	if byCourt[scraper.Delhi.Name].LoggedAt.IsZero() {
		t.Error("Expected parsed timestamp")
	}
}

type failingReader struct{}

func (failingReader) Count(ctx context.Context) (int64, error) { return 0, errors.New("db down") }
func (failingReader) CountByCourt(ctx context.Context, court string) (int64, error) {
	return 0, errors.New("db down")
}
func (failingReader) Recent(ctx context.Context, limit int) ([]database.QueryLog, error) {
	return nil, errors.New("db down")
}

func TestSnapshotPropagatesStoreErrors(t *testing.T) {
	agg := NewAggregator(failingReader{}, scraper.Courts(), 10, logger.NewNop())
	if _, err := agg.Snapshot(context.Background()); err == nil {
		t.Fatal("Expected error from failing store")
	}
}

func TestSnapshotProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("totals add up and recent is bounded and ordered", prop.ForAll(
		func(seed int64, searches []bool) bool {
			store := setupStore(t)
			registry := scraper.NewMockRegistry(store, seed, logger.NewNop())
			ctx := context.Background()
			query := scraper.CaseQuery{CaseType: "CS", CaseNumber: "1", CaseYear: "2023"}

			for _, delhi := range searches {
				key := scraper.FaridabadKey
				if delhi {
					key = scraper.DelhiKey
				}
				p, err := registry.Resolve(key)
				if err != nil {
					return false
				}
				if _, err := p.Lookup(ctx, query); err != nil {
					return false
				}
			}

			snap, err := NewAggregator(store, registry.Courts(), DefaultRecentLimit, logger.NewNop()).Snapshot(ctx)
			if err != nil {
				return false
			}
			if snap.TotalQueries != int64(len(searches)) {
				return false
			}
			if snap.TotalQueries != snap.DelhiQueries+snap.FaridabadQueries {
				return false
			}
			if len(snap.Recent) > DefaultRecentLimit {
				return false
			}
			for i := 1; i < len(snap.Recent); i++ {
				if snap.Recent[i].Timestamp > snap.Recent[i-1].Timestamp {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		gen.SliceOfN(15, gen.Bool()),
	))

	properties.TestingRun(t)
}
