// Package dashboard derives read-only statistics from the query log.
package dashboard

import (
	"context"
	"time"

	"github.com/JustJay7/ecourts-case-lookup/internal/database"
	"github.com/JustJay7/ecourts-case-lookup/internal/scraper"
	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
)

const DefaultRecentLimit = 10

// LogReader is the read side of the log store.
type LogReader interface {
	Count(ctx context.Context) (int64, error)
	CountByCourt(ctx context.Context, court string) (int64, error)
	Recent(ctx context.Context, limit int) ([]database.QueryLog, error)
}

type CourtCount struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// RecentEntry is an abbreviated log row.
type RecentEntry struct {
	ID         uint      `json:"id"`
	Court      string    `json:"court"`
	CaseType   string    `json:"case_type"`
	CaseNumber string    `json:"case_number"`
	CaseYear   string    `json:"case_year"`
	Timestamp  string    `json:"timestamp"`
	LoggedAt   time.Time `json:"-"`
	Parties    string    `json:"parties,omitempty"`
}

type Snapshot struct {
	TotalQueries     int64         `json:"total_queries"`
	DelhiQueries     int64         `json:"delhi_queries"`
	FaridabadQueries int64         `json:"faridabad_queries"`
	Courts           []CourtCount  `json:"courts"`
	Recent           []RecentEntry `json:"recent"`
}

type Aggregator struct {
	store  LogReader
	courts []scraper.Court
	limit  int
	logger *logger.Logger
}

func NewAggregator(store LogReader, courts []scraper.Court, recentLimit int, logger *logger.Logger) *Aggregator {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &Aggregator{
		store:  store,
		courts: courts,
		limit:  recentLimit,
		logger: logger,
	}
}

// Snapshot reads the counts and the most recent entries.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	total, err := a.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{TotalQueries: total}

	for _, court := range a.courts {
		n, err := a.store.CountByCourt(ctx, court.Name)
		if err != nil {
			return nil, err
		}
		snap.Courts = append(snap.Courts, CourtCount{Key: court.Key, Name: court.Name, Count: n})

		switch court.Key {
		case scraper.DelhiKey:
			snap.DelhiQueries = n
		case scraper.FaridabadKey:
			snap.FaridabadQueries = n
		}
	}

	logs, err := a.store.Recent(ctx, a.limit)
	if err != nil {
		return nil, err
	}

	snap.Recent = make([]RecentEntry, 0, len(logs))
	for _, l := range logs {
		entry := RecentEntry{
			ID:         l.ID,
			Court:      l.Court,
			CaseType:   l.CaseType,
			CaseNumber: l.CaseNumber,
			CaseYear:   l.CaseYear,
			Timestamp:  l.Timestamp,
		}
		if at, err := l.Time(); err == nil {
			entry.LoggedAt = at
		}
		if parties, err := scraper.SnapshotHeadline(l.RawHTML); err == nil {
			entry.Parties = parties
		} else {
			a.logger.Debug("No headline in snapshot", "log_id", l.ID, "error", err)
		}
		snap.Recent = append(snap.Recent, entry)
	}

	return snap, nil
}
