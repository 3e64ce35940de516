package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidLimit = errors.New("limit must be positive")

// LogEntry carries the caller-supplied fields of a new log row.
type LogEntry struct {
	Court      string
	CaseType   string
	CaseNumber string
	CaseYear   string
	RawHTML    string
}

// LogStore is the append-only query log. Each call checks a connection out
// of the pool and returns it before the call returns.
type LogStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db, now: time.Now}
}

// Append inserts a row with a generated id and creation timestamp.
func (s *LogStore) Append(ctx context.Context, entry LogEntry) (*QueryLog, error) {
	record := &QueryLog{
		Court:      entry.Court,
		CaseType:   entry.CaseType,
		CaseNumber: entry.CaseNumber,
		CaseYear:   entry.CaseYear,
		Timestamp:  FormatTimestamp(s.now()),
		RawHTML:    entry.RawHTML,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to append query log: %w", err)
	}
	return record, nil
}

// Count returns the total number of log rows.
func (s *LogStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&QueryLog{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count query logs: %w", err)
	}
	return total, nil
}

// CountByCourt returns the number of rows logged under a court display name.
func (s *LogStore) CountByCourt(ctx context.Context, court string) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&QueryLog{}).
		Where("court = ?", court).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count query logs for %s: %w", court, err)
	}
	return total, nil
}

// Recent returns up to limit rows, newest first.
func (s *LogStore) Recent(ctx context.Context, limit int) ([]QueryLog, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	var logs []QueryLog
	if err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent query logs: %w", err)
	}
	return logs, nil
}

// Ping reports whether the database answers.
func (s *LogStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
