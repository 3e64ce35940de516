package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/JustJay7/ecourts-case-lookup/internal/database"
	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
)

var (
	ErrUnsupportedCourt = errors.New("unsupported court")
	ErrMissingField     = errors.New("missing required field")
)

// HearingYear is the calendar year every synthesized next-hearing date falls in.
const HearingYear = 2025

// CaseQuery represents a case search query
type CaseQuery struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	CaseYear   string `json:"case_year"`
}

// Validate reports the first empty field.
func (q CaseQuery) Validate() error {
	switch {
	case strings.TrimSpace(q.CaseType) == "":
		return fmt.Errorf("%w: case type", ErrMissingField)
	case strings.TrimSpace(q.CaseNumber) == "":
		return fmt.Errorf("%w: case number", ErrMissingField)
	case strings.TrimSpace(q.CaseYear) == "":
		return fmt.Errorf("%w: case year", ErrMissingField)
	}
	return nil
}

// CaseMetadata describes one case. It is never persisted structurally.
type CaseMetadata struct {
	Court       string    `json:"court"`
	CaseType    string    `json:"case_type"`
	CaseNumber  string    `json:"case_number"`
	CaseYear    string    `json:"case_year"`
	Parties     string    `json:"parties"`
	FilingDate  time.Time `json:"filing_date"`
	NextHearing time.Time `json:"next_hearing"`
	Status      string    `json:"status"`
}

// Order is one court order and its document link.
type Order struct {
	Date        time.Time `json:"date"`
	Description string    `json:"order"`
	PDFURL      string    `json:"pdf_url"`
}

// CaseResult is what a provider yields for a successful lookup.
type CaseResult struct {
	Metadata CaseMetadata `json:"metadata"`
	Orders   []Order      `json:"orders"`
	LogID    uint         `json:"log_id"`
}

// Provider yields case data for a single court.
type Provider interface {
	Court() Court
	Lookup(ctx context.Context, query CaseQuery) (*CaseResult, error)
}

// Recorder appends query log rows.
type Recorder interface {
	Append(ctx context.Context, entry database.LogEntry) (*database.QueryLog, error)
}

// MockProvider synthesizes case data from the court's catalogs.
type MockProvider struct {
	court    Court
	recorder Recorder
	logger   *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProvider creates a provider for court. rng must not be shared with
// other goroutines.
func NewMockProvider(court Court, recorder Recorder, rng *rand.Rand, logger *logger.Logger) *MockProvider {
	return &MockProvider{
		court:    court,
		recorder: recorder,
		logger:   logger,
		rng:      rng,
	}
}

func (p *MockProvider) Court() Court {
	return p.court
}

// Lookup synthesizes a result and appends exactly one log row on success.
func (p *MockProvider) Lookup(ctx context.Context, query CaseQuery) (*CaseResult, error) {
	result, err := p.lookup(ctx, query)
	if err != nil {
		p.logger.Error("Case lookup failed",
			"court", p.court.Key,
			"case_type", query.CaseType,
			"case_number", query.CaseNumber,
			"case_year", query.CaseYear,
			"error", err,
		)
		return nil, fmt.Errorf("error fetching %s data: %w", p.court.Name, err)
	}
	return result, nil
}

func (p *MockProvider) lookup(ctx context.Context, query CaseQuery) (*CaseResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.court.Parties) == 0 || len(p.court.Statuses) == 0 {
		return nil, fmt.Errorf("court %s has an empty catalog", p.court.Key)
	}
	if p.court.MaxYear < p.court.MinYear {
		return nil, fmt.Errorf("court %s has an invalid year range %d-%d", p.court.Key, p.court.MinYear, p.court.MaxYear)
	}

	p.mu.Lock()
	parties := p.court.Parties[p.rng.Intn(len(p.court.Parties))]
	filingYear := p.court.MinYear + p.rng.Intn(p.court.MaxYear-p.court.MinYear+1)
	filingMonth := time.Month(1 + p.rng.Intn(12))
	filingDay := 1 + p.rng.Intn(28)
	hearingMonth := time.Month(1 + p.rng.Intn(12))
	status := p.court.Statuses[p.rng.Intn(len(p.court.Statuses))]
	p.mu.Unlock()

	metadata := CaseMetadata{
		Court:       p.court.Name,
		CaseType:    query.CaseType,
		CaseNumber:  query.CaseNumber,
		CaseYear:    query.CaseYear,
		Parties:     parties,
		FilingDate:  time.Date(filingYear, filingMonth, filingDay, 0, 0, 0, 0, time.UTC),
		NextHearing: time.Date(HearingYear, hearingMonth, filingDay, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}

	record, err := p.recorder.Append(ctx, database.LogEntry{
		Court:      p.court.Name,
		CaseType:   query.CaseType,
		CaseNumber: query.CaseNumber,
		CaseYear:   query.CaseYear,
		RawHTML:    RenderSnapshot(parties),
	})
	if err != nil {
		return nil, err
	}

	orders := make([]Order, len(p.court.Orders))
	copy(orders, p.court.Orders)

	p.logger.Debug("Synthesized case data",
		"court", p.court.Key,
		"log_id", record.ID,
		"status", status,
	)

	return &CaseResult{
		Metadata: metadata,
		Orders:   orders,
		LogID:    record.ID,
	}, nil
}

// Registry maps court keys to providers.
type Registry struct {
	providers map[string]Provider
	order     []string
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		key := p.Court().Key
		if _, exists := r.providers[key]; !exists {
			r.order = append(r.order, key)
		}
		r.providers[key] = p
	}
	return r
}

// NewMockRegistry wires a mock provider for every supported court.
func NewMockRegistry(recorder Recorder, seed int64, logger *logger.Logger) *Registry {
	courts := Courts()
	providers := make([]Provider, 0, len(courts))
	for i, court := range courts {
		rng := rand.New(rand.NewSource(seed + int64(i)))
		providers = append(providers, NewMockProvider(court, recorder, rng, logger))
	}
	return NewRegistry(providers...)
}

// Resolve returns the provider for a court key.
func (r *Registry) Resolve(key string) (Provider, error) {
	if p, ok := r.providers[key]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCourt, key)
}

// Courts lists the registered courts in registration order.
func (r *Registry) Courts() []Court {
	courts := make([]Court, 0, len(r.order))
	for _, key := range r.order {
		courts = append(courts, r.providers[key].Court())
	}
	return courts
}
