package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
)

var ErrBadStatus = errors.New("bad status")

// PDFDocument is an open remote document. Callers must close Body.
type PDFDocument struct {
	Body          io.ReadCloser
	ContentLength int64
}

// PDFFetcher retrieves remote order documents for the proxy.
type PDFFetcher struct {
	client    *http.Client
	userAgent string
	logger    *logger.Logger
}

// NewPDFFetcher creates a fetcher. A zero timeout means no client timeout;
// the request context still bounds the call.
func NewPDFFetcher(timeout time.Duration, userAgent string, logger *logger.Logger) *PDFFetcher {
	return &PDFFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		logger:    logger,
	}
}

// DecodePDFURL undoes the extra percent-encoding the result page applies to
// document links. A literal '+' is kept. Values that do not decode are used
// as given.
func DecodePDFURL(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// Fetch opens the document at rawURL. Non-2xx responses are errors.
func (f *PDFFetcher) Fetch(ctx context.Context, rawURL string) (*PDFDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s for url: %s", ErrBadStatus, resp.Status, rawURL)
	}

	f.logger.Debug("PDF fetch started streaming",
		"url", rawURL,
		"status", resp.StatusCode,
		"size", resp.ContentLength,
		"latency", time.Since(start).String(),
	)

	return &PDFDocument{
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}
