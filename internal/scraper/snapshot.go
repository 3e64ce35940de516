package scraper

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrNoHeadline = errors.New("snapshot has no headline")

// RenderSnapshot builds the raw page stored alongside each query log.
func RenderSnapshot(parties string) string {
	return fmt.Sprintf("<html><body><h1>%s</h1></body></html>", html.EscapeString(parties))
}

// SnapshotHeadline reads the party line back out of a stored snapshot.
func SnapshotHeadline(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse snapshot: %w", err)
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return "", ErrNoHeadline
	}
	return strings.TrimSpace(h1.Text()), nil
}
