// Package enrich fetches a startup's public website and distills it into a
// short summary that the matching payload can carry alongside the stored
// profile fields.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxBodyBytes caps how much HTML is read from a startup site.
const maxBodyBytes = 1 << 20 // 1 MiB

// SiteSummary is the distilled content of a startup's landing page.
type SiteSummary struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Headings    []string `json:"headings,omitempty"`
}

// Fetcher retrieves and summarizes startup websites.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a bounded request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Summarize fetches rawURL and extracts title, meta description and the
// first few headings. The caller treats failure as non-fatal: matching
// proceeds without the summary.
func (f *Fetcher) Summarize(ctx context.Context, rawURL string) (*SiteSummary, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid website URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid website URL %q: scheme must be http or https", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u.String(), err)
	}

	summary, err := SummarizeHTML(string(body))
	if err != nil {
		return nil, err
	}
	summary.URL = u.String()
	return summary, nil
}

// SummarizeHTML extracts a SiteSummary from raw HTML.
func SummarizeHTML(htmlContent string) (*SiteSummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	summary := &SiteSummary{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		summary.Description = strings.TrimSpace(desc)
	}
	if summary.Description == "" {
		if desc, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
			summary.Description = strings.TrimSpace(desc)
		}
	}

	doc.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text != "" {
			summary.Headings = append(summary.Headings, text)
		}
		return len(summary.Headings) < 8
	})

	return summary, nil
}
