// Package fetch retrieves raw source content: web pages over HTTP and local
// documents from disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type PageFetcher struct {
	client *http.Client
	logger *logger_i.Logger
}

// NewPageFetcher builds a fetcher with a pooled transport so repeated
// ingestion runs reuse connections to the same hosts. Every fetch is bounded
// by config.FetchTimeout.
func NewPageFetcher() *PageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
	}
	return &PageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.FetchTimeout,
		},
		logger: logger_i.NewLogger("Fetcher"),
	}
}

// Fetch returns the raw content for a source. URLs with an http(s) scheme are
// requested over the network; anything else is treated as a local document
// path and extracted from disk.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return f.fetchLocal(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body of %s: %w", url, err)
	}
	f.logger.Debug("Fetched page", "url", url, "bytes", len(body))
	return string(body), nil
}

func (f *PageFetcher) fetchLocal(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDF(path, f.logger)
	case ".docx", ".txt", ".rtf", ".odt":
		return extractDocument(path)
	default:
		return "", fmt.Errorf("unsupported local source type: %s", path)
	}
}
