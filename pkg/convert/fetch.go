package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodySize bounds a fetched page.
const MaxBodySize = 10 * 1024 * 1024

// Fetch downloads a page for HarvestHTML.
func Fetch(ctx context.Context, client *http.Client, pageURL string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Some news sites reject requests without browser-like headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.9,en;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}
	if resp.ContentLength > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: content length %d exceeds %d bytes", pageURL, resp.ContentLength, MaxBodySize)
	}
	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", pageURL, MaxBodySize)
	}
	return body, nil
}
