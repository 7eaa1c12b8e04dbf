package feed

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient retrieves the raw bytes of a feed URL. wantCompression is set
// for the historic feed, which spec.md §6 asks callers to request with
// compression - the default implementation below turns that into an
// Accept-Encoding header and transparently decompresses a gzip response.
//
// This is the external collaborator spec.md calls "arbitrary; swappable":
// ecbrates ships a working default, but any HTTPClient implementation may be
// substituted via Orchestrator.Client.
type HTTPClient interface {
	Get(ctx context.Context, url string, wantCompression bool) ([]byte, error)
}

// DefaultHTTPClient is a thin net/http-backed HTTPClient.
type DefaultHTTPClient struct {
	Client *http.Client
}

// NewDefaultHTTPClient returns a DefaultHTTPClient with a sane timeout.
func NewDefaultHTTPClient() *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{Timeout: 30 * time.Second}}
}

// Get implements HTTPClient.
func (c *DefaultHTTPClient) Get(ctx context.Context, url string, wantCompression bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if wantCompression {
		req.Header.Set("Accept-Encoding", "gzip")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	body := resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("GET %s: gzip: %w", url, err)
		}
		defer gz.Close()
		body = io.NopCloser(gz)
	}

	return io.ReadAll(body)
}
