package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tsload/tsload/internal/domain"
	"github.com/tsload/tsload/internal/ports"
)

// QueryClient is the thin read path: it issues a single SQL query against
// the backend's query endpoint and hands back the raw response body.
type QueryClient struct {
	client ports.HTTPClient
}

// NewQueryClient creates a new query client.
func NewQueryClient(client ports.HTTPClient) *QueryClient {
	return &QueryClient{client: client}
}

// Query runs one SQL statement against the backend and returns the response
// body verbatim. Unlike the write path, errors here are fatal to the caller.
func (q *QueryClient) Query(ctx context.Context, host string, backend domain.Backend, sql string) ([]byte, error) {
	url := backend.QueryURL(host, sql)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
