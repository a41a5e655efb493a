package ports

import "net/http"

// HTTPClient abstracts the HTTP transport so senders can be exercised with
// mock clients in tests. The standard *http.Client satisfies this interface
// and is safe for concurrent use by multiple workers.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}
