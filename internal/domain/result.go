package domain

import "time"

// SendResult is the outcome of sending one chunk. Failed sends still carry
// the attempted row count and the latency observed before the failure.
type SendResult struct {
	// Seq is the sequence number of the chunk this result belongs to.
	Seq int

	// Rows is the number of lines the send attempted to ingest.
	Rows int

	// Bytes is the size of the request body in bytes.
	Bytes int

	// Duration is the wall-clock time of the HTTP round trip only.
	Duration time.Duration

	// StatusCode is the HTTP response status, or zero when the request
	// never produced a response.
	StatusCode int

	// Err holds the transport or application error, nil on success.
	Err error
}

// OK reports whether the chunk was accepted by the backend.
func (r SendResult) OK() bool {
	return r.Err == nil
}
