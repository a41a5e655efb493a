package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tsload/tsload/internal/domain"
	"github.com/tsload/tsload/internal/ports"
)

// maxErrorBody caps how much of an error response body is kept for logging.
const maxErrorBody = 4 << 10

// ChunkSender implements ports.ChunkSender over HTTP. One POST per chunk,
// body in the backend's line protocol form. The injected client is shared
// by all workers.
type ChunkSender struct {
	client ports.HTTPClient
	logger zerolog.Logger
}

// NewChunkSender creates a new HTTP chunk sender.
func NewChunkSender(client ports.HTTPClient, logger zerolog.Logger) *ChunkSender {
	return &ChunkSender{
		client: client,
		logger: logger,
	}
}

// Send posts one chunk to its resolved write endpoint. The measured
// duration strictly bounds the HTTP round trip: request construction and
// chunk serialization happen before the clock starts. Failures of any kind
// are folded into the returned SendResult.
func (s *ChunkSender) Send(ctx context.Context, chunk *domain.Chunk) domain.SendResult {
	result := domain.SendResult{
		Seq:  chunk.Seq,
		Rows: chunk.Rows(),
	}

	body := chunk.Body()
	result.Bytes = len(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, chunk.URL(), bytes.NewReader(body))
	if err != nil {
		result.Err = fmt.Errorf("create request: %w", err)
		s.logFailure(result)
		return result
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	start := time.Now()
	resp, err := s.client.Do(req)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = fmt.Errorf("send request: %w", err)
		s.logFailure(result)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		result.Err = fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
		s.logFailure(result)
		return result
	}

	s.logger.Info().
		Int("chunk", result.Seq).
		Int("lines", result.Rows).
		Int("status", result.StatusCode).
		Dur("latency", result.Duration).
		Msg("chunk sent")
	return result
}

// logFailure emits the per-chunk progress line for a failed send. Latency
// is reported even on failure so slow errors are visible to the operator.
func (s *ChunkSender) logFailure(result domain.SendResult) {
	s.logger.Error().
		Int("chunk", result.Seq).
		Int("lines", result.Rows).
		Dur("latency", result.Duration).
		Err(result.Err).
		Msg("chunk failed")
}
