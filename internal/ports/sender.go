package ports

import (
	"context"

	"github.com/tsload/tsload/internal/domain"
)

// ChunkSender transmits one chunk to its ingestion backend.
//
// Send always returns a SendResult: transport failures and non-success
// response statuses are captured in the result rather than aborting the
// caller, so one chunk's failure never blocks or cancels its siblings.
type ChunkSender interface {
	Send(ctx context.Context, chunk *domain.Chunk) domain.SendResult
}
