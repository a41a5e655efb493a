// Package dispatch runs chunk sends across a bounded pool of workers.
package dispatch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/tsload/tsload/internal/domain"
	"github.com/tsload/tsload/internal/ports"
)

// Dispatcher spreads chunks across a fixed number of workers draining a
// shared queue. Dynamic assignment keeps slow chunks from starving workers;
// with one worker it degenerates to strictly sequential processing in
// submission order.
type Dispatcher struct {
	sender  ports.ChunkSender
	workers int
	limiter *rate.Limiter
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithMaxRPS caps the request rate across all workers. Zero means no limit.
func WithMaxRPS(maxRPS int) Option {
	return func(d *Dispatcher) {
		if maxRPS > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(maxRPS), d.workers)
		}
	}
}

// New creates a dispatcher with the given worker count. A count below one
// is a configuration error.
func New(sender ports.ChunkSender, workers int, opts ...Option) (*Dispatcher, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", domain.ErrWorkerCount, workers)
	}
	d := &Dispatcher{
		sender:  sender,
		workers: workers,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Run sends every chunk and returns once all of them have a result. Exactly
// one SendResult is produced per chunk; result order is not related to
// submission order. Per-chunk failures are carried in the results, never
// propagated, so a full run always attempts every chunk.
func (d *Dispatcher) Run(ctx context.Context, chunks []*domain.Chunk) []domain.SendResult {
	queue := make(chan *domain.Chunk)
	results := make(chan domain.SendResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < d.workers; i++ {
		wg.Add(1)
		go d.work(ctx, &wg, queue, results)
	}

	for _, chunk := range chunks {
		queue <- chunk
	}
	close(queue)
	wg.Wait()
	close(results)

	out := make([]domain.SendResult, 0, len(chunks))
	for result := range results {
		out = append(out, result)
	}
	return out
}

// work drains the queue until it is closed, sending one chunk at a time.
func (d *Dispatcher) work(ctx context.Context, wg *sync.WaitGroup, queue <-chan *domain.Chunk, results chan<- domain.SendResult) {
	defer wg.Done()
	for chunk := range queue {
		if d.limiter != nil {
			if err := d.limiter.Wait(ctx); err != nil {
				results <- domain.SendResult{
					Seq:  chunk.Seq,
					Rows: chunk.Rows(),
					Err:  fmt.Errorf("rate limit wait: %w", err),
				}
				continue
			}
		}
		results <- d.sender.Send(ctx, chunk)
	}
}
