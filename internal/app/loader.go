// Package app wires the ingestion pipeline: input file through chunker,
// dispatcher, and aggregator.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	httpadapter "github.com/tsload/tsload/internal/adapters/http"
	"github.com/tsload/tsload/internal/chunk"
	"github.com/tsload/tsload/internal/cliconfig"
	"github.com/tsload/tsload/internal/dispatch"
	"github.com/tsload/tsload/internal/report"
)

// Run executes one full ingestion run: read and chunk the input file, send
// every chunk across the worker pool, and return the aggregated report.
//
// File and configuration errors are fatal and returned before any network
// activity; per-chunk send failures are contained in the report.
func Run(ctx context.Context, cfg cliconfig.Config, logger zerolog.Logger) (report.Report, error) {
	f, err := os.Open(cfg.File)
	if err != nil {
		return report.Report{}, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	opts := []chunk.Option{chunk.WithTarget(cfg.Host, cfg.BackendKind)}
	if cfg.OmitTimestamp {
		opts = append(opts, chunk.WithTransform(chunk.DropLastToken))
	}
	chunker, err := chunk.New(f, cfg.ChunkSize, opts...)
	if err != nil {
		return report.Report{}, err
	}

	logger.Info().Str("file", cfg.File).Int("chunk_size", cfg.ChunkSize).Msg("dividing the file in chunks")
	chunks, err := chunker.ReadAll()
	if err != nil {
		return report.Report{}, err
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	sender := httpadapter.NewChunkSender(client, logger)
	dispatcher, err := dispatch.New(sender, cfg.Workers, dispatch.WithMaxRPS(cfg.MaxRPS))
	if err != nil {
		return report.Report{}, err
	}

	logger.Info().
		Int("chunks", len(chunks)).
		Int("workers", cfg.Workers).
		Str("backend", cfg.BackendKind.String()).
		Msg("dispatching")

	// Wall clock spans pool creation through pool join.
	start := time.Now()
	results := dispatcher.Run(ctx, chunks)
	wall := time.Since(start)

	agg := report.NewAggregator()
	for _, result := range results {
		agg.Add(result)
	}
	return agg.Finalize(wall), nil
}
