// Package report accumulates per-chunk send results into a run summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"code.cloudfoundry.org/bytefmt"
	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"

	"github.com/tsload/tsload/internal/domain"
)

// Report is the final summary of a run. Total rows count attempted rows:
// failed chunks still contribute their row count, so the total measures
// throughput of attempts. The OK/failed chunk split is reported separately.
type Report struct {
	TotalRows    int   `json:"total_rows"`
	ChunksSent   int   `json:"chunks_sent"`
	ChunksOK     int   `json:"chunks_ok"`
	ChunksFailed int   `json:"chunks_failed"`
	TxBytes      int64 `json:"tx_bytes"`

	// RequestTime sums individual request durations; under concurrency it
	// may exceed WallTime, the elapsed real time of the dispatch phase.
	RequestTime time.Duration `json:"-"`
	WallTime    time.Duration `json:"-"`

	RequestTimeSeconds float64 `json:"request_time_seconds"`
	WallTimeSeconds    float64 `json:"wall_time_seconds"`

	// LatencyQuantilesMs holds per-request latency quantiles in
	// milliseconds (keys q50, q95, q99).
	LatencyQuantilesMs map[string]float64 `json:"latency_quantiles_ms"`
}

// Aggregator builds a Report incrementally as send results arrive. Results
// may be added in any order; the aggregator never reacts to failures.
type Aggregator struct {
	hist        *hdrhistogram.Histogram
	totalRows   int
	chunksOK    int
	chunksBad   int
	txBytes     int64
	requestTime time.Duration
}

// NewAggregator creates an empty aggregator. Latencies are tracked in
// microseconds from 1us to 10min at three significant figures.
func NewAggregator() *Aggregator {
	return &Aggregator{
		hist: hdrhistogram.New(1, int64(10*time.Minute/time.Microsecond), 3),
	}
}

// Add folds one send result into the running totals.
func (a *Aggregator) Add(result domain.SendResult) {
	a.totalRows += result.Rows
	a.txBytes += int64(result.Bytes)
	a.requestTime += result.Duration
	if result.OK() {
		a.chunksOK++
	} else {
		a.chunksBad++
	}
	_ = a.hist.RecordValue(result.Duration.Microseconds())
}

// Finalize produces the report. wall is the elapsed real time of the whole
// dispatch phase, measured by the caller from pool creation to pool join.
func (a *Aggregator) Finalize(wall time.Duration) Report {
	quantiles := map[string]float64{}
	if a.hist.TotalCount() > 0 {
		for _, q := range []float64{50, 95, 99} {
			quantiles[fmt.Sprintf("q%.0f", q)] = float64(a.hist.ValueAtQuantile(q)) / 1e3
		}
	}
	return Report{
		TotalRows:          a.totalRows,
		ChunksSent:         a.chunksOK + a.chunksBad,
		ChunksOK:           a.chunksOK,
		ChunksFailed:       a.chunksBad,
		TxBytes:            a.txBytes,
		RequestTime:        a.requestTime,
		WallTime:           wall,
		RequestTimeSeconds: a.requestTime.Seconds(),
		WallTimeSeconds:    wall.Seconds(),
		LatencyQuantilesMs: quantiles,
	}
}

// WriteSummary prints the human-readable run summary.
func (r Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nTotal rows ingested: %d (%d chunks ok, %d failed)\n", r.TotalRows, r.ChunksOK, r.ChunksFailed)
	fmt.Fprintf(w, "Total request time (sum of all HTTP requests): %.3f seconds\n", r.RequestTime.Seconds())
	fmt.Fprintf(w, "Total wall time for sending requests: %.3f seconds\n", r.WallTime.Seconds())
	if len(r.LatencyQuantilesMs) > 0 {
		fmt.Fprintf(w, "Request latency: q50 %.3f ms, q95 %.3f ms, q99 %.3f ms\n",
			r.LatencyQuantilesMs["q50"], r.LatencyQuantilesMs["q95"], r.LatencyQuantilesMs["q99"])
	}
	if r.WallTime > 0 {
		rate := uint64(float64(r.TxBytes) / r.WallTime.Seconds())
		fmt.Fprintf(w, "Sent %sB (%sB/sec)\n", bytefmt.ByteSize(uint64(r.TxBytes)), bytefmt.ByteSize(rate))
	}
}

// WriteJSON writes the report as indented JSON to the given path.
func (r Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", " ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
