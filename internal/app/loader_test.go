package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tsload/tsload/internal/cliconfig"
	"github.com/tsload/tsload/internal/domain"
)

func writeInputFile(t *testing.T, lines int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		fmt.Fprintf(&sb, "cpu,host=h%d value=%d %d\n", i, i, 1700000000+i)
	}
	path := filepath.Join(t.TempDir(), "data.lp")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func runConfig(host, file string) cliconfig.Config {
	cfg := cliconfig.DefaultConfig()
	cfg.Host = host
	cfg.File = file
	cfg.Backend = "questdb"
	cfg.BackendKind = domain.BackendQuestDB
	cfg.ChunkSize = 3
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cfg := runConfig(ts.URL, writeInputFile(t, 10))
	rep, err := Run(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	// 10 lines at chunk size 3: chunks of 3, 3, 3, 1.
	if len(bodies) != 4 {
		t.Fatalf("got %d requests, want 4", len(bodies))
	}
	wantSizes := []int{3, 3, 3, 1}
	var total int
	for i, body := range bodies {
		lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
		// One worker: request order matches chunk order.
		if len(lines) != wantSizes[i] {
			t.Errorf("request %d has %d lines, want %d", i, len(lines), wantSizes[i])
		}
		total += len(lines)
	}
	if total != 10 {
		t.Errorf("sent %d lines in total, want 10", total)
	}

	if rep.TotalRows != 10 {
		t.Errorf("TotalRows = %d, want 10", rep.TotalRows)
	}
	if rep.ChunksSent != 4 || rep.ChunksOK != 4 || rep.ChunksFailed != 0 {
		t.Errorf("chunk counts = %d/%d/%d, want 4/4/0", rep.ChunksSent, rep.ChunksOK, rep.ChunksFailed)
	}
	if rep.WallTime <= 0 {
		t.Error("WallTime not measured")
	}
}

func TestRunOmitTimestamp(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cfg := runConfig(ts.URL, writeInputFile(t, 2))
	cfg.OmitTimestamp = true
	if _, err := Run(context.Background(), cfg, zerolog.Nop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 1 {
		t.Fatalf("got %d requests, want 1", len(bodies))
	}
	for _, line := range strings.Split(strings.TrimSuffix(bodies[0], "\n"), "\n") {
		if strings.Contains(line, "1700000") {
			t.Errorf("timestamp not stripped from %q", line)
		}
		if !strings.Contains(line, "value=") {
			t.Errorf("line over-stripped: %q", line)
		}
	}
}

func TestRunPartialFailure(t *testing.T) {
	var mu sync.Mutex
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cfg := runConfig(ts.URL, writeInputFile(t, 10))
	rep, err := Run(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Failed chunks still count attempted rows; the run never aborts.
	if rep.TotalRows != 10 {
		t.Errorf("TotalRows = %d, want 10", rep.TotalRows)
	}
	if rep.ChunksOK != 3 || rep.ChunksFailed != 1 {
		t.Errorf("chunk counts = %d ok/%d failed, want 3/1", rep.ChunksOK, rep.ChunksFailed)
	}
}

func TestRunMissingFileIsFatal(t *testing.T) {
	cfg := runConfig("http://127.0.0.1:1", filepath.Join(t.TempDir(), "missing.lp"))
	if _, err := Run(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected fatal error for unreadable input file")
	}
}

func TestRunEmptyFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty input")
	}))
	defer ts.Close()

	cfg := runConfig(ts.URL, writeInputFile(t, 0))
	rep, err := Run(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TotalRows != 0 || rep.ChunksSent != 0 {
		t.Errorf("empty input produced report %+v", rep)
	}
}

func TestRunParallelWorkers(t *testing.T) {
	var mu sync.Mutex
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cfg := runConfig(ts.URL, writeInputFile(t, 30))
	cfg.Workers = 4
	rep, err := Run(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	mu.Lock()
	got := calls
	mu.Unlock()
	if got != 10 {
		t.Errorf("got %d requests, want 10", got)
	}
	if rep.TotalRows != 30 {
		t.Errorf("TotalRows = %d, want 30", rep.TotalRows)
	}
}
