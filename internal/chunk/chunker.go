package chunk

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tsload/tsload/internal/domain"
)

// maxLineBytes bounds a single input line. Line protocol rows are short;
// anything beyond this indicates a malformed file.
const maxLineBytes = 1 << 20

// Chunker lazily splits an ordered stream of lines into fixed-size chunks.
// Concatenating all produced chunks reproduces the input line sequence
// exactly; only the final chunk may hold fewer than size lines. The input
// is read incrementally, so the whole file is never held in memory.
type Chunker struct {
	scanner   *bufio.Scanner
	size      int
	seq       int
	host      string
	backend   domain.Backend
	transform Transform
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithTransform applies a per-line transform during chunk assembly.
func WithTransform(t Transform) Option {
	return func(c *Chunker) {
		c.transform = t
	}
}

// WithTarget stamps produced chunks with their destination host and backend.
func WithTarget(host string, backend domain.Backend) Option {
	return func(c *Chunker) {
		c.host = host
		c.backend = backend
	}
}

// New creates a Chunker over r producing chunks of at most size lines.
// A non-positive size is a configuration error.
func New(r io.Reader, size int, opts ...Option) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrChunkSize, size)
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineBytes)
	c := &Chunker{scanner: s, size: size}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Next returns the next chunk in file order, or io.EOF once the input is
// exhausted. A read error from the underlying source is returned as-is.
func (c *Chunker) Next() (*domain.Chunk, error) {
	lines := make([]string, 0, c.size)
	for len(lines) < c.size && c.scanner.Scan() {
		line := c.scanner.Text()
		if c.transform != nil {
			line = c.transform(line)
		}
		lines = append(lines, line)
	}
	if err := c.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(lines) == 0 {
		return nil, io.EOF
	}
	chunk := &domain.Chunk{
		Seq:     c.seq,
		Lines:   lines,
		Host:    c.host,
		Backend: c.backend,
	}
	c.seq++
	return chunk, nil
}

// ReadAll drains the chunker into a slice. An empty input yields an empty
// slice, not an error.
func (c *Chunker) ReadAll() ([]*domain.Chunk, error) {
	var chunks []*domain.Chunk
	for {
		chunk, err := c.Next()
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
}
