package domain

import "strings"

// Chunk is an ordered group of consecutive input lines sent as one write
// request, together with the destination it is bound for. A chunk is created
// once by the chunker, consumed exactly once by a sender, and never mutated
// after creation.
type Chunk struct {
	// Seq is the zero-based position of the chunk in the input file.
	Seq int

	// Lines holds the chunk's rows in original file order.
	Lines []string

	// Host is the base URL of the target ingestion service.
	Host string

	// Backend selects the wire convention used to send the chunk.
	Backend Backend
}

// Rows returns the number of lines in the chunk.
func (c *Chunk) Rows() int {
	return len(c.Lines)
}

// Body serializes the chunk to its wire form: lines joined by newlines with
// a single trailing newline.
func (c *Chunk) Body() []byte {
	if len(c.Lines) == 0 {
		return nil
	}
	return []byte(strings.Join(c.Lines, "\n") + "\n")
}

// URL returns the resolved write endpoint for the chunk's destination.
func (c *Chunk) URL() string {
	return c.Backend.WriteURL(c.Host)
}
