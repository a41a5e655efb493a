// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// The application core (chunking, dispatch, aggregation) depends only on
// these interfaces; concrete implementations live in internal/adapters.
//
// # Port Interfaces
//
//   - [ChunkSender]: Sends one chunk to an ingestion backend
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// This separation keeps the dispatcher testable with in-memory senders and
// avoids any hidden process-wide client state: the transport handle is
// constructed once and injected explicitly.
package ports
