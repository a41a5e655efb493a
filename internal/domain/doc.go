// Package domain contains the core domain entities and value objects for tsload.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Backend]: A closed enumeration of supported ingestion backends
//   - [Chunk]: A bounded group of consecutive input lines sent as one write
//   - [SendResult]: The outcome of sending one chunk
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Focused on business rules and invariants
//   - Testable without mocks or external systems
package domain
