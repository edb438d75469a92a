// Package store provides storage abstractions for the governance server.
//
// This package defines interfaces for the persistence operations of the
// access-governance core, allowing the engines and endpoints to be
// decoupled from the specific backend. Two implementations exist: a
// PostgreSQL-backed one (subpackage gorm) and an in-memory one (subpackage
// memory) used for single-process deployments and tests.
//
// # Available Stores
//
//   - CatalogStore: Role and resource lifecycle
//   - GrantsStore: The sparse permission matrix with atomic cell updates
//   - RequestsStore: Access requests, chains and assessments, versioned
//   - ViolationsStore: Compliance violation input records
//   - MetricsStore: Derived per-framework compliance metrics
//   - HealthStore: Backend liveness
//
// # Errors
//
// Stores and the engines built on them report failures through the typed
// errors in this package (NotFoundError, ValidationError, ConflictError,
// OutOfOrderError, StateTransitionError). Callers match them with
// errors.As and receive enough structure (kind plus offending id) to
// render a specific message.
package store
