// Package gorm provides GORM-backed implementations of the storage
// interfaces in pkg/server/store.
//
// Cell-level atomicity on the permission matrix uses transaction-scoped
// advisory locks keyed by the (role, resource) pair, so concurrent cycles
// on one cell serialize while the rest of the matrix stays concurrent.
// Request updates use an optimistic version stamp checked in the UPDATE's
// WHERE clause.
package gorm
