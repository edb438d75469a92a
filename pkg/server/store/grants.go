package store

import "github.com/prabaj-wq/accessgov/pkg/model"

// GrantsStore abstracts the sparse permission matrix.
//
// Cell writes on the same (roleID, resourceID) pair are linearizable: two
// concurrent cycles never both advance from the same prior level.
type GrantsStore interface {
	// SetGrant replaces or removes the grant for a (role, resource) pair.
	// LevelNone removes the stored row.
	SetGrant(roleID, resourceID string, level model.Level) error

	// CycleGrant atomically advances a cell through
	// none -> read -> write -> none and returns the new level.
	CycleGrant(roleID, resourceID string) (model.Level, error)

	// EffectiveLevel returns the stored level for a pair, or LevelNone for
	// any pair with no row.
	EffectiveLevel(roleID, resourceID string) (model.Level, error)

	// BulkApply sets the same level across the cross-product of roles and
	// resources. All-or-nothing: if any id is unknown, no write is visible.
	BulkApply(roleIDs, resourceIDs []string, level model.Level) error

	// Matrix returns a snapshot of every stored grant
	Matrix() ([]model.PermissionGrant, error)
}
