package gorm

import (
	"gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Ensure GrantsStore implements store.GrantsStore
var _ store.GrantsStore = (*GrantsStore)(nil)

// GrantsStore implements store.GrantsStore using GORM
type GrantsStore struct {
	db *gorm.DB
}

// NewGrantsStore creates a new GrantsStore
func NewGrantsStore(db *gorm.DB) *GrantsStore {
	return &GrantsStore{db: db}
}

// lockCell takes a transaction-scoped advisory lock on one matrix cell,
// serializing concurrent writers on the same (role, resource) pair.
func lockCell(tx *gorm.DB, roleID, resourceID string) error {
	return tx.Exec(`SELECT pg_advisory_xact_lock(hashtext(? || '/' || ?))`, roleID, resourceID).Error
}

// SetGrant replaces or removes the grant for a (role, resource) pair.
// LevelNone deletes the row so the matrix stays sparse.
func (s *GrantsStore) SetGrant(roleID, resourceID string, level model.Level) error {
	if !level.IsALevel() {
		return &store.ValidationError{Field: "level", Reason: "must be one of none, read, write"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if !roleExists(tx, roleID) {
			return &store.NotFoundError{Kind: "role", ID: roleID}
		}
		if !resourceExists(tx, resourceID) {
			return &store.NotFoundError{Kind: "resource", ID: resourceID}
		}
		if err := lockCell(tx, roleID, resourceID); err != nil {
			return err
		}
		return writeCell(tx, roleID, resourceID, level)
	})
}

func writeCell(tx *gorm.DB, roleID, resourceID string, level model.Level) error {
	if level == model.LevelNone {
		return tx.Exec(`DELETE FROM permission_grants WHERE role_id = ? AND resource_id = ?`,
			roleID, resourceID).Error
	}
	return tx.Exec(`
		INSERT INTO permission_grants (role_id, resource_id, level)
		VALUES (?, ?, ?)
		ON CONFLICT (role_id, resource_id) DO UPDATE SET level = EXCLUDED.level
	`, roleID, resourceID, level.String()).Error
}

// CycleGrant atomically advances a cell through none -> read -> write ->
// none and returns the new level.
func (s *GrantsStore) CycleGrant(roleID, resourceID string) (model.Level, error) {
	var next model.Level

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if !roleExists(tx, roleID) {
			return &store.NotFoundError{Kind: "role", ID: roleID}
		}
		if !resourceExists(tx, resourceID) {
			return &store.NotFoundError{Kind: "resource", ID: resourceID}
		}
		if err := lockCell(tx, roleID, resourceID); err != nil {
			return err
		}

		current, err := readCell(tx, roleID, resourceID)
		if err != nil {
			return err
		}
		next = current.Next()
		return writeCell(tx, roleID, resourceID, next)
	})
	if err != nil {
		return model.LevelNone, err
	}
	return next, nil
}

func readCell(tx *gorm.DB, roleID, resourceID string) (model.Level, error) {
	var rows []string
	if err := tx.Raw(`SELECT level FROM permission_grants WHERE role_id = ? AND resource_id = ?`,
		roleID, resourceID).Scan(&rows).Error; err != nil {
		return model.LevelNone, err
	}
	if len(rows) == 0 {
		return model.LevelNone, nil
	}
	return model.LevelString(rows[0])
}

// EffectiveLevel returns the stored level for a pair, or LevelNone for
// any pair with no row.
func (s *GrantsStore) EffectiveLevel(roleID, resourceID string) (model.Level, error) {
	return readCell(s.db, roleID, resourceID)
}

// BulkApply sets one level across the cross-product of roles and
// resources inside a single transaction: either every cell is written or
// none is.
func (s *GrantsStore) BulkApply(roleIDs, resourceIDs []string, level model.Level) error {
	if !level.IsALevel() {
		return &store.ValidationError{Field: "level", Reason: "must be one of none, read, write"}
	}
	if len(roleIDs) == 0 || len(resourceIDs) == 0 {
		return &store.ValidationError{Field: "bulk apply", Reason: "at least one role and one resource required"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Validate the whole cross-product before any write is attempted.
		for _, roleID := range roleIDs {
			if !roleExists(tx, roleID) {
				return &store.NotFoundError{Kind: "role", ID: roleID}
			}
		}
		for _, resourceID := range resourceIDs {
			if !resourceExists(tx, resourceID) {
				return &store.NotFoundError{Kind: "resource", ID: resourceID}
			}
		}

		for _, roleID := range roleIDs {
			for _, resourceID := range resourceIDs {
				if err := lockCell(tx, roleID, resourceID); err != nil {
					return err
				}
				if err := writeCell(tx, roleID, resourceID, level); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Matrix returns a snapshot of every stored grant
func (s *GrantsStore) Matrix() ([]model.PermissionGrant, error) {
	grants := []model.PermissionGrant{}
	if err := s.db.Order("role_id, resource_id").Find(&grants).Error; err != nil {
		return nil, err
	}
	return grants, nil
}
