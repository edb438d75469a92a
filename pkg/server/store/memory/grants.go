package memory

import (
	"sort"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// SetGrant replaces or removes the grant for a (role, resource) pair.
// LevelNone deletes the cell so the matrix stays sparse.
func (s *Store) SetGrant(roleID, resourceID string, level model.Level) error {
	if !level.IsALevel() {
		return &store.ValidationError{Field: "level", Reason: "must be one of none, read, write"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return &store.NotFoundError{Kind: "role", ID: roleID}
	}
	if _, ok := s.resources[resourceID]; !ok {
		return &store.NotFoundError{Kind: "resource", ID: resourceID}
	}

	key := cellKey{roleID, resourceID}
	if level == model.LevelNone {
		delete(s.grants, key)
	} else {
		s.grants[key] = level
	}
	return nil
}

// CycleGrant atomically advances a cell through none -> read -> write ->
// none and returns the new level.
func (s *Store) CycleGrant(roleID, resourceID string) (model.Level, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return model.LevelNone, &store.NotFoundError{Kind: "role", ID: roleID}
	}
	if _, ok := s.resources[resourceID]; !ok {
		return model.LevelNone, &store.NotFoundError{Kind: "resource", ID: resourceID}
	}

	key := cellKey{roleID, resourceID}
	next := s.grants[key].Next()
	if next == model.LevelNone {
		delete(s.grants, key)
	} else {
		s.grants[key] = next
	}
	return next, nil
}

// EffectiveLevel returns the stored level for a pair, or LevelNone for any
// pair with no cell.
func (s *Store) EffectiveLevel(roleID, resourceID string) (model.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants[cellKey{roleID, resourceID}], nil
}

// BulkApply sets one level across the cross-product of roles and
// resources. All ids are validated before any cell is written.
func (s *Store) BulkApply(roleIDs, resourceIDs []string, level model.Level) error {
	if !level.IsALevel() {
		return &store.ValidationError{Field: "level", Reason: "must be one of none, read, write"}
	}
	if len(roleIDs) == 0 || len(resourceIDs) == 0 {
		return &store.ValidationError{Field: "bulk apply", Reason: "at least one role and one resource required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, roleID := range roleIDs {
		if _, ok := s.roles[roleID]; !ok {
			return &store.NotFoundError{Kind: "role", ID: roleID}
		}
	}
	for _, resourceID := range resourceIDs {
		if _, ok := s.resources[resourceID]; !ok {
			return &store.NotFoundError{Kind: "resource", ID: resourceID}
		}
	}

	for _, roleID := range roleIDs {
		for _, resourceID := range resourceIDs {
			key := cellKey{roleID, resourceID}
			if level == model.LevelNone {
				delete(s.grants, key)
			} else {
				s.grants[key] = level
			}
		}
	}
	return nil
}

// Matrix returns a snapshot of every stored grant
func (s *Store) Matrix() ([]model.PermissionGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grants := make([]model.PermissionGrant, 0, len(s.grants))
	for key, level := range s.grants {
		grants = append(grants, model.PermissionGrant{
			RoleID:     key.roleID,
			ResourceID: key.resourceID,
			Level:      level,
		})
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].RoleID != grants[j].RoleID {
			return grants[i].RoleID < grants[j].RoleID
		}
		return grants[i].ResourceID < grants[j].ResourceID
	})
	return grants, nil
}
