package memory

import (
	"sort"
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// CreateRole creates a role
func (s *Store) CreateRole(role model.Role) error {
	if role.RoleID == "" {
		return &store.ValidationError{Field: "role id", Reason: "required"}
	}
	if !role.Classification.Valid() {
		return &store.ValidationError{Field: "classification", Reason: "must be one of elevated, standard, view-only"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[role.RoleID]; ok {
		return &store.ConflictError{Kind: "role", ID: role.RoleID}
	}
	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now()
	}
	s.roles[role.RoleID] = role
	return nil
}

// FetchRole retrieves a role by id
func (s *Store) FetchRole(roleID string) (*model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	role, ok := s.roles[roleID]
	if !ok {
		return nil, &store.NotFoundError{Kind: "role", ID: roleID}
	}
	return &role, nil
}

// ListRoles returns all roles ordered by id
func (s *Store) ListRoles() ([]model.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roles := make([]model.Role, 0, len(s.roles))
	for _, role := range s.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].RoleID < roles[j].RoleID })
	return roles, nil
}

// UpdateRole renames and/or reclassifies a role
func (s *Store) UpdateRole(roleID, name string, classification model.Classification) error {
	if !classification.Valid() {
		return &store.ValidationError{Field: "classification", Reason: "must be one of elevated, standard, view-only"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.roles[roleID]
	if !ok {
		return &store.NotFoundError{Kind: "role", ID: roleID}
	}
	role.Name = name
	role.Classification = classification
	s.roles[roleID] = role
	return nil
}

// DeleteRole removes a role. Without cascade the delete is refused while
// active grants reference the role; with cascade the grants go too.
func (s *Store) DeleteRole(roleID string, cascade bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roles[roleID]; !ok {
		return &store.NotFoundError{Kind: "role", ID: roleID}
	}

	var cells []cellKey
	for key := range s.grants {
		if key.roleID == roleID {
			cells = append(cells, key)
		}
	}
	if len(cells) > 0 && !cascade {
		return &store.ConflictError{Kind: "role", ID: roleID}
	}
	for _, key := range cells {
		delete(s.grants, key)
	}
	delete(s.roles, roleID)
	return nil
}

// RoleExists checks if a role exists
func (s *Store) RoleExists(roleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[roleID]
	return ok
}

// CreateResource creates a resource
func (s *Store) CreateResource(resource model.Resource) error {
	if resource.ResourceID == "" {
		return &store.ValidationError{Field: "resource id", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[resource.ResourceID]; ok {
		return &store.ConflictError{Kind: "resource", ID: resource.ResourceID}
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}
	s.resources[resource.ResourceID] = resource
	return nil
}

// FetchResource retrieves a resource by id
func (s *Store) FetchResource(resourceID string) (*model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.resources[resourceID]
	if !ok {
		return nil, &store.NotFoundError{Kind: "resource", ID: resourceID}
	}
	return &resource, nil
}

// ListResources returns all resources ordered by id
func (s *Store) ListResources() ([]model.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resources := make([]model.Resource, 0, len(s.resources))
	for _, resource := range s.resources {
		resources = append(resources, resource)
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].ResourceID < resources[j].ResourceID })
	return resources, nil
}

// ResourceExists checks if a resource exists
func (s *Store) ResourceExists(resourceID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.resources[resourceID]
	return ok
}

// RetireResource removes a resource once nothing references it
func (s *Store) RetireResource(resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resources[resourceID]; !ok {
		return &store.NotFoundError{Kind: "resource", ID: resourceID}
	}
	for key := range s.grants {
		if key.resourceID == resourceID {
			return &store.ConflictError{Kind: "resource", ID: resourceID}
		}
	}
	delete(s.resources, resourceID)
	return nil
}
