package store

import "github.com/prabaj-wq/accessgov/pkg/model"

// CatalogStore abstracts role and resource lifecycle operations
type CatalogStore interface {
	// CreateRole creates a role
	CreateRole(role model.Role) error

	// FetchRole retrieves a role by id
	FetchRole(roleID string) (*model.Role, error)

	// ListRoles returns all roles ordered by id
	ListRoles() ([]model.Role, error)

	// UpdateRole renames and/or reclassifies a role
	UpdateRole(roleID, name string, classification model.Classification) error

	// DeleteRole removes a role. Without cascade it fails with a
	// ConflictError while active grants still reference the role; with
	// cascade the grants are revoked in the same transaction.
	DeleteRole(roleID string, cascade bool) error

	// RoleExists checks if a role exists
	RoleExists(roleID string) bool

	// CreateResource creates a resource
	CreateResource(resource model.Resource) error

	// FetchResource retrieves a resource by id
	FetchResource(resourceID string) (*model.Resource, error)

	// ListResources returns all resources ordered by id
	ListResources() ([]model.Resource, error)

	// ResourceExists checks if a resource exists
	ResourceExists(resourceID string) bool

	// RetireResource removes a resource. Fails with a ConflictError while
	// grants still reference it.
	RetireResource(resourceID string) error
}
