package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Ensure CatalogStore implements store.CatalogStore
var _ store.CatalogStore = (*CatalogStore)(nil)

// CatalogStore implements store.CatalogStore using GORM
type CatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// CreateRole creates a role
func (s *CatalogStore) CreateRole(role model.Role) error {
	if role.RoleID == "" {
		return &store.ValidationError{Field: "role id", Reason: "required"}
	}
	if !role.Classification.Valid() {
		return &store.ValidationError{Field: "classification", Reason: "must be one of elevated, standard, view-only"}
	}
	if s.RoleExists(role.RoleID) {
		return &store.ConflictError{Kind: "role", ID: role.RoleID}
	}
	return s.db.Create(&role).Error
}

// FetchRole retrieves a role by id
func (s *CatalogStore) FetchRole(roleID string) (*model.Role, error) {
	var role model.Role
	if err := s.db.Where("role_id = ?", roleID).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{Kind: "role", ID: roleID}
		}
		return nil, err
	}
	return &role, nil
}

// ListRoles returns all roles ordered by id
func (s *CatalogStore) ListRoles() ([]model.Role, error) {
	roles := []model.Role{}
	if err := s.db.Order("role_id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// UpdateRole renames and/or reclassifies a role
func (s *CatalogStore) UpdateRole(roleID, name string, classification model.Classification) error {
	if !classification.Valid() {
		return &store.ValidationError{Field: "classification", Reason: "must be one of elevated, standard, view-only"}
	}
	result := s.db.Model(&model.Role{}).Where("role_id = ?", roleID).
		Updates(map[string]interface{}{"name": name, "classification": classification})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &store.NotFoundError{Kind: "role", ID: roleID}
	}
	return nil
}

// DeleteRole removes a role. Without cascade the delete is refused while
// active grants reference the role; with cascade the grants go in the
// same transaction.
func (s *CatalogStore) DeleteRole(roleID string, cascade bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if !roleExists(tx, roleID) {
			return &store.NotFoundError{Kind: "role", ID: roleID}
		}

		var grants int64
		tx.Model(&model.PermissionGrant{}).Where("role_id = ?", roleID).Count(&grants)
		if grants > 0 {
			if !cascade {
				return &store.ConflictError{Kind: "role", ID: roleID}
			}
			if err := tx.Exec(`DELETE FROM permission_grants WHERE role_id = ?`, roleID).Error; err != nil {
				return err
			}
		}
		return tx.Exec(`DELETE FROM roles WHERE role_id = ?`, roleID).Error
	})
}

// RoleExists checks if a role exists
func (s *CatalogStore) RoleExists(roleID string) bool {
	return roleExists(s.db, roleID)
}

func roleExists(db *gorm.DB, roleID string) bool {
	var exists bool
	db.Raw(`SELECT EXISTS(SELECT 1 FROM roles WHERE role_id = ?)`, roleID).Scan(&exists)
	return exists
}

// CreateResource creates a resource
func (s *CatalogStore) CreateResource(resource model.Resource) error {
	if resource.ResourceID == "" {
		return &store.ValidationError{Field: "resource id", Reason: "required"}
	}
	if s.ResourceExists(resource.ResourceID) {
		return &store.ConflictError{Kind: "resource", ID: resource.ResourceID}
	}
	return s.db.Create(&resource).Error
}

// FetchResource retrieves a resource by id
func (s *CatalogStore) FetchResource(resourceID string) (*model.Resource, error) {
	var resource model.Resource
	if err := s.db.Where("resource_id = ?", resourceID).First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{Kind: "resource", ID: resourceID}
		}
		return nil, err
	}
	return &resource, nil
}

// ListResources returns all resources ordered by id
func (s *CatalogStore) ListResources() ([]model.Resource, error) {
	resources := []model.Resource{}
	if err := s.db.Order("resource_id").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

// ResourceExists checks if a resource exists
func (s *CatalogStore) ResourceExists(resourceID string) bool {
	return resourceExists(s.db, resourceID)
}

func resourceExists(db *gorm.DB, resourceID string) bool {
	var exists bool
	db.Raw(`SELECT EXISTS(SELECT 1 FROM resources WHERE resource_id = ?)`, resourceID).Scan(&exists)
	return exists
}

// RetireResource removes a resource once nothing references it
func (s *CatalogStore) RetireResource(resourceID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if !resourceExists(tx, resourceID) {
			return &store.NotFoundError{Kind: "resource", ID: resourceID}
		}

		var grants int64
		tx.Model(&model.PermissionGrant{}).Where("resource_id = ?", resourceID).Count(&grants)
		if grants > 0 {
			return &store.ConflictError{Kind: "resource", ID: resourceID}
		}
		return tx.Exec(`DELETE FROM resources WHERE resource_id = ?`, resourceID).Error
	})
}
