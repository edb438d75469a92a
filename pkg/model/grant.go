package model

// PermissionGrant represents one cell of the role/resource access matrix.
// Cells at LevelNone are deleted, never stored: absence of a row and an
// explicit revocation are indistinguishable.
type PermissionGrant struct {
	RoleID     string `gorm:"column:role_id;primaryKey"`
	ResourceID string `gorm:"column:resource_id;primaryKey"`
	Level      Level  `gorm:"column:level;not null"`
}

func (PermissionGrant) TableName() string {
	return "permission_grants"
}
