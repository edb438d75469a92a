package model

import "time"

// Classification buckets roles by the weight of access they carry.
type Classification string

const (
	ClassificationElevated Classification = "elevated"
	ClassificationStandard Classification = "standard"
	ClassificationViewOnly Classification = "view-only"
)

// Valid reports whether c is a known classification tag.
func (c Classification) Valid() bool {
	switch c {
	case ClassificationElevated, ClassificationStandard, ClassificationViewOnly:
		return true
	}
	return false
}

// Role represents a principal that can hold permission grants
type Role struct {
	RoleID         string         `gorm:"column:role_id;primaryKey"`
	Name           string         `gorm:"column:name;not null"`
	Classification Classification `gorm:"column:classification;not null"`
	IsTemplate     bool           `gorm:"column:is_template;not null;default:false"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}
