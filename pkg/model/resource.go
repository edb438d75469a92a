package model

import "time"

// Resource represents a governed module (e.g. a financial or HR system).
// Resources come and go by configuration, not through end-user actions.
type Resource struct {
	ResourceID string    `gorm:"column:resource_id;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Category   string    `gorm:"column:category;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Resource) TableName() string {
	return "resources"
}
