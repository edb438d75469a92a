package model

import "time"

// Priority is the requester-declared urgency of an access request.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// AccessType is the kind of access being requested.
type AccessType string

const (
	AccessRead  AccessType = "read"
	AccessWrite AccessType = "write"
	AccessAdmin AccessType = "admin"
)

// Valid reports whether a is a known access type.
func (a AccessType) Valid() bool {
	switch a {
	case AccessRead, AccessWrite, AccessAdmin:
		return true
	}
	return false
}

// AccessRequest represents a request for access to a resource, including
// its ordered approval chain and the risk assessment derived at creation.
// Version is an optimistic concurrency stamp: every status or chain update
// must carry the version it read, and bumps it on success.
type AccessRequest struct {
	RequestID     string        `gorm:"column:request_id;primaryKey"`
	Requester     string        `gorm:"column:requester;not null"`
	RequesterRole string        `gorm:"column:requester_role;not null"`
	Department    string        `gorm:"column:department"`
	ResourceID    string        `gorm:"column:resource_id;not null"`
	AccessType    AccessType    `gorm:"column:access_type;not null"`
	Priority      Priority      `gorm:"column:priority;not null"`
	Justification string        `gorm:"column:justification;not null"`
	Status        RequestStatus `gorm:"column:status;not null"`
	RiskScore     int           `gorm:"column:risk_score;not null"`
	RiskLevel     RiskLevel     `gorm:"column:risk_level;not null"`
	SubmittedAt   time.Time     `gorm:"column:submitted_at;not null"`
	DueAt         time.Time     `gorm:"column:due_at;not null"`
	Version       int           `gorm:"column:version;not null;default:1"`

	Steps   []ApprovalStep `gorm:"foreignKey:RequestID;references:RequestID"`
	Factors []RiskFactor   `gorm:"foreignKey:RequestID;references:RequestID"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}
