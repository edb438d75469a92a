package model

import "time"

// StepStatus is the state of a single approval chain step. A step leaves
// pending only once every earlier step is approved; steps after a rejected
// step stay pending forever, preserving what was never reached.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
)

// ApprovalStep represents one entry in a request's ordered approval chain
type ApprovalStep struct {
	ID           uint       `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID    string     `gorm:"column:request_id;not null;index"`
	Position     int        `gorm:"column:position;not null"`
	Approver     string     `gorm:"column:approver;not null"`
	ApproverRole string     `gorm:"column:approver_role;not null"`
	Status       StepStatus `gorm:"column:status;not null"`
	Comment      string     `gorm:"column:comment"`
	DecidedAt    *time.Time `gorm:"column:decided_at"`
}

func (ApprovalStep) TableName() string {
	return "approval_steps"
}
