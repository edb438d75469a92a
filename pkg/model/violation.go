package model

import "time"

// Severity grades a compliance violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ViolationStatus is the remediation state of a violation.
type ViolationStatus string

const (
	ViolationOpen       ViolationStatus = "open"
	ViolationInProgress ViolationStatus = "in_progress"
	ViolationResolved   ViolationStatus = "resolved"
)

// Valid reports whether v is a known violation status.
func (v ViolationStatus) Valid() bool {
	switch v {
	case ViolationOpen, ViolationInProgress, ViolationResolved:
		return true
	}
	return false
}

// Violation represents a compliance violation attributed to a framework.
// Violations are created and resolved by the governance workflow or by
// external scanners; the aggregator only reads them.
type Violation struct {
	ViolationID     string          `gorm:"column:violation_id;primaryKey"`
	Title           string          `gorm:"column:title;not null"`
	Severity        Severity        `gorm:"column:severity;not null"`
	Framework       string          `gorm:"column:framework;not null;index"`
	Department      string          `gorm:"column:department"`
	User            string          `gorm:"column:user_id"`
	System          string          `gorm:"column:system"`
	RiskScore       int             `gorm:"column:risk_score;not null"`
	Status          ViolationStatus `gorm:"column:status;not null"`
	DetectedAt      time.Time       `gorm:"column:detected_at;not null"`
	AffectedRecords int             `gorm:"column:affected_records;not null;default:0"`
}

func (Violation) TableName() string {
	return "violations"
}
