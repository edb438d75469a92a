package model

import "time"

// MetricStatus is the health bucket a compliance score falls into.
type MetricStatus string

const (
	MetricHealthy MetricStatus = "healthy"
	MetricWarning MetricStatus = "warning"
	MetricError   MetricStatus = "error"
)

// Trend compares a framework's score against the prior reporting period.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// ComplianceMetric is the derived per-framework, per-period compliance
// score. Metrics are owned by the aggregator and recomputed wholesale; they
// are never edited in place.
type ComplianceMetric struct {
	ID             uint         `gorm:"column:id;primaryKey;autoIncrement"`
	Framework      string       `gorm:"column:framework;not null;index:idx_metric_period,unique"`
	PeriodStart    time.Time    `gorm:"column:period_start;not null;index:idx_metric_period,unique"`
	Score          float64      `gorm:"column:score;not null"`
	Status         MetricStatus `gorm:"column:status;not null"`
	ViolationCount int          `gorm:"column:violation_count;not null"`
	Trend          Trend        `gorm:"column:trend;not null"`
	ComputedAt     time.Time    `gorm:"column:computed_at;not null"`
}

func (ComplianceMetric) TableName() string {
	return "compliance_metrics"
}
