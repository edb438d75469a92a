package store

import (
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

// ViolationsStore abstracts compliance violation records. Violations are
// input to the aggregator; only the governance workflow and external
// scanners mutate them.
type ViolationsStore interface {
	// RecordViolation persists a new violation
	RecordViolation(v *model.Violation) error

	// FetchViolation retrieves a violation by id
	FetchViolation(violationID string) (*model.Violation, error)

	// ListViolations returns violations for a framework detected within
	// [from, until). An empty framework matches all frameworks.
	ListViolations(framework string, from, until time.Time) ([]model.Violation, error)

	// UpdateViolationStatus moves a violation between open, in_progress
	// and resolved.
	UpdateViolationStatus(violationID string, status model.ViolationStatus) error

	// Frameworks returns the distinct frameworks violations exist for
	Frameworks() ([]string, error)
}

// MetricsStore abstracts derived compliance metrics, keyed by framework
// and reporting period.
type MetricsStore interface {
	// SaveMetric upserts the metric for its (framework, period) key
	SaveMetric(m *model.ComplianceMetric) error

	// FetchMetric retrieves the metric for a framework and period start
	FetchMetric(framework string, periodStart time.Time) (*model.ComplianceMetric, error)

	// LatestMetrics returns the newest metric per framework
	LatestMetrics() ([]model.ComplianceMetric, error)
}
