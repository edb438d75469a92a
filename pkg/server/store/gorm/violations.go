package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// Ensure ViolationsStore implements store.ViolationsStore
var _ store.ViolationsStore = (*ViolationsStore)(nil)

// ViolationsStore implements store.ViolationsStore using GORM
type ViolationsStore struct {
	db *gorm.DB
}

// NewViolationsStore creates a new ViolationsStore
func NewViolationsStore(db *gorm.DB) *ViolationsStore {
	return &ViolationsStore{db: db}
}

// RecordViolation persists a new violation
func (s *ViolationsStore) RecordViolation(v *model.Violation) error {
	if v.ViolationID == "" {
		return &store.ValidationError{Field: "violation id", Reason: "required"}
	}
	if v.Title == "" {
		return &store.ValidationError{Field: "title", Reason: "required"}
	}
	if !v.Severity.Valid() {
		return &store.ValidationError{Field: "severity", Reason: "must be one of low, medium, high, critical"}
	}
	if v.Framework == "" {
		return &store.ValidationError{Field: "framework", Reason: "required"}
	}
	if !v.Status.Valid() {
		return &store.ValidationError{Field: "status", Reason: "must be one of open, in_progress, resolved"}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if violationExists(tx, v.ViolationID) {
			return &store.ConflictError{Kind: "violation", ID: v.ViolationID}
		}
		return tx.Create(v).Error
	})
}

func violationExists(db *gorm.DB, violationID string) bool {
	var exists bool
	db.Raw(`SELECT EXISTS(SELECT 1 FROM violations WHERE violation_id = ?)`, violationID).Scan(&exists)
	return exists
}

// FetchViolation retrieves a violation by id
func (s *ViolationsStore) FetchViolation(violationID string) (*model.Violation, error) {
	var v model.Violation
	err := s.db.First(&v, "violation_id = ?", violationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{Kind: "violation", ID: violationID}
		}
		return nil, err
	}
	return &v, nil
}

// ListViolations returns violations for a framework detected within
// [from, until). An empty framework matches all frameworks.
func (s *ViolationsStore) ListViolations(framework string, from, until time.Time) ([]model.Violation, error) {
	query := s.db.Where("detected_at >= ? AND detected_at < ?", from, until)
	if framework != "" {
		query = query.Where("framework = ?", framework)
	}

	violations := []model.Violation{}
	if err := query.Order("detected_at DESC, violation_id").Find(&violations).Error; err != nil {
		return nil, err
	}
	return violations, nil
}

// UpdateViolationStatus moves a violation between open, in_progress and
// resolved.
func (s *ViolationsStore) UpdateViolationStatus(violationID string, status model.ViolationStatus) error {
	if !status.Valid() {
		return &store.ValidationError{Field: "status", Reason: "must be one of open, in_progress, resolved"}
	}

	result := s.db.Exec(`UPDATE violations SET status = ? WHERE violation_id = ?`, status, violationID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &store.NotFoundError{Kind: "violation", ID: violationID}
	}
	return nil
}

// Frameworks returns the distinct frameworks violations exist for
func (s *ViolationsStore) Frameworks() ([]string, error) {
	frameworks := []string{}
	err := s.db.Raw(`SELECT DISTINCT framework FROM violations ORDER BY framework`).Scan(&frameworks).Error
	if err != nil {
		return nil, err
	}
	return frameworks, nil
}

// Ensure MetricsStore implements store.MetricsStore
var _ store.MetricsStore = (*MetricsStore)(nil)

// MetricsStore implements store.MetricsStore using GORM
type MetricsStore struct {
	db *gorm.DB
}

// NewMetricsStore creates a new MetricsStore
func NewMetricsStore(db *gorm.DB) *MetricsStore {
	return &MetricsStore{db: db}
}

// SaveMetric upserts the metric for its (framework, period) key
func (s *MetricsStore) SaveMetric(m *model.ComplianceMetric) error {
	if m.Framework == "" {
		return &store.ValidationError{Field: "framework", Reason: "required"}
	}

	return s.db.Exec(`
		INSERT INTO compliance_metrics
			(framework, period_start, score, status, violation_count, trend, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (framework, period_start) DO UPDATE SET
			score = EXCLUDED.score,
			status = EXCLUDED.status,
			violation_count = EXCLUDED.violation_count,
			trend = EXCLUDED.trend,
			computed_at = EXCLUDED.computed_at
	`, m.Framework, m.PeriodStart, m.Score, m.Status, m.ViolationCount, m.Trend, m.ComputedAt).Error
}

// FetchMetric retrieves the metric for a framework and period start
func (s *MetricsStore) FetchMetric(framework string, periodStart time.Time) (*model.ComplianceMetric, error) {
	var m model.ComplianceMetric
	err := s.db.First(&m, "framework = ? AND period_start = ?", framework, periodStart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &store.NotFoundError{Kind: "metric", ID: framework}
		}
		return nil, err
	}
	return &m, nil
}

// LatestMetrics returns the newest metric per framework
func (s *MetricsStore) LatestMetrics() ([]model.ComplianceMetric, error) {
	metrics := []model.ComplianceMetric{}
	err := s.db.Raw(`
		SELECT DISTINCT ON (framework) *
		FROM compliance_metrics
		ORDER BY framework, period_start DESC
	`).Scan(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
