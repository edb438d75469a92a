package memory

import (
	"sort"
	"time"

	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// RecordViolation persists a new violation
func (s *Store) RecordViolation(v *model.Violation) error {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.violations[v.ViolationID]; ok {
		return &store.ConflictError{Kind: "violation", ID: v.ViolationID}
	}
	s.violations[v.ViolationID] = *v
	return nil
}

// FetchViolation retrieves a violation by id
func (s *Store) FetchViolation(violationID string) (*model.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.violations[violationID]
	if !ok {
		return nil, &store.NotFoundError{Kind: "violation", ID: violationID}
	}
	return &v, nil
}

// ListViolations returns violations for a framework detected within
// [from, until). An empty framework matches all frameworks.
func (s *Store) ListViolations(framework string, from, until time.Time) ([]model.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	violations := []model.Violation{}
	for _, v := range s.violations {
		if framework != "" && v.Framework != framework {
			continue
		}
		if v.DetectedAt.Before(from) || !v.DetectedAt.Before(until) {
			continue
		}
		violations = append(violations, v)
	}
	sort.Slice(violations, func(i, j int) bool {
		if !violations[i].DetectedAt.Equal(violations[j].DetectedAt) {
			return violations[i].DetectedAt.After(violations[j].DetectedAt)
		}
		return violations[i].ViolationID < violations[j].ViolationID
	})
	return violations, nil
}

// UpdateViolationStatus moves a violation between open, in_progress and
// resolved.
func (s *Store) UpdateViolationStatus(violationID string, status model.ViolationStatus) error {
	if !status.Valid() {
		return &store.ValidationError{Field: "status", Reason: "must be one of open, in_progress, resolved"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.violations[violationID]
	if !ok {
		return &store.NotFoundError{Kind: "violation", ID: violationID}
	}
	v.Status = status
	s.violations[violationID] = v
	return nil
}

// Frameworks returns the distinct frameworks violations exist for
func (s *Store) Frameworks() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	for _, v := range s.violations {
		seen[v.Framework] = true
	}
	frameworks := make([]string, 0, len(seen))
	for framework := range seen {
		frameworks = append(frameworks, framework)
	}
	sort.Strings(frameworks)
	return frameworks, nil
}

// SaveMetric upserts the metric for its (framework, period) key
func (s *Store) SaveMetric(m *model.ComplianceMetric) error {
	if m.Framework == "" {
		return &store.ValidationError{Field: "framework", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[metricKey{m.Framework, m.PeriodStart.UnixNano()}] = *m
	return nil
}

// FetchMetric retrieves the metric for a framework and period start
func (s *Store) FetchMetric(framework string, periodStart time.Time) (*model.ComplianceMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.metrics[metricKey{framework, periodStart.UnixNano()}]
	if !ok {
		return nil, &store.NotFoundError{Kind: "metric", ID: framework}
	}
	return &m, nil
}

// LatestMetrics returns the newest metric per framework
func (s *Store) LatestMetrics() ([]model.ComplianceMetric, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := map[string]model.ComplianceMetric{}
	for _, m := range s.metrics {
		if cur, ok := latest[m.Framework]; !ok || m.PeriodStart.After(cur.PeriodStart) {
			latest[m.Framework] = m
		}
	}
	metrics := make([]model.ComplianceMetric, 0, len(latest))
	for _, m := range latest {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool { return metrics[i].Framework < metrics[j].Framework })
	return metrics, nil
}
