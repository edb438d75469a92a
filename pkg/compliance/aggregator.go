package compliance

import (
	"context"
	"math"
	"time"

	"github.com/prabaj-wq/accessgov/pkg/audit"
	"github.com/prabaj-wq/accessgov/pkg/model"
	"github.com/prabaj-wq/accessgov/pkg/server/store"
)

// SeverityWeights maps a violation severity to the points it subtracts
// from a framework's score.
type SeverityWeights struct {
	Low      int `yaml:"low" json:"low"`
	Medium   int `yaml:"medium" json:"medium"`
	High     int `yaml:"high" json:"high"`
	Critical int `yaml:"critical" json:"critical"`
}

// StatusThresholds are the score cutoffs for the health status: a score
// at or above Healthy is healthy, at or above Warning is warning, else
// error.
type StatusThresholds struct {
	Healthy float64 `yaml:"healthy" json:"healthy"`
	Warning float64 `yaml:"warning" json:"warning"`
}

// Policy bundles the configurable aggregation constants.
type Policy struct {
	Weights    SeverityWeights  `yaml:"severity_weights" json:"severity_weights"`
	Thresholds StatusThresholds `yaml:"status_thresholds" json:"status_thresholds"`
	// TrendDeadBand is the score delta treated as stable.
	TrendDeadBand float64 `yaml:"trend_dead_band" json:"trend_dead_band"`
	// Period is the length of a reporting period.
	Period time.Duration `yaml:"-" json:"-"`
}

// DefaultPolicy returns the stock aggregation constants with a 30-day
// reporting period.
func DefaultPolicy() Policy {
	return Policy{
		Weights:       SeverityWeights{Low: 2, Medium: 5, High: 10, Critical: 20},
		Thresholds:    StatusThresholds{Healthy: 90, Warning: 70},
		TrendDeadBand: 1.0,
		Period:        30 * 24 * time.Hour,
	}
}

func (w SeverityWeights) weightFor(sev model.Severity) int {
	switch sev {
	case model.SeverityCritical:
		return w.Critical
	case model.SeverityHigh:
		return w.High
	case model.SeverityMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// StatusFor buckets a score into a health status.
func StatusFor(score float64, t StatusThresholds) model.MetricStatus {
	switch {
	case score >= t.Healthy:
		return model.MetricHealthy
	case score >= t.Warning:
		return model.MetricWarning
	default:
		return model.MetricError
	}
}

// TrendFor compares a score to the prior period's, treating deltas inside
// the dead-band as stable.
func TrendFor(current, prior float64, deadBand float64) model.Trend {
	delta := current - prior
	if math.Abs(delta) <= deadBand {
		return model.TrendStable
	}
	if delta > 0 {
		return model.TrendUp
	}
	return model.TrendDown
}

// Aggregator derives compliance metrics from violation records.
type Aggregator struct {
	violations store.ViolationsStore
	metrics    store.MetricsStore
	policy     func() Policy
	now        func() time.Time
}

// NewAggregator creates a compliance aggregator.
func NewAggregator(violations store.ViolationsStore, metrics store.MetricsStore, policy func() Policy) *Aggregator {
	return &Aggregator{
		violations: violations,
		metrics:    metrics,
		policy:     policy,
		now:        time.Now,
	}
}

// WithClock overrides the aggregator's time source.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// periodStart truncates an instant to the start of its reporting period.
func periodStart(t time.Time, period time.Duration) time.Time {
	return t.Truncate(period)
}

// Recompute scans the framework's violations within the active reporting
// period and publishes a fresh metric. When the context is canceled
// before publishing, no partial metric is written.
func (a *Aggregator) Recompute(ctx context.Context, framework string) (*model.ComplianceMetric, error) {
	policy := a.policy()
	now := a.now()
	start := periodStart(now, policy.Period)

	violations, err := a.violations.ListViolations(framework, start, start.Add(policy.Period))
	if err != nil {
		return nil, err
	}

	weight := 0
	for _, v := range violations {
		weight += policy.Weights.weightFor(v.Severity)
	}
	if weight > 100 {
		weight = 100
	}
	score := 100 - float64(weight)

	trend := model.TrendStable
	priorStart := start.Add(-policy.Period)
	if prior, err := a.metrics.FetchMetric(framework, priorStart); err == nil && prior != nil {
		trend = TrendFor(score, prior.Score, policy.TrendDeadBand)
	}

	metric := &model.ComplianceMetric{
		Framework:      framework,
		PeriodStart:    start,
		Score:          score,
		Status:         StatusFor(score, policy.Thresholds),
		ViolationCount: len(violations),
		Trend:          trend,
		ComputedAt:     now,
	}

	// Cancellation is honoured up to the publish point; a canceled run
	// discards its partial results.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := a.metrics.SaveMetric(metric); err != nil {
		return nil, err
	}

	audit.Log(audit.RecomputeEvent{
		Framework:  framework,
		Score:      metric.Score,
		Status:     string(metric.Status),
		Trend:      string(metric.Trend),
		Violations: metric.ViolationCount,
	})
	return metric, nil
}

// RecomputeAll recomputes every framework violations exist for, checking
// for cancellation between frameworks.
func (a *Aggregator) RecomputeAll(ctx context.Context) ([]model.ComplianceMetric, error) {
	frameworks, err := a.violations.Frameworks()
	if err != nil {
		return nil, err
	}

	metrics := make([]model.ComplianceMetric, 0, len(frameworks))
	for _, framework := range frameworks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		metric, err := a.Recompute(ctx, framework)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
	}
	return metrics, nil
}
