package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabaj-wq/accessgov/pkg/model"
)

func factorsOf(impacts ...model.Impact) []model.RiskFactor {
	factors := make([]model.RiskFactor, len(impacts))
	for i, impact := range impacts {
		factors[i] = model.RiskFactor{Position: i, Name: "f", Impact: impact}
	}
	return factors
}

func TestScore(t *testing.T) {
	w := DefaultPolicy().Weights

	assert.Equal(t, 0, Score(nil, w))
	assert.Equal(t, 10, Score(factorsOf(model.ImpactLow), w))
	assert.Equal(t, 75, Score(factorsOf(model.ImpactHigh, model.ImpactMedium, model.ImpactLow), w))

	// The sum clamps at 100.
	assert.Equal(t, 100, Score(factorsOf(model.ImpactHigh, model.ImpactHigh, model.ImpactHigh), w))
}

func TestLevelFor(t *testing.T) {
	thresholds := DefaultPolicy().Thresholds

	assert.Equal(t, model.RiskLow, LevelFor(0, thresholds))
	assert.Equal(t, model.RiskLow, LevelFor(49, thresholds))
	assert.Equal(t, model.RiskMedium, LevelFor(50, thresholds))
	assert.Equal(t, model.RiskMedium, LevelFor(79, thresholds))
	assert.Equal(t, model.RiskHigh, LevelFor(80, thresholds))
	assert.Equal(t, model.RiskHigh, LevelFor(100, thresholds))
}

func TestAssess(t *testing.T) {
	assessment := Assess(factorsOf(model.ImpactHigh, model.ImpactMedium), DefaultPolicy())

	assert.Equal(t, 65, assessment.Score)
	assert.Equal(t, model.RiskMedium, assessment.Level)
	assert.Len(t, assessment.Factors, 2)
}

func TestDeriveFactors(t *testing.T) {
	ledger := &model.Resource{ResourceID: "fin-ledger", Category: "Financial"}
	wiki := &model.Resource{ResourceID: "wiki", Category: "Documentation"}

	t.Run("sensitive resource with admin access", func(t *testing.T) {
		req := &model.AccessRequest{
			RequestID:  "req-1",
			AccessType: model.AccessAdmin,
			Priority:   model.PriorityCritical,
		}

		factors := DeriveFactors(req, ledger, model.ClassificationStandard)

		require.Len(t, factors, 4)
		assert.Equal(t, model.ImpactHigh, factors[0].Impact)   // data sensitivity
		assert.Equal(t, model.ImpactHigh, factors[1].Impact)   // access type
		assert.Equal(t, model.ImpactMedium, factors[2].Impact) // role elevation
		assert.Equal(t, model.ImpactMedium, factors[3].Impact) // urgency

		assessment := Assess(factors, DefaultPolicy())
		assert.Equal(t, 100, assessment.Score)
		assert.Equal(t, model.RiskHigh, assessment.Level)
	})

	t.Run("benign read request", func(t *testing.T) {
		req := &model.AccessRequest{
			RequestID:  "req-2",
			AccessType: model.AccessRead,
			Priority:   model.PriorityLow,
		}

		factors := DeriveFactors(req, wiki, model.ClassificationStandard)

		require.Len(t, factors, 2)
		assessment := Assess(factors, DefaultPolicy())
		assert.Equal(t, 20, assessment.Score)
		assert.Equal(t, model.RiskLow, assessment.Level)
	})

	t.Run("view-only role requesting write elevates", func(t *testing.T) {
		req := &model.AccessRequest{
			RequestID:  "req-3",
			AccessType: model.AccessWrite,
			Priority:   model.PriorityMedium,
		}

		factors := DeriveFactors(req, wiki, model.ClassificationViewOnly)

		names := make([]string, len(factors))
		for i, f := range factors {
			names[i] = f.Name
		}
		assert.Contains(t, names, "role elevation")
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		req := &model.AccessRequest{
			RequestID:  "req-4",
			AccessType: model.AccessWrite,
			Priority:   model.PriorityHigh,
		}

		first := DeriveFactors(req, ledger, model.ClassificationStandard)
		second := DeriveFactors(req, ledger, model.ClassificationStandard)
		assert.Equal(t, first, second)
	})
}
