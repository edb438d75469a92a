package risk

import (
	"github.com/prabaj-wq/accessgov/pkg/model"
)

// Weights maps a factor impact to the points it contributes to the score.
type Weights struct {
	Low    int `yaml:"low" json:"low"`
	Medium int `yaml:"medium" json:"medium"`
	High   int `yaml:"high" json:"high"`
}

// Thresholds are the score cutoffs for the qualitative level: a score at
// or above High is high risk, at or above Medium is medium risk, else low.
type Thresholds struct {
	High   int `yaml:"high" json:"high"`
	Medium int `yaml:"medium" json:"medium"`
}

// Policy bundles the configurable scoring constants.
type Policy struct {
	Weights    Weights    `yaml:"factor_weights" json:"factor_weights"`
	Thresholds Thresholds `yaml:"level_thresholds" json:"level_thresholds"`
}

// DefaultPolicy returns the stock scoring constants.
func DefaultPolicy() Policy {
	return Policy{
		Weights:    Weights{Low: 10, Medium: 25, High: 40},
		Thresholds: Thresholds{High: 80, Medium: 50},
	}
}

// Assessment is the derived risk summary of a request.
type Assessment struct {
	Score   int
	Level   model.RiskLevel
	Factors []model.RiskFactor
}

func (w Weights) weightFor(impact model.Impact) int {
	switch impact {
	case model.ImpactHigh:
		return w.High
	case model.ImpactMedium:
		return w.Medium
	default:
		return w.Low
	}
}

// Score sums the factor weights, clamped to [0, 100].
func Score(factors []model.RiskFactor, w Weights) int {
	score := 0
	for _, f := range factors {
		score += w.weightFor(f.Impact)
	}
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// LevelFor buckets a score into a qualitative risk level.
func LevelFor(score int, t Thresholds) model.RiskLevel {
	switch {
	case score >= t.High:
		return model.RiskHigh
	case score >= t.Medium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// Assess composes Score and LevelFor over an ordered factor list.
func Assess(factors []model.RiskFactor, p Policy) Assessment {
	score := Score(factors, p.Weights)
	return Assessment{
		Score:   score,
		Level:   LevelFor(score, p.Thresholds),
		Factors: factors,
	}
}

// Sensitive resource categories that raise the data-sensitivity factor.
var sensitiveCategories = map[string]bool{
	"Financial": true,
	"HR":        true,
	"Legal":     true,
}

// DeriveFactors builds the ordered factor list for a request from its
// attributes and the target resource. Deterministic: the same request and
// resource always produce the same factors.
func DeriveFactors(req *model.AccessRequest, resource *model.Resource, requesterClass model.Classification) []model.RiskFactor {
	var factors []model.RiskFactor

	add := func(name string, impact model.Impact) {
		factors = append(factors, model.RiskFactor{
			RequestID: req.RequestID,
			Position:  len(factors),
			Name:      name,
			Impact:    impact,
		})
	}

	sensitivity := model.ImpactLow
	if resource != nil && sensitiveCategories[resource.Category] {
		sensitivity = model.ImpactHigh
	}
	add("data sensitivity", sensitivity)

	switch req.AccessType {
	case model.AccessAdmin:
		add("access type", model.ImpactHigh)
	case model.AccessWrite:
		add("access type", model.ImpactMedium)
	default:
		add("access type", model.ImpactLow)
	}

	if requesterClass == model.ClassificationViewOnly && req.AccessType != model.AccessRead {
		add("role elevation", model.ImpactHigh)
	} else if requesterClass == model.ClassificationStandard && req.AccessType == model.AccessAdmin {
		add("role elevation", model.ImpactMedium)
	}

	switch req.Priority {
	case model.PriorityCritical:
		add("urgency", model.ImpactMedium)
	case model.PriorityHigh:
		add("urgency", model.ImpactLow)
	}

	return factors
}
