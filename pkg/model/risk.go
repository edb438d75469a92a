package model

// Impact tags how much a single factor contributes to a request's risk.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// RiskLevel is the qualitative bucket derived from the numeric risk score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskFactor is one stored input of a request's risk assessment. The
// numeric score is always re-derivable from the ordered factor list, so
// factors are the source of truth and the score is a cache.
type RiskFactor struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID string `gorm:"column:request_id;not null;index"`
	Position  int    `gorm:"column:position;not null"`
	Name      string `gorm:"column:name;not null"`
	Impact    Impact `gorm:"column:impact;not null"`
}

func (RiskFactor) TableName() string {
	return "risk_factors"
}
