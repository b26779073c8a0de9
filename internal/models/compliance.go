package models

// Severity grades an incompatibility finding.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// AtLeast returns true if s is at or above target.
func (s Severity) AtLeast(target Severity) bool {
	return severityRank[s] >= severityRank[target]
}

// Priority orders recommendations.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SubScore names one component of a compliance result.
type SubScore string

const (
	SubScoreCompatibility SubScore = "compatibility"
	SubScoreTaste         SubScore = "taste"
	SubScoreThermal       SubScore = "thermal"
	SubScoreNutrient      SubScore = "nutrient"
	SubScoreAgni          SubScore = "agni"
)

// SubScores lists the components in report order.
var SubScores = []SubScore{SubScoreCompatibility, SubScoreTaste, SubScoreThermal, SubScoreNutrient, SubScoreAgni}

// ComplianceResult is the outcome of scoring a meal or a chart.
type ComplianceResult struct {
	OverallScore     float64              `json:"overall_score"`
	SubScores        map[SubScore]float64 `json:"sub_scores"`
	ImprovementAreas []string             `json:"improvement_areas"`
	Recommendations  []string             `json:"recommendations"`
}

// NeutralScore is the default for any sub-score that cannot be computed.
const NeutralScore = 0.5

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
