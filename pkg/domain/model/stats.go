package model

import (
	"fmt"
	"math"

	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// GroupCount is one bucket of a group-count aggregation, with the average
// score of the group where the view calls for it.
type GroupCount struct {
	Label    string  `json:"label"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score,omitempty"`
}

// RiskDigest is the reduced projection of a risk used by partition views
type RiskDigest struct {
	RiskID   string         `json:"risk_id"`
	Title    string         `json:"title"`
	Score    int            `json:"risk_score"`
	Status   types.Status   `json:"status"`
	Owner    types.Owner    `json:"risk_owner"`
	Category types.Category `json:"risk_category"`
}

// MatrixCell is one cell of the 5x5 likelihood x impact grid
type MatrixCell struct {
	Likelihood int `json:"likelihood"`
	Impact     int `json:"impact"`
	Count      int `json:"count"`
	Score      int `json:"score"`
}

// MatrixKey renders the canonical "likelihood_impact" key for a matrix cell
func MatrixKey(likelihood, impact int) string {
	return fmt.Sprintf("%d_%d", likelihood, impact)
}

// Statistics is the full aggregate view over one store snapshot. It is a
// pure function of the snapshot; see the report package for the computation.
type Statistics struct {
	TotalRisks      int
	BySeverity      map[types.Severity]int
	ByStatus        map[types.Status]int
	ByCategory      []GroupCount
	ByOwner         []GroupCount
	ByEffectiveness map[types.Effectiveness]int
	Mitigated       []RiskDigest
	NotMitigated    []RiskDigest
	Matrix          map[string]MatrixCell

	// ScoreSum retains full precision so callers pick their own rounding
	ScoreSum int
}

// AverageScore returns the mean score rounded to the given number of decimal
// places. An empty snapshot yields 0.
func (s *Statistics) AverageScore(precision int) float64 {
	if s.TotalRisks == 0 {
		return 0
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(float64(s.ScoreSum)/float64(s.TotalRisks)*factor) / factor
}

// DashboardStats is the flattened statistics shape served to the dashboard
type DashboardStats struct {
	TotalRisks          int     `json:"total_risks"`
	CriticalRisks       int     `json:"critical_risks"`
	HighRisks           int     `json:"high_risks"`
	MediumRisks         int     `json:"medium_risks"`
	LowRisks            int     `json:"low_risks"`
	OpenRisks           int     `json:"open_risks"`
	MitigatedRisks      int     `json:"mitigated_risks"`
	ClosedRisks         int     `json:"closed_risks"`
	AcceptedRisks       int     `json:"accepted_risks"`
	AverageScore        float64 `json:"average_score"`
	MitigatedPercentage float64 `json:"mitigated_percentage"`
}
