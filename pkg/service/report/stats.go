package report

import (
	"math"
	"sort"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// Compute derives the full aggregate view from one store snapshot. It is a
// pure function: the same snapshot always yields the same statistics, and
// an empty snapshot yields all-zero values without error.
func Compute(risks []*model.Risk) *model.Statistics {
	stats := &model.Statistics{
		TotalRisks:      len(risks),
		BySeverity:      make(map[types.Severity]int, 4),
		ByStatus:        make(map[types.Status]int, 4),
		ByEffectiveness: make(map[types.Effectiveness]int, 3),
		Mitigated:       []model.RiskDigest{},
		NotMitigated:    []model.RiskDigest{},
		Matrix:          make(map[string]model.MatrixCell, 25),
	}

	// All 25 cells are always present, count 0 where empty
	for likelihood := 1; likelihood <= 5; likelihood++ {
		for impact := 1; impact <= 5; impact++ {
			stats.Matrix[model.MatrixKey(likelihood, impact)] = model.MatrixCell{
				Likelihood: likelihood,
				Impact:     impact,
				Score:      likelihood * impact,
			}
		}
	}

	categoryCounts := make(map[types.Category]int)
	categoryScores := make(map[types.Category]int)
	ownerCounts := make(map[types.Owner]int)
	ownerScores := make(map[types.Owner]int)

	for _, risk := range risks {
		stats.ScoreSum += risk.Score
		stats.BySeverity[risk.Severity()]++
		stats.ByStatus[risk.Status]++
		stats.ByEffectiveness[risk.ControlEffectiveness]++

		categoryCounts[risk.Category]++
		categoryScores[risk.Category] += risk.Score
		ownerCounts[risk.Owner]++
		ownerScores[risk.Owner] += risk.Score

		key := model.MatrixKey(risk.Likelihood, risk.Impact)
		if cell, ok := stats.Matrix[key]; ok {
			cell.Count++
			stats.Matrix[key] = cell
		}

		digest := model.RiskDigest{
			RiskID:   risk.RiskID,
			Title:    risk.Title,
			Score:    risk.Score,
			Status:   risk.Status,
			Owner:    risk.Owner,
			Category: risk.Category,
		}
		if risk.EffectivelyMitigated() {
			stats.Mitigated = append(stats.Mitigated, digest)
		} else {
			stats.NotMitigated = append(stats.NotMitigated, digest)
		}
	}

	stats.ByCategory = groupCounts(categoryCounts, categoryScores)
	stats.ByOwner = groupCounts(ownerCounts, ownerScores)
	return stats
}

// groupCounts flattens a counted group into a deterministic order: count
// descending, then label ascending.
func groupCounts[K ~string](counts map[K]int, scores map[K]int) []model.GroupCount {
	result := make([]model.GroupCount, 0, len(counts))
	for label, count := range counts {
		avg := 0.0
		if count > 0 {
			avg = float64(scores[label]) / float64(count)
		}
		result = append(result, model.GroupCount{
			Label:    string(label),
			Count:    count,
			AvgScore: avg,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}

// Dashboard flattens the statistics into the dashboard response shape,
// using 1-decimal rounding per the dashboard precision policy.
func Dashboard(risks []*model.Risk) *model.DashboardStats {
	stats := Compute(risks)

	dash := &model.DashboardStats{
		TotalRisks:     stats.TotalRisks,
		CriticalRisks:  stats.BySeverity[types.SeverityCritical],
		HighRisks:      stats.BySeverity[types.SeverityHigh],
		MediumRisks:    stats.BySeverity[types.SeverityMedium],
		LowRisks:       stats.BySeverity[types.SeverityLow],
		OpenRisks:      stats.ByStatus[types.StatusOpen],
		MitigatedRisks: stats.ByStatus[types.StatusMitigated],
		ClosedRisks:    stats.ByStatus[types.StatusClosed],
		AcceptedRisks:  stats.ByStatus[types.StatusAccepted],
		AverageScore:   stats.AverageScore(1),
	}
	if stats.TotalRisks > 0 {
		mitigated := 0
		for _, risk := range risks {
			if risk.IsMitigated || risk.Status == types.StatusMitigated {
				mitigated++
			}
		}
		pct := float64(mitigated) / float64(stats.TotalRisks) * 100
		dash.MitigatedPercentage = roundTo(pct, 1)
	}
	return dash
}

func roundTo(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
