package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
)

// Section names shared across renderers
const (
	SectionSummary            = "Executive Summary"
	SectionBySeverity         = "Risk Distribution by Severity"
	SectionByStatus           = "Risk Distribution by Status"
	SectionByCategory         = "Risk Distribution by Category"
	SectionByOwner            = "Risk Distribution by Owner"
	SectionByEffectiveness    = "Control Effectiveness"
	SectionRiskMatrix         = "Risk Matrix (Likelihood x Impact)"
	SectionMitigatedRisks     = "Mitigated Risks"
	SectionRequiringAttention = "Risks Requiring Attention"
	SectionAllRisks           = "All Risks"
)

var digestHeader = []string{"Risk ID", "Title", "Score", "Status", "Owner", "Category"}

// Materialize composes the statistics and the full record list into a
// renderer-agnostic report document. Report precision policy: 2 decimals.
func Materialize(stats *model.Statistics, risks []*model.Risk, now time.Time) *model.Document {
	doc := &model.Document{
		Title:       "Risk Management Report",
		GeneratedAt: now,
	}

	doc.Sections = append(doc.Sections, model.NewTableSection(SectionSummary,
		[]string{"Metric", "Value"},
		[][]string{
			{"Total Risks", strconv.Itoa(stats.TotalRisks)},
			{"Average Risk Score", formatScore(stats.AverageScore(2))},
			{"Critical Risks", strconv.Itoa(stats.BySeverity[types.SeverityCritical])},
			{"High Risks", strconv.Itoa(stats.BySeverity[types.SeverityHigh])},
			{"Medium Risks", strconv.Itoa(stats.BySeverity[types.SeverityMedium])},
			{"Low Risks", strconv.Itoa(stats.BySeverity[types.SeverityLow])},
			{"Mitigated Risks", strconv.Itoa(len(stats.Mitigated))},
			{"Risks Requiring Attention", strconv.Itoa(len(stats.NotMitigated))},
		}))

	severityLabels := make([]string, 0, 4)
	severityCounts := make([]int, 0, 4)
	for _, severity := range types.AllSeverities() {
		severityLabels = append(severityLabels, severity.String())
		severityCounts = append(severityCounts, stats.BySeverity[severity])
	}
	doc.Sections = append(doc.Sections,
		model.NewDistributionSection(SectionBySeverity, severityLabels, severityCounts))

	statusLabels := make([]string, 0, 4)
	statusCounts := make([]int, 0, 4)
	for _, status := range types.AllStatuses() {
		statusLabels = append(statusLabels, status.String())
		statusCounts = append(statusCounts, stats.ByStatus[status])
	}
	doc.Sections = append(doc.Sections,
		model.NewDistributionSection(SectionByStatus, statusLabels, statusCounts))

	doc.Sections = append(doc.Sections, distributionFromGroups(SectionByCategory, stats.ByCategory))
	doc.Sections = append(doc.Sections, distributionFromGroups(SectionByOwner, stats.ByOwner))

	effLabels := make([]string, 0, 3)
	effCounts := make([]int, 0, 3)
	for _, eff := range types.AllEffectiveness() {
		effLabels = append(effLabels, eff.String())
		effCounts = append(effCounts, stats.ByEffectiveness[eff])
	}
	doc.Sections = append(doc.Sections,
		model.NewDistributionSection(SectionByEffectiveness, effLabels, effCounts))

	doc.Sections = append(doc.Sections, matrixSection(stats))
	doc.Sections = append(doc.Sections,
		model.NewTableSection(SectionMitigatedRisks, digestHeader, digestRows(stats.Mitigated)))
	doc.Sections = append(doc.Sections,
		model.NewTableSection(SectionRequiringAttention, digestHeader, digestRows(stats.NotMitigated)))

	sorted := make([]*model.Risk, len(risks))
	copy(sorted, risks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RiskID < sorted[j].RiskID })

	header := source.MirrorHeader()
	allRows := make([][]string, 0, len(sorted))
	for _, risk := range sorted {
		allRows = append(allRows, source.RenderRow(header, risk))
	}
	doc.Sections = append(doc.Sections,
		model.NewTableSection(SectionAllRisks, header, allRows))

	return doc
}

// matrixSection lays the 5x5 grid out as a table, likelihood rows descending
// so the most likely band sits on top.
func matrixSection(stats *model.Statistics) model.Section {
	header := []string{"", "Impact 1", "Impact 2", "Impact 3", "Impact 4", "Impact 5"}
	rows := make([][]string, 0, 5)
	for likelihood := 5; likelihood >= 1; likelihood-- {
		row := make([]string, 0, 6)
		row = append(row, fmt.Sprintf("Likelihood %d", likelihood))
		for impact := 1; impact <= 5; impact++ {
			cell := stats.Matrix[model.MatrixKey(likelihood, impact)]
			row = append(row, strconv.Itoa(cell.Count))
		}
		rows = append(rows, row)
	}
	return model.NewTableSection(SectionRiskMatrix, header, rows)
}

func distributionFromGroups(name string, groups []model.GroupCount) model.Section {
	labels := make([]string, 0, len(groups))
	counts := make([]int, 0, len(groups))
	for _, group := range groups {
		labels = append(labels, group.Label)
		counts = append(counts, group.Count)
	}
	return model.NewDistributionSection(name, labels, counts)
}

func digestRows(digests []model.RiskDigest) [][]string {
	rows := make([][]string, 0, len(digests))
	for _, d := range digests {
		rows = append(rows, []string{
			d.RiskID,
			d.Title,
			strconv.Itoa(d.Score),
			d.Status.String(),
			d.Owner.String(),
			d.Category.String(),
		})
	}
	return rows
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
