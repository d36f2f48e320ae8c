package source

import (
	"strconv"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
)

// Human-readable column labels shared by every tabular source kind
const (
	ColRiskID               = "Risk ID"
	ColTitle                = "Title"
	ColOwner                = "Risk Owner"
	ColCategory             = "Risk Category"
	ColLikelihood           = "Likelihood"
	ColImpact               = "Impact"
	ColScore                = "Risk Score"
	ColStatus               = "Status"
	ColControlEffectiveness = "Control Effectiveness"
	ColLastUpdated          = "Last Updated"
	ColIsMitigated          = "Is Mitigated"
)

const dateLayout = "2006-01-02"

// MirrorHeader returns the eleven-column header of the CSV mirror file
func MirrorHeader() []string {
	return []string{
		ColRiskID,
		ColTitle,
		ColOwner,
		ColCategory,
		ColLikelihood,
		ColImpact,
		ColScore,
		ColStatus,
		ColControlEffectiveness,
		ColLastUpdated,
		ColIsMitigated,
	}
}

// SheetHeader returns the spreadsheet export header. The mitigation flag is
// deliberately absent: the sheet round-trips it through the status column.
func SheetHeader() []string {
	return []string{
		ColRiskID,
		ColTitle,
		ColOwner,
		ColCategory,
		ColLikelihood,
		ColImpact,
		ColScore,
		ColStatus,
		ColControlEffectiveness,
		ColLastUpdated,
	}
}

// RenderRow renders one canonical risk into the given column order.
// Booleans render as "Yes"/"No" and dates as ISO YYYY-MM-DD.
func RenderRow(header []string, risk *model.Risk) []string {
	row := make([]string, len(header))
	for i, col := range header {
		switch col {
		case ColRiskID:
			row[i] = risk.RiskID
		case ColTitle:
			row[i] = risk.Title
		case ColOwner:
			row[i] = risk.Owner.String()
		case ColCategory:
			row[i] = risk.Category.String()
		case ColLikelihood:
			row[i] = strconv.Itoa(risk.Likelihood)
		case ColImpact:
			row[i] = strconv.Itoa(risk.Impact)
		case ColScore:
			row[i] = strconv.Itoa(risk.Score)
		case ColStatus:
			row[i] = risk.Status.String()
		case ColControlEffectiveness:
			row[i] = risk.ControlEffectiveness.String()
		case ColLastUpdated:
			row[i] = risk.LastUpdated.Format(dateLayout)
		case ColIsMitigated:
			if risk.IsMitigated {
				row[i] = "Yes"
			} else {
				row[i] = "No"
			}
		}
	}
	return row
}
