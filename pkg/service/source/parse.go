package source

import (
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// ParseRow normalizes one raw tabular row into a RiskRecord.
//
// Returns (nil, true, nil) for a row with an empty natural key: such rows
// are skipped silently and count toward nothing. A row-level error is
// returned only for values that cannot be normalized at all (unknown enum
// text); malformed numeric fields silently degrade to 1 and a bad or
// missing date degrades to now.
func ParseRow(row model.Row, now time.Time) (*model.RiskRecord, bool, error) {
	riskID := row.Get(ColRiskID)
	if riskID == "" {
		return nil, true, nil
	}

	lastUpdated := now.Truncate(24 * time.Hour)
	if raw := row.Get(ColLastUpdated); raw != "" {
		if parsed, err := time.Parse(dateLayout, raw); err == nil {
			lastUpdated = parsed
		}
	}

	statusText := row.Get(ColStatus)
	if statusText == "" {
		statusText = types.StatusOpen.String()
	}
	status, err := types.ParseStatus(statusText)
	if err != nil {
		return nil, false, goerr.Wrap(err, "cannot normalize status", goerr.V("risk_id", riskID))
	}

	effectivenessText := row.Get(ColControlEffectiveness)
	if effectivenessText == "" {
		effectivenessText = types.EffectivenessMedium.String()
	}
	effectiveness, err := types.ParseEffectiveness(effectivenessText)
	if err != nil {
		return nil, false, goerr.Wrap(err, "cannot normalize control effectiveness", goerr.V("risk_id", riskID))
	}

	owner, err := types.ParseOwner(row.Get(ColOwner))
	if err != nil {
		return nil, false, goerr.Wrap(err, "cannot normalize risk owner", goerr.V("risk_id", riskID))
	}

	category, err := types.ParseCategory(row.Get(ColCategory))
	if err != nil {
		return nil, false, goerr.Wrap(err, "cannot normalize risk category", goerr.V("risk_id", riskID))
	}

	return &model.RiskRecord{
		RiskID:               riskID,
		Title:                row.Get(ColTitle),
		Owner:                owner,
		Category:             category,
		Likelihood:           coerceScale(row.Get(ColLikelihood)),
		Impact:               coerceScale(row.Get(ColImpact)),
		Status:               status,
		ControlEffectiveness: effectiveness,
		LastUpdated:          lastUpdated,
		// Derived from status only; an independent mitigation column in
		// the source is intentionally ignored on import.
		IsMitigated: status == types.StatusMitigated || status == types.StatusClosed,
	}, false, nil
}

// coerceScale turns a raw 1-5 scale value into an int, degrading to 1 on
// anything missing, malformed, or out of range.
func coerceScale(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > 5 {
		return 1
	}
	return v
}
