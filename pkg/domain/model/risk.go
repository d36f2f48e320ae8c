package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// Risk is the canonical risk register entry. RiskID is the natural key used
// to correlate records across the store and external tabular sources.
type Risk struct {
	RiskID               string              `json:"risk_id" firestore:"risk_id"`
	Title                string              `json:"title" firestore:"title"`
	Owner                types.Owner         `json:"risk_owner" firestore:"risk_owner"`
	Category             types.Category      `json:"risk_category" firestore:"risk_category"`
	Likelihood           int                 `json:"likelihood" firestore:"likelihood"`
	Impact               int                 `json:"impact" firestore:"impact"`
	Score                int                 `json:"risk_score" firestore:"risk_score"`
	Status               types.Status        `json:"status" firestore:"status"`
	ControlEffectiveness types.Effectiveness `json:"control_effectiveness" firestore:"control_effectiveness"`
	LastUpdated          time.Time           `json:"last_updated" firestore:"last_updated"`
	IsMitigated          bool                `json:"is_mitigated" firestore:"is_mitigated"`
	CreatedAt            time.Time           `json:"created_at" firestore:"created_at"`
}

// Recalc derives the score from likelihood and impact. The score is never
// accepted as external input; every write path must call this.
func (r *Risk) Recalc() {
	r.Score = r.Likelihood * r.Impact
}

// Severity returns the severity level derived from the current score
func (r *Risk) Severity() types.Severity {
	return types.SeverityFromScore(r.Score)
}

// EffectivelyMitigated reports whether the risk counts as mitigated for
// aggregate views: the flag OR a Mitigated/Closed status. The two fields may
// legitimately disagree; consumers must use this, never the flag alone.
func (r *Risk) EffectivelyMitigated() bool {
	return r.IsMitigated || r.Status == types.StatusMitigated || r.Status == types.StatusClosed
}

// Validate checks enum values and score factor ranges
func (r *Risk) Validate() error {
	if r.RiskID == "" {
		return goerr.New("risk ID is required")
	}
	if !r.Owner.IsValid() {
		return goerr.New("invalid risk owner", goerr.V("owner", r.Owner))
	}
	if !r.Category.IsValid() {
		return goerr.New("invalid risk category", goerr.V("category", r.Category))
	}
	if !r.Status.IsValid() {
		return goerr.New("invalid risk status", goerr.V("status", r.Status))
	}
	if !r.ControlEffectiveness.IsValid() {
		return goerr.New("invalid control effectiveness", goerr.V("effectiveness", r.ControlEffectiveness))
	}
	if r.Likelihood < 1 || r.Likelihood > 5 {
		return goerr.New("likelihood must be between 1 and 5", goerr.V("likelihood", r.Likelihood))
	}
	if r.Impact < 1 || r.Impact > 5 {
		return goerr.New("impact must be between 1 and 5", goerr.V("impact", r.Impact))
	}
	return nil
}
