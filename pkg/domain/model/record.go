package model

import (
	"strings"
	"time"

	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// Row is a raw row read from a tabular source: column label to raw value.
// Line is the 1-based line number in the source, where the header is line 1
// and the first data row is line 2.
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed value of a column, or "" when absent
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

// RiskRecord is the normalized intermediate record every tabular source
// adapter produces, keeping the reconciliation engine adapter-agnostic.
// It never carries a score; the score is derived at upsert time.
type RiskRecord struct {
	RiskID               string
	Title                string
	Owner                types.Owner
	Category             types.Category
	Likelihood           int
	Impact               int
	Status               types.Status
	ControlEffectiveness types.Effectiveness
	LastUpdated          time.Time
	IsMitigated          bool
}

// Apply overwrites all non-key fields of the risk with the record's values
// and recomputes the derived score (last-writer-wins upsert semantics).
func (rec *RiskRecord) Apply(risk *Risk) {
	risk.Title = rec.Title
	risk.Owner = rec.Owner
	risk.Category = rec.Category
	risk.Likelihood = rec.Likelihood
	risk.Impact = rec.Impact
	risk.Status = rec.Status
	risk.ControlEffectiveness = rec.ControlEffectiveness
	risk.LastUpdated = rec.LastUpdated
	risk.IsMitigated = rec.IsMitigated
	risk.Recalc()
}
