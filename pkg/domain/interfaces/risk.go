package interfaces

import (
	"context"

	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
)

type RiskRepository interface {
	// Find retrieves a risk by its natural key. A missing risk is reported
	// with the types.ErrTagNotFound tag.
	Find(ctx context.Context, riskID string) (*model.Risk, error)

	// Upsert creates the risk if absent, otherwise overwrites all non-key
	// fields from the record (unconditional last-writer-wins). The derived
	// score is recomputed; the returned bool is true on create.
	Upsert(ctx context.Context, record *model.RiskRecord) (*model.Risk, bool, error)

	// List retrieves all risks
	List(ctx context.Context) ([]*model.Risk, error)

	// Save stores the full risk, creating or replacing it. LastUpdated is
	// set to the current date and the score is recomputed.
	Save(ctx context.Context, risk *model.Risk) (*model.Risk, error)

	// Delete deletes a risk by its natural key
	Delete(ctx context.Context, riskID string) error
}
