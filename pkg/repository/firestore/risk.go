package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskDocument struct {
	RiskID               string    `firestore:"risk_id"`
	Title                string    `firestore:"title"`
	Owner                string    `firestore:"risk_owner"`
	Category             string    `firestore:"risk_category"`
	Likelihood           int       `firestore:"likelihood"`
	Impact               int       `firestore:"impact"`
	Score                int       `firestore:"risk_score"`
	Status               string    `firestore:"status"`
	ControlEffectiveness string    `firestore:"control_effectiveness"`
	LastUpdated          time.Time `firestore:"last_updated"`
	IsMitigated          bool      `firestore:"is_mitigated"`
	CreatedAt            time.Time `firestore:"created_at"`
}

func toDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		RiskID:               risk.RiskID,
		Title:                risk.Title,
		Owner:                risk.Owner.String(),
		Category:             risk.Category.String(),
		Likelihood:           risk.Likelihood,
		Impact:               risk.Impact,
		Score:                risk.Score,
		Status:               risk.Status.String(),
		ControlEffectiveness: risk.ControlEffectiveness.String(),
		LastUpdated:          risk.LastUpdated,
		IsMitigated:          risk.IsMitigated,
		CreatedAt:            risk.CreatedAt,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		RiskID:               d.RiskID,
		Title:                d.Title,
		Owner:                types.Owner(d.Owner),
		Category:             types.Category(d.Category),
		Likelihood:           d.Likelihood,
		Impact:               d.Impact,
		Score:                d.Score,
		Status:               types.Status(d.Status),
		ControlEffectiveness: types.Effectiveness(d.ControlEffectiveness),
		LastUpdated:          d.LastUpdated,
		IsMitigated:          d.IsMitigated,
		CreatedAt:            d.CreatedAt,
	}
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
	notify           func(ctx context.Context)
}

func newRiskRepository(client *firestore.Client, notify func(ctx context.Context)) *riskRepository {
	return &riskRepository{
		client: client,
		notify: notify,
	}
}

func (r *riskRepository) risksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) Find(ctx context.Context, riskID string) (*model.Risk, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(riskID)
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("risk not found", goerr.V("risk_id", riskID), goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", riskID))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse risk document", goerr.V("risk_id", riskID))
	}
	return riskDoc.toModel(), nil
}

// Upsert runs in a transaction so create-vs-update classification and the
// write are atomic per row.
func (r *riskRepository) Upsert(ctx context.Context, record *model.RiskRecord) (*model.Risk, bool, error) {
	docRef := r.client.Collection(r.risksCollection()).Doc(record.RiskID)

	var risk *model.Risk
	var created bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		switch {
		case err == nil:
			var existing riskDocument
			if err := doc.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to parse risk document")
			}
			risk = existing.toModel()
			created = false
		case status.Code(err) == codes.NotFound:
			risk = &model.Risk{
				RiskID:    record.RiskID,
				CreatedAt: time.Now().UTC(),
			}
			created = true
		default:
			return goerr.Wrap(err, "failed to get risk")
		}

		record.Apply(risk)
		return tx.Set(docRef, toDocument(risk))
	})
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to upsert risk", goerr.V("risk_id", record.RiskID))
	}

	r.notify(ctx)
	return risk, created, nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.client.Collection(r.risksCollection()).
		OrderBy("risk_score", firestore.Desc).
		OrderBy("last_updated", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to parse risk document")
		}
		result = append(result, riskDoc.toModel())
	}
	return result, nil
}

func (r *riskRepository) Save(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	saved := *risk
	saved.Recalc()
	now := time.Now().UTC()
	saved.LastUpdated = now.Truncate(24 * time.Hour)
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}

	docRef := r.client.Collection(r.risksCollection()).Doc(saved.RiskID)
	if _, err := docRef.Set(ctx, toDocument(&saved)); err != nil {
		return nil, goerr.Wrap(err, "failed to save risk", goerr.V("risk_id", saved.RiskID))
	}

	r.notify(ctx)
	return &saved, nil
}

func (r *riskRepository) Delete(ctx context.Context, riskID string) error {
	docRef := r.client.Collection(r.risksCollection()).Doc(riskID)

	// Existence check keeps delete semantics aligned with the memory backend
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.New("risk not found", goerr.V("risk_id", riskID), goerr.T(types.ErrTagNotFound))
		}
		return goerr.Wrap(err, "failed to get risk", goerr.V("risk_id", riskID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("risk_id", riskID))
	}

	r.notify(ctx)
	return nil
}
