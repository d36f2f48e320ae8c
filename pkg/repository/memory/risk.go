package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

type riskRepository struct {
	mu     sync.RWMutex
	risks  map[string]*model.Risk
	notify func(ctx context.Context)
}

func newRiskRepository(notify func(ctx context.Context)) *riskRepository {
	return &riskRepository{
		risks:  make(map[string]*model.Risk),
		notify: notify,
	}
}

func copyRisk(r *model.Risk) *model.Risk {
	copied := *r
	return &copied
}

func (r *riskRepository) Find(ctx context.Context, riskID string) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[riskID]
	if !exists {
		return nil, goerr.New("risk not found", goerr.V("risk_id", riskID), goerr.T(types.ErrTagNotFound))
	}
	return copyRisk(risk), nil
}

func (r *riskRepository) Upsert(ctx context.Context, record *model.RiskRecord) (*model.Risk, bool, error) {
	r.mu.Lock()

	existing, exists := r.risks[record.RiskID]

	var risk *model.Risk
	if exists {
		risk = copyRisk(existing)
	} else {
		risk = &model.Risk{
			RiskID:    record.RiskID,
			CreatedAt: time.Now().UTC(),
		}
	}
	record.Apply(risk)

	r.risks[record.RiskID] = risk
	result := copyRisk(risk)
	r.mu.Unlock()

	r.notify(ctx)
	return result, !exists, nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Risk, 0, len(r.risks))
	for _, risk := range r.risks {
		result = append(result, copyRisk(risk))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].RiskID < result[j].RiskID
	})
	return result, nil
}

func (r *riskRepository) Save(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()

	saved := copyRisk(risk)
	saved.Recalc()
	now := time.Now().UTC()
	saved.LastUpdated = now.Truncate(24 * time.Hour)
	if existing, exists := r.risks[saved.RiskID]; exists {
		saved.CreatedAt = existing.CreatedAt
	} else if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}

	r.risks[saved.RiskID] = saved
	result := copyRisk(saved)
	r.mu.Unlock()

	r.notify(ctx)
	return result, nil
}

func (r *riskRepository) Delete(ctx context.Context, riskID string) error {
	r.mu.Lock()

	if _, exists := r.risks[riskID]; !exists {
		r.mu.Unlock()
		return goerr.New("risk not found", goerr.V("risk_id", riskID), goerr.T(types.ErrTagNotFound))
	}
	delete(r.risks, riskID)
	r.mu.Unlock()

	r.notify(ctx)
	return nil
}
