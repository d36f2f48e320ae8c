package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/repository/memory"
)

func record(riskID string, likelihood, impact int) *model.RiskRecord {
	return &model.RiskRecord{
		RiskID:               riskID,
		Title:                "test risk " + riskID,
		Owner:                types.OwnerIT,
		Category:             types.CategoryConfiguration,
		Likelihood:           likelihood,
		Impact:               impact,
		Status:               types.StatusOpen,
		ControlEffectiveness: types.EffectivenessMedium,
		LastUpdated:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	t.Run("creates when absent", func(t *testing.T) {
		risk, created, err := repo.Risk().Upsert(ctx, record("RISK-001", 4, 5))
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(true)
		gt.Value(t, risk.Score).Equal(20)
		gt.Bool(t, risk.CreatedAt.IsZero()).False()
	})

	t.Run("overwrites when present and keeps CreatedAt", func(t *testing.T) {
		before, err := repo.Risk().Find(ctx, "RISK-001")
		gt.NoError(t, err).Required()

		risk, created, err := repo.Risk().Upsert(ctx, record("RISK-001", 2, 3))
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(false)
		gt.Value(t, risk.Score).Equal(6)
		gt.Value(t, risk.CreatedAt).Equal(before.CreatedAt)
	})
}

func TestFindAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	_, _, err := repo.Risk().Upsert(ctx, record("RISK-001", 1, 1))
	gt.NoError(t, err).Required()

	t.Run("find missing is tagged not found", func(t *testing.T) {
		_, err := repo.Risk().Find(ctx, "RISK-999")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, types.ErrTagNotFound)).Equal(true)
	})

	t.Run("delete removes the risk", func(t *testing.T) {
		gt.NoError(t, repo.Risk().Delete(ctx, "RISK-001")).Required()
		_, err := repo.Risk().Find(ctx, "RISK-001")
		gt.Error(t, err)
	})

	t.Run("delete missing is tagged not found", func(t *testing.T) {
		err := repo.Risk().Delete(ctx, "RISK-001")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, types.ErrTagNotFound)).Equal(true)
	})
}

func TestListOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	for _, rec := range []*model.RiskRecord{
		record("RISK-B", 2, 2),
		record("RISK-A", 2, 2),
		record("RISK-C", 5, 5),
	} {
		_, _, err := repo.Risk().Upsert(ctx, rec)
		gt.NoError(t, err).Required()
	}

	risks, err := repo.Risk().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, risks).Length(3)
	gt.Value(t, risks[0].RiskID).Equal("RISK-C")
	gt.Value(t, risks[1].RiskID).Equal("RISK-A")
	gt.Value(t, risks[2].RiskID).Equal("RISK-B")
}

func TestListCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	_, _, err := repo.Risk().Upsert(ctx, record("RISK-001", 3, 3))
	gt.NoError(t, err).Required()

	risks, err := repo.Risk().List(ctx)
	gt.NoError(t, err).Required()
	risks[0].Title = "mutated"

	again, err := repo.Risk().Find(ctx, "RISK-001")
	gt.NoError(t, err).Required()
	gt.Value(t, again.Title).NotEqual("mutated")
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) OnMutation(ctx context.Context) {
	o.calls++
}

func TestObserverNotification(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	observer := &countingObserver{}
	repo.RegisterObserver(observer)

	_, _, err := repo.Risk().Upsert(ctx, record("RISK-001", 1, 2))
	gt.NoError(t, err).Required()
	gt.Value(t, observer.calls).Equal(1)

	risk, err := repo.Risk().Find(ctx, "RISK-001")
	gt.NoError(t, err).Required()
	gt.Value(t, observer.calls).Equal(1) // reads do not notify

	risk.Impact = 4
	_, err = repo.Risk().Save(ctx, risk)
	gt.NoError(t, err).Required()
	gt.Value(t, observer.calls).Equal(2)

	gt.NoError(t, repo.Risk().Delete(ctx, "RISK-001")).Required()
	gt.Value(t, observer.calls).Equal(3)
}
