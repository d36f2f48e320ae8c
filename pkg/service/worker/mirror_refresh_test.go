package worker_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opsrisk-lab/riskregister/pkg/repository/memory"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/service/worker"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
)

func TestMirrorRefreshWorker(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	_, err := uc.Risk.Create(ctx, &usecase.CreateInput{
		RiskID:     "RISK-001",
		Title:      "worker refresh target",
		Owner:      "IT",
		Category:   "Configuration",
		Likelihood: 2,
		Impact:     3,
	})
	gt.NoError(t, err).Required()

	path := filepath.Join(t.TempDir(), "mirror.csv")
	csv := source.NewCSVFile(path)
	mirror := usecase.NewMirrorSync(repo, csv)

	w := worker.NewMirrorRefreshWorker(mirror, 50*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	// The initial pass runs right after start; wait for the mirror content
	deadline := time.After(2 * time.Second)
	for {
		rows, err := csv.Read(ctx)
		if err == nil && len(rows) == 1 {
			gt.Value(t, rows[0].Get("Risk ID")).Equal("RISK-001")
			return
		}
		select {
		case <-deadline:
			t.Fatal("worker did not refresh the mirror")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestMirrorRefreshWorkerStop(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	csv := source.NewCSVFile(filepath.Join(t.TempDir(), "mirror.csv"))
	mirror := usecase.NewMirrorSync(repo, csv)

	w := worker.NewMirrorRefreshWorker(mirror, time.Hour)
	gt.NoError(t, w.Start(ctx)).Required()

	// Stop blocks until the loop exits
	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop in time")
	}
}
