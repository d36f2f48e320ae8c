package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/repository/memory"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
)

// blockingDest is a tabular destination whose Write blocks until released,
// to hold a mirror pass in flight during the test
type blockingDest struct {
	started chan struct{}
	release chan struct{}
	written chan [][]string
}

func newBlockingDest() *blockingDest {
	return &blockingDest{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
		written: make(chan [][]string, 8),
	}
}

func (d *blockingDest) Label() string    { return "blocking destination" }
func (d *blockingDest) Header() []string { return source.MirrorHeader() }

func (d *blockingDest) Read(ctx context.Context) ([]model.Row, error) {
	return nil, nil
}

func (d *blockingDest) Write(ctx context.Context, header []string, rows [][]string) error {
	d.started <- struct{}{}
	<-d.release
	d.written <- rows
	return nil
}

var _ interfaces.TabularSource = &blockingDest{}

func waitIdle(t *testing.T, mirror *usecase.MirrorSync) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for mirror.Exporting() {
		select {
		case <-deadline:
			t.Fatal("mirror pass did not finish in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestTryTriggerDebounce(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	dest := newBlockingDest()
	mirror := usecase.NewMirrorSync(repo, dest)

	gt.Value(t, mirror.TryTrigger(ctx)).Equal(true)
	<-dest.started

	// Reentrant triggers are dropped while the pass is in flight
	gt.Value(t, mirror.TryTrigger(ctx)).Equal(false)
	gt.Value(t, mirror.TryTrigger(ctx)).Equal(false)

	close(dest.release)
	<-dest.written
	waitIdle(t, mirror)

	// A new trigger is accepted once the pass finished
	gt.Value(t, mirror.TryTrigger(ctx)).Equal(true)
	<-dest.started
	<-dest.written
	waitIdle(t, mirror)
}

func TestMutationTriggersMirror(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	path := filepath.Join(t.TempDir(), "mirror.csv")
	csv := source.NewCSVFile(path)
	mirror := usecase.NewMirrorSync(repo, csv)
	uc := usecase.New(repo, usecase.WithMirror(mirror))

	_, err := uc.Risk.Create(ctx, createInput("RISK-001", 3, 4))
	gt.NoError(t, err).Required()

	// The refresh runs in the background; wait for the mirror to appear
	deadline := time.After(2 * time.Second)
	for {
		rows, err := csv.Read(ctx)
		if err == nil && len(rows) == 1 {
			gt.Value(t, rows[0].Get("Risk ID")).Equal("RISK-001")
			gt.Value(t, rows[0].Get("Risk Score")).Equal("12")
			return
		}
		select {
		case <-deadline:
			t.Fatal("mirror was not refreshed after mutation")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRefreshSynchronous(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	_, err := uc.Risk.Create(ctx, createInput("RISK-001", 2, 2))
	gt.NoError(t, err).Required()

	path := filepath.Join(t.TempDir(), "mirror.csv")
	csv := source.NewCSVFile(path)
	mirror := usecase.NewMirrorSync(repo, csv)

	gt.NoError(t, mirror.Refresh(ctx)).Required()

	rows, err := csv.Read(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, rows).Length(1)
}
