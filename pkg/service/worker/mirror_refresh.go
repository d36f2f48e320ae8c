package worker

import (
	"context"
	"time"

	"github.com/opsrisk-lab/riskregister/pkg/usecase"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
)

// MirrorRefreshWorker periodically refreshes the CSV mirror as a safety net
// behind change-triggered refreshes, so a dropped trigger or an export that
// failed mid-burst self-heals within one interval.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The mirror coordinator's own in-flight guard dedupes against
//   change-triggered refreshes
type MirrorRefreshWorker struct {
	mirror   *usecase.MirrorSync
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewMirrorRefreshWorker creates a worker refreshing the mirror at the
// given interval
func NewMirrorRefreshWorker(mirror *usecase.MirrorSync, interval time.Duration) *MirrorRefreshWorker {
	return &MirrorRefreshWorker{
		mirror:   mirror,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. The initial refresh and the
// periodic ones run in a goroutine; startup is not blocked.
func (w *MirrorRefreshWorker) Start(ctx context.Context) error {
	logging.Default().Info("mirror refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *MirrorRefreshWorker) Stop() {
	logging.Default().Info("mirror refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("mirror refresh worker stopped")
}

func (w *MirrorRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.mirror.Refresh(ctx); err != nil {
		logging.Default().Error("initial mirror refresh failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !w.mirror.TryTrigger(ctx) {
				logging.Default().Debug("mirror refresh already in flight, skipping tick")
			}

		case <-w.stopCh:
			logging.Default().Info("mirror refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("mirror refresh worker context cancelled")
			return
		}
	}
}
