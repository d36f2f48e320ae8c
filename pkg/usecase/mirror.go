package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/utils/async"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
)

// MirrorSync keeps the CSV mirror file eventually consistent with the
// store. It observes store mutations and schedules a full outbound pass in
// the background; while one pass is in flight further triggers are dropped,
// so a burst of mutations collapses into at most one concurrent export.
//
// Mirror refresh failures are logged and swallowed. The mirror is a derived
// artifact; a failed refresh must never fail the mutation that caused it.
type MirrorSync struct {
	dest interfaces.TabularSource
	engine *SyncUseCase

	mu        sync.Mutex
	exporting bool
}

var _ interfaces.MutationObserver = &MirrorSync{}

func NewMirrorSync(repo interfaces.Repository, dest interfaces.TabularSource) *MirrorSync {
	return &MirrorSync{
		dest: dest,
		engine: NewSyncUseCase(repo, nil),
	}
}

// OnMutation implements interfaces.MutationObserver. The observer call is
// synchronous with the commit, so the export itself runs detached.
func (m *MirrorSync) OnMutation(ctx context.Context) {
	m.TryTrigger(ctx)
}

// TryTrigger schedules a background mirror refresh and reports whether one
// was actually scheduled. It returns false while a refresh is in flight.
func (m *MirrorSync) TryTrigger(ctx context.Context) bool {
	m.mu.Lock()
	if m.exporting {
		m.mu.Unlock()
		return false
	}
	m.exporting = true
	m.mu.Unlock()

	async.Dispatch(ctx, func(ctx context.Context) error {
		defer m.finish()
		result := m.engine.Export(ctx, m.dest)
		if !result.Success {
			return goerr.New("mirror refresh failed", goerr.V("message", result.Message))
		}
		logging.From(ctx).Debug("mirror refreshed",
			"destination", m.dest.Label(), "exported", result.Exported)
		return nil
	})
	return true
}

// Refresh runs one mirror pass synchronously, used at startup so the mirror
// reflects the store before the first mutation arrives. It respects the
// in-flight guard like TryTrigger.
func (m *MirrorSync) Refresh(ctx context.Context) error {
	m.mu.Lock()
	if m.exporting {
		m.mu.Unlock()
		return nil
	}
	m.exporting = true
	m.mu.Unlock()
	defer m.finish()

	result := m.engine.Export(ctx, m.dest)
	if !result.Success {
		return goerr.New("mirror refresh failed", goerr.V("message", result.Message))
	}
	return nil
}

func (m *MirrorSync) finish() {
	m.mu.Lock()
	m.exporting = false
	m.mu.Unlock()
}

// Exporting reports whether a refresh pass is currently in flight
func (m *MirrorSync) Exporting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exporting
}
