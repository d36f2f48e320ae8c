package usecase

import (
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
)

// UseCases aggregates the application operations over one repository. The
// mirror coordinator, when configured, is registered as a store observer so
// every committed mutation schedules a mirror refresh.
type UseCases struct {
	repo   interfaces.Repository
	mirror *MirrorSync
	sheet  interfaces.TabularSource

	Risk   *RiskUseCase
	Sync   *SyncUseCase
	Report *ReportUseCase
}

type Option func(*UseCases)

// WithMirror attaches a mirror coordinator and registers it for store
// mutations.
func WithMirror(mirror *MirrorSync) Option {
	return func(uc *UseCases) {
		uc.mirror = mirror
	}
}

// WithSheet attaches a spreadsheet source for on-demand sheet passes
func WithSheet(sheet interfaces.TabularSource) Option {
	return func(uc *UseCases) {
		uc.sheet = sheet
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Risk = NewRiskUseCase(repo)
	uc.Sync = NewSyncUseCase(repo, uc.sheet)
	uc.Report = NewReportUseCase(repo)

	if uc.mirror != nil {
		repo.RegisterObserver(uc.mirror)
	}

	return uc
}

// Mirror returns the configured mirror coordinator, or nil
func (uc *UseCases) Mirror() *MirrorSync {
	return uc.mirror
}

// Sheet returns the configured spreadsheet source, or nil
func (uc *UseCases) Sheet() interfaces.TabularSource {
	return uc.sheet
}
