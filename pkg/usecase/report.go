package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/service/report"
)

// ErrTagNoData marks a report request against an empty register
var ErrTagNoData = goerr.NewTag("no_data")

// ReportUseCase materializes reports and serves aggregate views
type ReportUseCase struct {
	repo interfaces.Repository
}

func NewReportUseCase(repo interfaces.Repository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// ReportOutput is one rendered report ready to stream to the caller
type ReportOutput struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Generate materializes the current snapshot and renders it in the
// requested format. An empty register is a no-data failure, not an empty
// document.
func (uc *ReportUseCase) Generate(ctx context.Context, format types.ReportFormat) (*ReportOutput, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, err
	}
	if len(risks) == 0 {
		return nil, goerr.New("no risks to report on", goerr.T(ErrTagNoData))
	}

	renderer, err := report.NewRenderer(format)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := report.Materialize(report.Compute(risks), risks, now)
	data, err := renderer.Render(ctx, doc)
	if err != nil {
		return nil, err
	}

	return &ReportOutput{
		Data:        data,
		Filename:    fmt.Sprintf("risk_register_report_%s.%s", now.Format("20060102_150405"), format.Ext()),
		ContentType: renderer.ContentType(),
	}, nil
}

// Dashboard returns the flattened dashboard aggregate view
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, err
	}
	return report.Dashboard(risks), nil
}

// Matrix returns the full 5x5 likelihood x impact grid
func (uc *ReportUseCase) Matrix(ctx context.Context) (map[string]model.MatrixCell, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Matrix, nil
}

// Categories returns the per-category breakdown, count descending
func (uc *ReportUseCase) Categories(ctx context.Context) ([]model.GroupCount, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ByCategory, nil
}

// Owners returns the per-owner breakdown, count descending
func (uc *ReportUseCase) Owners(ctx context.Context) ([]model.GroupCount, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	return stats.ByOwner, nil
}

// Statuses returns the per-status breakdown, count descending
func (uc *ReportUseCase) Statuses(ctx context.Context) ([]model.GroupCount, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	return sortedCounts(stats.ByStatus), nil
}

// Effectiveness returns the control effectiveness breakdown, count
// descending
func (uc *ReportUseCase) Effectiveness(ctx context.Context) ([]model.GroupCount, error) {
	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}
	return sortedCounts(stats.ByEffectiveness), nil
}

func (uc *ReportUseCase) compute(ctx context.Context) (*model.Statistics, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, err
	}
	return report.Compute(risks), nil
}

func sortedCounts[K ~string](counts map[K]int) []model.GroupCount {
	result := make([]model.GroupCount, 0, len(counts))
	for label, count := range counts {
		result = append(result, model.GroupCount{Label: string(label), Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Label < result[j].Label
	})
	return result
}
