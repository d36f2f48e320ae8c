package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
)

// SyncUseCase runs reconciliation passes between the canonical store and
// external tabular sources. Each pass moves data in exactly one direction;
// bidirectional flow is two independent passes, each triggered by its own
// event.
type SyncUseCase struct {
	repo  interfaces.Repository
	sheet interfaces.TabularSource
}

func NewSyncUseCase(repo interfaces.Repository, sheet interfaces.TabularSource) *SyncUseCase {
	return &SyncUseCase{
		repo:  repo,
		sheet: sheet,
	}
}

// Import runs one inbound pass: every source row is normalized and upserted
// into the store, last writer wins. A pass-level failure (source unreachable
// or unreadable) yields Success=false and touches nothing; a row-level
// failure is recorded as "Row N: ..." and the pass continues. Rows with an
// empty natural key are skipped silently.
func (uc *SyncUseCase) Import(ctx context.Context, src interfaces.TabularSource) *model.SyncResult {
	logger := logging.From(ctx)

	rows, err := src.Read(ctx)
	if err != nil {
		logger.Error("import pass failed to read source",
			"source", src.Label(), "error", goerr.Unwrap(err))
		return &model.SyncResult{
			Success: false,
			Message: fmt.Sprintf("Failed to read %s: %v", src.Label(), err),
		}
	}

	result := &model.SyncResult{Success: true}
	now := time.Now()

	for _, row := range rows {
		record, skipped, err := source.ParseRow(row, now)
		if skipped {
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}

		_, created, err := uc.repo.Risk().Upsert(ctx, record)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row.Line, err))
			continue
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}
		result.TotalProcessed++
	}

	result.Message = fmt.Sprintf("Imported %d risks from %s (%d created, %d updated)",
		result.TotalProcessed, src.Label(), result.Created, result.Updated)
	logger.Info("import pass completed",
		"source", src.Label(),
		"created", result.Created,
		"updated", result.Updated,
		"row_errors", len(result.Errors))
	return result
}

// Export runs one outbound pass: the full store snapshot overwrites the
// destination, ordered by risk ID, with the destination's own column set.
func (uc *SyncUseCase) Export(ctx context.Context, dst interfaces.TabularSource) *model.SyncResult {
	logger := logging.From(ctx)

	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		logger.Error("export pass failed to read store", "error", goerr.Unwrap(err))
		return &model.SyncResult{
			Success: false,
			Message: fmt.Sprintf("Failed to read risks: %v", err),
		}
	}

	sort.Slice(risks, func(i, j int) bool { return risks[i].RiskID < risks[j].RiskID })

	header := dst.Header()
	rows := make([][]string, 0, len(risks))
	for _, risk := range risks {
		rows = append(rows, source.RenderRow(header, risk))
	}

	if err := dst.Write(ctx, header, rows); err != nil {
		logger.Error("export pass failed to write destination",
			"destination", dst.Label(), "error", goerr.Unwrap(err))
		return &model.SyncResult{
			Success: false,
			Message: fmt.Sprintf("Failed to write %s: %v", dst.Label(), err),
		}
	}

	logger.Info("export pass completed", "destination", dst.Label(), "exported", len(risks))
	return &model.SyncResult{
		Success:  true,
		Message:  fmt.Sprintf("Exported %d risks to %s", len(risks), dst.Label()),
		Exported: len(risks),
	}
}

// SheetImport runs an inbound pass from the configured spreadsheet
func (uc *SyncUseCase) SheetImport(ctx context.Context) (*model.SyncResult, error) {
	if uc.sheet == nil {
		return nil, goerr.New("no spreadsheet is configured")
	}
	return uc.Import(ctx, uc.sheet), nil
}

// SheetExport runs an outbound pass to the configured spreadsheet
func (uc *SyncUseCase) SheetExport(ctx context.Context) (*model.SyncResult, error) {
	if uc.sheet == nil {
		return nil, goerr.New("no spreadsheet is configured")
	}
	return uc.Export(ctx, uc.sheet), nil
}
