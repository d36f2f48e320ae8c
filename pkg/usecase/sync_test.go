package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opsrisk-lab/riskregister/pkg/repository/memory"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
)

const registerCSV = `Risk ID,Title,Risk Owner,Risk Category,Likelihood,Impact,Risk Score,Status,Control Effectiveness,Last Updated,Is Mitigated
RISK-001,Stale service accounts,Security,Access Control,4,5,20,Open,Low,2026-01-15,No
,ignored row without a key,IT,Configuration,1,1,1,Open,Medium,2026-01-15,No
RISK-002,Vendor concentration,Operations,Third-party,3,4,12,Mitigated,High,2026-02-01,Yes
`

func writeCSV(t *testing.T, content string) *source.CSVFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "register.csv")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return source.NewCSVFile(path)
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates rows and skips blank keys", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		result := uc.Sync.Import(ctx, writeCSV(t, registerCSV))
		gt.Value(t, result.Success).Equal(true)
		gt.Value(t, result.Created).Equal(2)
		gt.Value(t, result.Updated).Equal(0)
		gt.Value(t, result.TotalProcessed).Equal(2)
		gt.Array(t, result.Errors).Length(0)

		risk, err := repo.Risk().Find(ctx, "RISK-002")
		gt.NoError(t, err).Required()
		gt.Value(t, risk.Score).Equal(12)
		gt.Value(t, risk.IsMitigated).Equal(true)
	})

	t.Run("rerun is idempotent", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		src := writeCSV(t, registerCSV)

		first := uc.Sync.Import(ctx, src)
		gt.Value(t, first.Created).Equal(2)

		second := uc.Sync.Import(ctx, src)
		gt.Value(t, second.Created).Equal(0)
		gt.Value(t, second.Updated).Equal(2)

		risks, err := repo.Risk().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(2)
	})

	t.Run("row error does not abort the pass", func(t *testing.T) {
		csv := `Risk ID,Title,Risk Owner,Risk Category,Likelihood,Impact,Status,Control Effectiveness
RISK-001,good row,IT,Configuration,2,2,Open,Medium
RISK-002,bad owner,Marketing,Configuration,2,2,Open,Medium
RISK-003,another good row,Finance,Data Protection,3,3,Open,High
`
		repo := memory.New()
		uc := usecase.New(repo)

		result := uc.Sync.Import(ctx, writeCSV(t, csv))
		gt.Value(t, result.Success).Equal(true)
		gt.Value(t, result.Created).Equal(2)
		gt.Array(t, result.Errors).Length(1)
		gt.String(t, result.Errors[0]).Contains("Row 3")
	})

	t.Run("missing source fails the pass", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		result := uc.Sync.Import(ctx, source.NewCSVFile(filepath.Join(t.TempDir(), "absent.csv")))
		gt.Value(t, result.Success).Equal(false)
		gt.Value(t, result.TotalProcessed).Equal(0)

		risks, err := repo.Risk().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, risks).Length(0)
	})
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	imported := uc.Sync.Import(ctx, writeCSV(t, registerCSV))
	gt.Value(t, imported.Created).Equal(2)

	dest := source.NewCSVFile(filepath.Join(t.TempDir(), "export.csv"))
	exported := uc.Sync.Export(ctx, dest)
	gt.Value(t, exported.Success).Equal(true)
	gt.Value(t, exported.Exported).Equal(2)

	// Importing the export into a fresh store yields the same register
	repo2 := memory.New()
	uc2 := usecase.New(repo2)
	result := uc2.Sync.Import(ctx, dest)
	gt.Value(t, result.Created).Equal(2)
	gt.Array(t, result.Errors).Length(0)

	first, err := repo.Risk().List(ctx)
	gt.NoError(t, err).Required()
	second, err := repo2.Risk().List(ctx)
	gt.NoError(t, err).Required()

	gt.Array(t, second).Length(len(first))
	for i := range first {
		gt.Value(t, second[i].RiskID).Equal(first[i].RiskID)
		gt.Value(t, second[i].Score).Equal(first[i].Score)
		gt.Value(t, second[i].Status).Equal(first[i].Status)
		gt.Value(t, second[i].IsMitigated).Equal(first[i].IsMitigated)
		gt.Value(t, second[i].LastUpdated).Equal(first[i].LastUpdated)
	}
}

func TestSheetPassesUnconfigured(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	_, err := uc.Sync.SheetImport(ctx)
	gt.Error(t, err)

	_, err = uc.Sync.SheetExport(ctx)
	gt.Error(t, err)
}
