package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
)

func TestCSVFile(t *testing.T) {
	ctx := context.Background()

	t.Run("write then read round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "register.csv")
		csv := source.NewCSVFile(path)

		header := source.MirrorHeader()
		rows := [][]string{
			{"RISK-001", "Stale accounts", "Security", "Access Control", "4", "5", "20", "Open", "Low", "2026-01-15", "No"},
			{"RISK-002", "Vendor outage", "Operations", "Third-party", "2", "3", "6", "Mitigated", "High", "2026-02-01", "Yes"},
		}
		gt.NoError(t, csv.Write(ctx, header, rows)).Required()

		got, err := csv.Read(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(2)

		// Header is line 1, first data row line 2
		gt.Value(t, got[0].Line).Equal(2)
		gt.Value(t, got[1].Line).Equal(3)
		gt.Value(t, got[0].Get("Risk ID")).Equal("RISK-001")
		gt.Value(t, got[1].Get("Status")).Equal("Mitigated")
		gt.Value(t, got[1].Get("Is Mitigated")).Equal("Yes")
	})

	t.Run("missing file is source not found", func(t *testing.T) {
		csv := source.NewCSVFile(filepath.Join(t.TempDir(), "absent.csv"))
		_, err := csv.Read(ctx)
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, types.ErrTagSourceNotFound)).Equal(true)
	})

	t.Run("short rows leave trailing columns empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ragged.csv")
		content := "Risk ID,Title,Status\nRISK-001,Only a title\n"
		gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()

		got, err := source.NewCSVFile(path).Read(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(1)
		gt.Value(t, got[0].Get("Title")).Equal("Only a title")
		gt.Value(t, got[0].Get("Status")).Equal("")
	})

	t.Run("write replaces previous content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "register.csv")
		csv := source.NewCSVFile(path)

		header := source.MirrorHeader()
		gt.NoError(t, csv.Write(ctx, header, [][]string{
			{"RISK-001", "a", "IT", "Configuration", "1", "1", "1", "Open", "Medium", "2026-01-01", "No"},
			{"RISK-002", "b", "IT", "Configuration", "1", "1", "1", "Open", "Medium", "2026-01-01", "No"},
		})).Required()
		gt.NoError(t, csv.Write(ctx, header, [][]string{
			{"RISK-003", "c", "IT", "Configuration", "1", "1", "1", "Open", "Medium", "2026-01-01", "No"},
		})).Required()

		got, err := csv.Read(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(1)
		gt.Value(t, got[0].Get("Risk ID")).Equal("RISK-003")
	})
}
