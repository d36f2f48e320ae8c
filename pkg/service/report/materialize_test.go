package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/service/report"
)

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	risks := []*model.Risk{
		risk("RISK-001", 5, 4, types.StatusOpen, false),
		risk("RISK-002", 2, 2, types.StatusMitigated, false),
	}
	risks[0].LastUpdated = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	risks[1].LastUpdated = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	return report.Materialize(report.Compute(risks), risks, now)
}

func findSection(doc *model.Document, name string) *model.Section {
	for i := range doc.Sections {
		if doc.Sections[i].Name == name {
			return &doc.Sections[i]
		}
	}
	return nil
}

func TestMaterialize(t *testing.T) {
	doc := sampleDocument(t)

	gt.Value(t, doc.Title).Equal("Risk Management Report")

	summary := findSection(doc, report.SectionSummary)
	gt.Value(t, summary).NotNil()
	gt.Value(t, summary.Rows[0][0]).Equal("Total Risks")
	gt.Value(t, summary.Rows[0][1]).Equal("2")
	gt.Value(t, summary.Rows[1][1]).Equal("12.00") // (20+4)/2

	matrix := findSection(doc, report.SectionRiskMatrix)
	gt.Value(t, matrix).NotNil()
	gt.Array(t, matrix.Rows).Length(5)
	// Top row is likelihood 5; RISK-001 sits at likelihood 5, impact 4
	gt.Value(t, matrix.Rows[0][0]).Equal("Likelihood 5")
	gt.Value(t, matrix.Rows[0][4]).Equal("1")

	allRisks := findSection(doc, report.SectionAllRisks)
	gt.Value(t, allRisks).NotNil()
	gt.Array(t, allRisks.Rows).Length(2)
	gt.Value(t, allRisks.Rows[0][0]).Equal("RISK-001")

	mitigated := findSection(doc, report.SectionMitigatedRisks)
	gt.Value(t, mitigated).NotNil()
	gt.Array(t, mitigated.Rows).Length(1)
	gt.Value(t, mitigated.Rows[0][0]).Equal("RISK-002")
}

func TestNewRenderer(t *testing.T) {
	for _, format := range types.AllReportFormats() {
		renderer, err := report.NewRenderer(format)
		gt.NoError(t, err).Required()
		gt.Value(t, renderer.Format()).Equal(format)
	}

	_, err := report.NewRenderer(types.ReportFormat("docx"))
	gt.Error(t, err)
}

func TestCSVRenderer(t *testing.T) {
	doc := sampleDocument(t)
	renderer, err := report.NewRenderer(types.ReportFormatCSV)
	gt.NoError(t, err).Required()

	data, err := renderer.Render(context.Background(), doc)
	gt.NoError(t, err).Required()

	text := string(data)
	gt.String(t, text).Contains("Risk Management Report")
	gt.String(t, text).Contains("=== Executive Summary ===")
	gt.String(t, text).Contains("=== All Risks ===")
	gt.String(t, text).Contains("RISK-001")
	gt.Value(t, strings.Count(text, "===")).Equal(2 * len(doc.Sections))
}

func TestExcelRenderer(t *testing.T) {
	doc := sampleDocument(t)
	renderer, err := report.NewRenderer(types.ReportFormatXLSX)
	gt.NoError(t, err).Required()

	data, err := renderer.Render(context.Background(), doc)
	gt.NoError(t, err).Required()
	gt.Number(t, len(data)).Greater(0)
	// XLSX is a zip container
	gt.Value(t, bytes.HasPrefix(data, []byte("PK"))).Equal(true)
}

func TestPDFRenderer(t *testing.T) {
	doc := sampleDocument(t)
	renderer, err := report.NewRenderer(types.ReportFormatPDF)
	gt.NoError(t, err).Required()

	data, err := renderer.Render(context.Background(), doc)
	gt.NoError(t, err).Required()
	gt.Number(t, len(data)).Greater(0)
	gt.Value(t, bytes.HasPrefix(data, []byte("%PDF"))).Equal(true)
}
