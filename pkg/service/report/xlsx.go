package report

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
	"github.com/xuri/excelize/v2"
)

// ExcelRenderer renders the report document as an XLSX workbook: a summary
// sheet, the full register, active/mitigated partitions, and the 5x5 matrix
// grid. Chart-image generation is an optional capability; the matrix sheet
// is always rendered as a value grid so the section degrades, not fails.
type ExcelRenderer struct{}

var _ interfaces.Renderer = &ExcelRenderer{}

const (
	sheetReportInfo     = "Report_Info"
	sheetAllRisks       = "All_Risks"
	sheetActiveRisks    = "Active_Risks"
	sheetMitigatedRisks = "Mitigated_Risks"
	sheetRiskMatrix     = "Risk_Matrix"
)

func (r *ExcelRenderer) Format() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *ExcelRenderer) Render(ctx context.Context, doc *model.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logging.From(ctx).Error("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetReportInfo); err != nil {
		return nil, goerr.Wrap(err, "failed to rename summary sheet")
	}

	if err := r.writeReportInfo(f, doc); err != nil {
		return nil, err
	}

	allRisks := findSection(doc, SectionAllRisks)
	if allRisks != nil {
		if err := writeTableSheet(f, sheetAllRisks, allRisks.Header, allRisks.Rows); err != nil {
			return nil, err
		}

		statusIdx := columnIndex(allRisks.Header, "Status")
		active := filterRows(allRisks.Rows, statusIdx, func(status string) bool {
			return status != types.StatusMitigated.String() && status != types.StatusClosed.String()
		})
		if len(active) > 0 {
			if err := writeTableSheet(f, sheetActiveRisks, allRisks.Header, active); err != nil {
				return nil, err
			}
		}

		mitigated := filterRows(allRisks.Rows, statusIdx, func(status string) bool {
			return status == types.StatusMitigated.String()
		})
		if len(mitigated) > 0 {
			if err := writeTableSheet(f, sheetMitigatedRisks, allRisks.Header, mitigated); err != nil {
				return nil, err
			}
		}
	}

	if matrix := findSection(doc, SectionRiskMatrix); matrix != nil {
		if err := writeTableSheet(f, sheetRiskMatrix, matrix.Header, matrix.Rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to serialize workbook")
	}
	return buf.Bytes(), nil
}

func (r *ExcelRenderer) writeReportInfo(f *excelize.File, doc *model.Document) error {
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "0D9488"},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create label style")
	}

	rows := [][]string{
		{"Report Generated", doc.GeneratedAt.Format("2006-01-02 15:04")},
	}
	if summary := findSection(doc, SectionSummary); summary != nil {
		rows = append(rows, summary.Rows...)
	}

	for i, row := range rows {
		for j, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return goerr.Wrap(err, "failed to compute cell name")
			}
			if err := f.SetCellValue(sheetReportInfo, cellName, cell); err != nil {
				return goerr.Wrap(err, "failed to set summary cell")
			}
			if j == 0 {
				if err := f.SetCellStyle(sheetReportInfo, cellName, cellName, labelStyle); err != nil {
					return goerr.Wrap(err, "failed to style summary cell")
				}
			}
		}
	}

	if err := f.SetColWidth(sheetReportInfo, "A", "A", 25); err != nil {
		return goerr.Wrap(err, "failed to set column width")
	}
	if err := f.SetColWidth(sheetReportInfo, "B", "B", 30); err != nil {
		return goerr.Wrap(err, "failed to set column width")
	}
	return nil
}

func writeTableSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", sheet))
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create header style")
	}

	for j, cell := range header {
		cellName, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return goerr.Wrap(err, "failed to compute cell name")
		}
		if err := f.SetCellValue(sheet, cellName, cell); err != nil {
			return goerr.Wrap(err, "failed to set header cell", goerr.V("sheet", sheet))
		}
		if err := f.SetCellStyle(sheet, cellName, cellName, headerStyle); err != nil {
			return goerr.Wrap(err, "failed to style header cell", goerr.V("sheet", sheet))
		}
	}

	for i, row := range rows {
		for j, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return goerr.Wrap(err, "failed to compute cell name")
			}
			if err := f.SetCellValue(sheet, cellName, cell); err != nil {
				return goerr.Wrap(err, "failed to set cell", goerr.V("sheet", sheet))
			}
		}
	}
	return nil
}

func findSection(doc *model.Document, name string) *model.Section {
	for i := range doc.Sections {
		if doc.Sections[i].Name == name {
			return &doc.Sections[i]
		}
	}
	return nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

func filterRows(rows [][]string, idx int, keep func(string) bool) [][]string {
	if idx < 0 {
		return nil
	}
	var result [][]string
	for _, row := range rows {
		if idx < len(row) && keep(row[idx]) {
			result = append(result, row)
		}
	}
	return result
}
