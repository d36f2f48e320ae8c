package report

import (
	"bytes"
	"context"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// PDFRenderer renders the report document as a printable A4 document. The
// register table uses a compact subset of the mirror columns so rows fit the
// page width.
type PDFRenderer struct{}

var _ interfaces.Renderer = &PDFRenderer{}

var pdfRegisterColumns = []pdfColumn{
	{name: "Risk ID", width: 30},
	{name: "Title", width: 55},
	{name: "Risk Owner", width: 25},
	{name: "Risk Score", width: 20},
	{name: "Status", width: 25},
	{name: "Last Updated", width: 25},
}

type pdfColumn struct {
	name  string
	width float64
}

func (r *PDFRenderer) Format() types.ReportFormat {
	return types.ReportFormatPDF
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) Render(ctx context.Context, doc *model.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated: "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	if summary := findSection(doc, SectionSummary); summary != nil {
		r.writeKeyValues(pdf, summary)
	}

	for _, name := range []string{SectionBySeverity, SectionByStatus, SectionByCategory} {
		if section := findSection(doc, name); section != nil {
			r.writeDistribution(pdf, section)
		}
	}

	if allRisks := findSection(doc, SectionAllRisks); allRisks != nil {
		r.writeRegisterTable(pdf, allRisks)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, goerr.Wrap(err, "failed to serialize pdf")
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) writeKeyValues(pdf *fpdf.Fpdf, section *model.Section) {
	r.sectionTitle(pdf, section.Name)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range section.Rows {
		if len(row) < 2 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) writeDistribution(pdf *fpdf.Fpdf, section *model.Section) {
	r.sectionTitle(pdf, section.Name)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 6, "Label", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 6, "Count", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for i, label := range section.Labels {
		pdf.CellFormat(70, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, strconv.Itoa(section.Counts[i]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) writeRegisterTable(pdf *fpdf.Fpdf, section *model.Section) {
	r.sectionTitle(pdf, section.Name)

	indexes := make([]int, len(pdfRegisterColumns))
	for i, col := range pdfRegisterColumns {
		indexes[i] = columnIndex(section.Header, col.name)
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfRegisterColumns {
		pdf.CellFormat(col.width, 6, col.name, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range section.Rows {
		for i, col := range pdfRegisterColumns {
			var value string
			if idx := indexes[i]; idx >= 0 && idx < len(row) {
				value = row[idx]
			}
			pdf.CellFormat(col.width, 6, truncateCell(value, col.width), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *PDFRenderer) sectionTitle(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(13, 148, 136)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncateCell keeps cell text within the column width. Roughly 2mm per
// character at the 8pt body font.
func truncateCell(s string, width float64) string {
	limit := int(width / 2)
	if limit < 4 || len(s) <= limit {
		return s
	}
	return s[:limit-3] + "..."
}
