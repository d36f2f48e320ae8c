package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// CSVRenderer renders the report document as a sectioned CSV text stream
type CSVRenderer struct{}

var _ interfaces.Renderer = &CSVRenderer{}

func (r *CSVRenderer) Format() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *CSVRenderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *CSVRenderer) Render(ctx context.Context, doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	rows := [][]string{
		{doc.Title},
		{"Generated", doc.GeneratedAt.Format("2006-01-02 15:04:05")},
		{},
	}

	for _, section := range doc.Sections {
		rows = append(rows, []string{"=== " + section.Name + " ==="})
		switch section.Kind {
		case model.SectionTable:
			rows = append(rows, section.Header)
			rows = append(rows, section.Rows...)
		case model.SectionDistribution:
			rows = append(rows, []string{"Label", "Count"})
			for i, label := range section.Labels {
				rows = append(rows, []string{label, strconv.Itoa(section.Counts[i])})
			}
		}
		rows = append(rows, []string{})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, goerr.Wrap(err, "failed to write CSV report row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush CSV report")
	}
	return buf.Bytes(), nil
}
