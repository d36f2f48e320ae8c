package report

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
)

// NewRenderer returns the renderer for the requested format. An unknown or
// unavailable format is a hard failure: when the only requested format has
// no renderer there is nothing to degrade to.
func NewRenderer(format types.ReportFormat) (interfaces.Renderer, error) {
	switch format {
	case types.ReportFormatCSV:
		return &CSVRenderer{}, nil
	case types.ReportFormatXLSX:
		return &ExcelRenderer{}, nil
	case types.ReportFormatPDF:
		return &PDFRenderer{}, nil
	default:
		return nil, goerr.New("no renderer available for format",
			goerr.V("format", format), goerr.T(types.ErrTagRendererUnavailable))
	}
}
