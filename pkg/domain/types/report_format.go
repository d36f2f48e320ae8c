package types

import "github.com/m-mizutani/goerr/v2"

// ReportFormat identifies an output format for a materialized report
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

// AllReportFormats returns all supported report formats
func AllReportFormats() []ReportFormat {
	return []ReportFormat{
		ReportFormatCSV,
		ReportFormatXLSX,
		ReportFormatPDF,
	}
}

// IsValid checks if the report format is supported
func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportFormatCSV, ReportFormatXLSX, ReportFormatPDF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the report format
func (f ReportFormat) String() string {
	return string(f)
}

// Ext returns the file extension for the format, without the dot
func (f ReportFormat) Ext() string {
	return string(f)
}

// ParseReportFormat parses a string into a ReportFormat
func ParseReportFormat(s string) (ReportFormat, error) {
	format := ReportFormat(s)
	if !format.IsValid() {
		return "", goerr.New("unsupported report format", goerr.V("format", s))
	}
	return format, nil
}
