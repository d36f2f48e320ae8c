package config

import (
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/urfave/cli/v3"
)

// Sheets holds CLI flags for the Google Sheets source
type Sheets struct {
	credentialsFile string
	sheetID         string
}

// Flags returns CLI flags for Google Sheets configuration
func (s *Sheets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sheets-credentials",
			Usage:       "Path to a Google service account credentials JSON file",
			Sources:     cli.EnvVars("RISKREGISTER_SHEETS_CREDENTIALS"),
			Destination: &s.credentialsFile,
		},
		&cli.StringFlag{
			Name:        "sheets-id",
			Usage:       "Google spreadsheet ID to reconcile against",
			Sources:     cli.EnvVars("RISKREGISTER_SHEETS_ID"),
			Destination: &s.sheetID,
		},
	}
}

// Configured reports whether a spreadsheet is set up at all
func (s *Sheets) Configured() bool {
	return s.sheetID != "" || s.credentialsFile != ""
}

// Configure builds the spreadsheet source. Returns (nil, nil) when no sheet
// is configured; a partially configured sheet fails fast.
func (s *Sheets) Configure() (*source.Spreadsheet, error) {
	if !s.Configured() {
		return nil, nil
	}
	return source.NewSpreadsheet(s.credentialsFile, s.sheetID)
}
