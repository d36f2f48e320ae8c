package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetReadRange = "A1:Z"

// Spreadsheet is a Google Sheets backed tabular source. It needs a service
// account credentials file and a spreadsheet ID, and fails fast when either
// is missing.
type Spreadsheet struct {
	credentialsFile string
	sheetID         string
}

var _ interfaces.TabularSource = &Spreadsheet{}

func NewSpreadsheet(credentialsFile, sheetID string) (*Spreadsheet, error) {
	if credentialsFile == "" {
		return nil, goerr.New("Google Sheets credentials file is not configured",
			goerr.T(types.ErrTagSourceNotFound))
	}
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, goerr.Wrap(err, "Google Sheets credentials file not found",
			goerr.V("path", credentialsFile), goerr.T(types.ErrTagSourceNotFound))
	}
	if sheetID == "" {
		return nil, goerr.New("Google Sheet ID is not configured",
			goerr.T(types.ErrTagSourceNotFound))
	}
	return &Spreadsheet{
		credentialsFile: credentialsFile,
		sheetID:         sheetID,
	}, nil
}

func (s *Spreadsheet) Label() string {
	return "sheets:" + s.sheetID
}

func (s *Spreadsheet) Header() []string {
	return SheetHeader()
}

func (s *Spreadsheet) service(ctx context.Context) (*sheets.Service, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service",
			goerr.T(types.ErrTagSourceNotFound))
	}
	return svc, nil
}

func (s *Spreadsheet) Read(ctx context.Context) ([]model.Row, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(s.sheetID, sheetReadRange).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read sheet values",
			goerr.V("sheet_id", s.sheetID), goerr.T(types.ErrTagSourceUnreadable))
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	rows := make([]model.Row, 0, len(resp.Values)-1)
	for i, record := range resp.Values[1:] {
		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(record) {
				values[col] = fmt.Sprint(record[j])
			}
		}
		rows = append(rows, model.Row{Line: i + 2, Values: values})
	}
	return rows, nil
}

func (s *Spreadsheet) Write(ctx context.Context, header []string, rows [][]string) error {
	svc, err := s.service(ctx)
	if err != nil {
		return err
	}

	if _, err := svc.Spreadsheets.Values.Clear(s.sheetID, sheetReadRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to clear sheet", goerr.V("sheet_id", s.sheetID))
	}

	values := make([][]interface{}, 0, len(rows)+1)
	headerCells := make([]interface{}, len(header))
	for i, col := range header {
		headerCells[i] = col
	}
	values = append(values, headerCells)
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	valueRange := &sheets.ValueRange{Values: values}
	if _, err := svc.Spreadsheets.Values.Update(s.sheetID, "A1", valueRange).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return goerr.Wrap(err, "failed to update sheet", goerr.V("sheet_id", s.sheetID))
	}
	return nil
}

// Check verifies connectivity and returns the spreadsheet title
func (s *Spreadsheet) Check(ctx context.Context) (string, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return "", err
	}

	resp, err := svc.Spreadsheets.Get(s.sheetID).Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get spreadsheet",
			goerr.V("sheet_id", s.sheetID), goerr.T(types.ErrTagSourceUnreadable))
	}
	if resp.Properties == nil {
		return "", nil
	}
	return resp.Properties.Title, nil
}
