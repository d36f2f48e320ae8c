package source

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/utils/safe"
)

// CSVFile is a file-backed tabular source. It also serves as the mirror
// file destination for change-triggered exports.
type CSVFile struct {
	path string
}

var _ interfaces.TabularSource = &CSVFile{}

func NewCSVFile(path string) *CSVFile {
	return &CSVFile{path: path}
}

func (c *CSVFile) Label() string {
	return "csv:" + c.path
}

func (c *CSVFile) Path() string {
	return c.path
}

func (c *CSVFile) Header() []string {
	return MirrorHeader()
}

func (c *CSVFile) Read(ctx context.Context) ([]model.Row, error) {
	f, err := os.Open(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "CSV file not found",
				goerr.V("path", c.path), goerr.T(types.ErrTagSourceNotFound))
		}
		return nil, goerr.Wrap(err, "failed to open CSV file",
			goerr.V("path", c.path), goerr.T(types.ErrTagSourceUnreadable))
	}
	defer safe.Close(ctx, f)

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CSV file",
			goerr.V("path", c.path), goerr.T(types.ErrTagSourceUnreadable))
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.TrimSpace(col)
	}

	rows := make([]model.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(record) {
				values[col] = record[j]
			}
		}
		// Header is line 1, so the first data row is line 2
		rows = append(rows, model.Row{Line: i + 2, Values: values})
	}
	return rows, nil
}

// Write replaces the file content atomically via a temp file and rename, so
// a concurrent reader never observes a half-written mirror.
func (c *CSVFile) Write(ctx context.Context, header []string, rows [][]string) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return goerr.Wrap(err, "failed to create mirror directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("dir", dir))
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	writeErr := writer.Write(header)
	for _, row := range rows {
		if writeErr != nil {
			break
		}
		writeErr = writer.Write(row)
	}
	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(writeErr, "failed to write CSV content", goerr.V("path", c.path))
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		safe.Remove(ctx, tmpPath)
		return goerr.Wrap(err, "failed to replace CSV file", goerr.V("path", c.path))
	}
	return nil
}
