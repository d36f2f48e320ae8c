package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/utils/errutil"
	"github.com/opsrisk-lab/riskregister/pkg/utils/safe"
)

const maxUploadSize = 10 << 20 // 10 MiB

// syncCSV runs an inbound pass from the CSV mirror. A pass-level failure is
// reported in the result body with success=false, not as a transport error.
func (s *Server) syncCSV(w http.ResponseWriter, r *http.Request) {
	if s.mirror == nil {
		errutil.HandleHTTP(r.Context(), w, goerr.New("no CSV mirror is configured"), http.StatusBadRequest)
		return
	}
	result := s.uc.Sync.Import(r.Context(), s.mirror)
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) syncSheets(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.Sync.SheetImport(r.Context())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

// uploadCSV imports risks from an uploaded CSV file. The upload is staged
// to a temp file so the pass reads it through the same adapter as the
// mirror.
func (s *Server) uploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid multipart form"), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "missing file field"), http.StatusBadRequest)
		return
	}
	defer safe.Close(r.Context(), file)

	tmp, err := os.CreateTemp("", "risk_upload_*.csv")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to stage upload"), http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer safe.Remove(r.Context(), tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		safe.Close(r.Context(), tmp)
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to stage upload"), http.StatusInternalServerError)
		return
	}
	safe.Close(r.Context(), tmp)

	result := s.uc.Sync.Import(r.Context(), source.NewCSVFile(tmpPath))
	respondJSON(w, r, http.StatusOK, result)
}

// sheetChecker is the optional connectivity probe a sheet source exposes
type sheetChecker interface {
	Check(ctx context.Context) (string, error)
}

func (s *Server) sheetsStatus(w http.ResponseWriter, r *http.Request) {
	sheet := s.uc.Sheet()
	if sheet == nil {
		respondJSON(w, r, http.StatusOK, map[string]any{
			"connected": false,
			"message":   "No spreadsheet is configured",
		})
		return
	}

	checker, ok := sheet.(sheetChecker)
	if !ok {
		respondJSON(w, r, http.StatusOK, map[string]any{
			"connected": false,
			"message":   "Configured source does not support connectivity checks",
		})
		return
	}

	title, err := checker.Check(r.Context())
	if err != nil {
		respondJSON(w, r, http.StatusOK, map[string]any{
			"connected": false,
			"message":   fmt.Sprintf("Connection failed: %v", err),
		})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"connected": true,
		"title":     title,
	})
}
