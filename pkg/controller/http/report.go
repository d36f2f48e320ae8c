package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/utils/errutil"
	"github.com/opsrisk-lab/riskregister/pkg/utils/safe"
)

func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	format, err := types.ParseReportFormat(chi.URLParam(r, "format"))
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	output, err := s.uc.Report.Generate(r.Context(), format)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.Filename))
	safe.Write(r.Context(), w, output.Data)
}
