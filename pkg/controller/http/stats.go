package http

import "net/http"

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.uc.Report.Dashboard(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) matrixStats(w http.ResponseWriter, r *http.Request) {
	matrix, err := s.uc.Report.Matrix(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"matrix": matrix})
}

func (s *Server) categoryStats(w http.ResponseWriter, r *http.Request) {
	groups, err := s.uc.Report.Categories(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"categories": groups})
}

func (s *Server) statusStats(w http.ResponseWriter, r *http.Request) {
	groups, err := s.uc.Report.Statuses(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"status": groups})
}

func (s *Server) ownerStats(w http.ResponseWriter, r *http.Request) {
	groups, err := s.uc.Report.Owners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"owners": groups})
}

func (s *Server) effectivenessStats(w http.ResponseWriter, r *http.Request) {
	groups, err := s.uc.Report.Effectiveness(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"effectiveness": groups})
}
