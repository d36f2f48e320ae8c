package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
	"github.com/opsrisk-lab/riskregister/pkg/utils/errutil"
)

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := &usecase.ListInput{
		Status:        types.Status(q.Get("status")),
		Category:      types.Category(q.Get("category")),
		Owner:         types.Owner(q.Get("owner")),
		Effectiveness: types.Effectiveness(q.Get("effectiveness")),
		Search:        q.Get("search"),
		SortBy:        q.Get("sort_by"),
	}

	if raw := q.Get("is_mitigated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid is_mitigated"), http.StatusBadRequest)
			return
		}
		input.IsMitigated = &v
	}
	if v, ok := intParam(q.Get("min_score")); ok {
		input.MinScore = &v
	}
	if v, ok := intParam(q.Get("max_score")); ok {
		input.MaxScore = &v
	}
	if v, ok := intParam(q.Get("page")); ok {
		input.Page = v
	}
	if v, ok := intParam(q.Get("page_size")); ok {
		input.PageSize = v
	}

	result, err := s.uc.Risk.List(r.Context(), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	risk, err := s.uc.Risk.Create(r.Context(), &input)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusCreated, risk)
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	risk, err := s.uc.Risk.Get(r.Context(), chi.URLParam(r, "riskID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, risk)
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	risk, err := s.uc.Risk.Update(r.Context(), chi.URLParam(r, "riskID"), &input)
	if err != nil {
		if goerr.HasTag(err, types.ErrTagNotFound) {
			handleError(w, r, err)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}
	respondJSON(w, r, http.StatusOK, risk)
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Risk.Delete(r.Context(), chi.URLParam(r, "riskID")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleMitigated(w http.ResponseWriter, r *http.Request) {
	risk, err := s.uc.Risk.ToggleMitigated(r.Context(), chi.URLParam(r, "riskID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, risk)
}

func intParam(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
