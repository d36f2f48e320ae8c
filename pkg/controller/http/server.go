package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opsrisk-lab/riskregister/pkg/domain/interfaces"
	"github.com/opsrisk-lab/riskregister/pkg/domain/types"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
	"github.com/opsrisk-lab/riskregister/pkg/utils/errutil"
	"github.com/opsrisk-lab/riskregister/pkg/utils/logging"
	"github.com/opsrisk-lab/riskregister/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	mirror interfaces.TabularSource
}

type Options func(*Server)

// WithMirrorSource sets the CSV mirror used as the source of /api/sync/csv
// import passes
func WithMirrorSource(src interfaces.TabularSource) Options {
	return func(s *Server) {
		s.mirror = src
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/risks", func(r chi.Router) {
			r.Get("/", s.listRisks)
			r.Post("/", s.createRisk)
			r.Route("/{riskID}", func(r chi.Router) {
				r.Get("/", s.getRisk)
				r.Patch("/", s.updateRisk)
				r.Delete("/", s.deleteRisk)
				r.Post("/toggle-mitigated", s.toggleMitigated)
			})
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.dashboardStats)
			r.Get("/matrix", s.matrixStats)
			r.Get("/categories", s.categoryStats)
			r.Get("/status", s.statusStats)
			r.Get("/owners", s.ownerStats)
			r.Get("/effectiveness", s.effectivenessStats)
		})

		r.Post("/sync/csv", s.syncCSV)
		r.Post("/sync/sheets", s.syncSheets)
		r.Post("/upload/csv", s.uploadCSV)
		r.Get("/reports/{format}", s.generateReport)
		r.Get("/sheets/status", s.sheetsStatus)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

// handleError maps the failure class of an error to a response status
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case goerr.HasTag(err, types.ErrTagNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case goerr.HasTag(err, usecase.ErrTagNoData):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case goerr.HasTag(err, types.ErrTagRendererUnavailable):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}
