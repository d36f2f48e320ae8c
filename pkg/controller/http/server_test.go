package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/opsrisk-lab/riskregister/pkg/controller/http"
	"github.com/opsrisk-lab/riskregister/pkg/domain/model"
	"github.com/opsrisk-lab/riskregister/pkg/repository/memory"
	"github.com/opsrisk-lab/riskregister/pkg/service/source"
	"github.com/opsrisk-lab/riskregister/pkg/usecase"
)

func newTestServer(t *testing.T) (*httpctrl.Server, *usecase.UseCases) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo)
	mirror := source.NewCSVFile(filepath.Join(t.TempDir(), "mirror.csv"))
	return httpctrl.New(uc, httpctrl.WithMirrorSource(mirror)), uc
}

func postJSON(t *testing.T, server http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	gt.NoError(t, err).Required()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func get(server http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createBody(riskID string) map[string]any {
	return map[string]any{
		"risk_id":               riskID,
		"title":                 "test " + riskID,
		"risk_owner":            "IT",
		"risk_category":         "Configuration",
		"likelihood":            3,
		"impact":                4,
		"status":                "Open",
		"control_effectiveness": "Medium",
	}
}

func TestRiskEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("create", func(t *testing.T) {
		rec := postJSON(t, server, "/api/risks", createBody("RISK-001"))
		gt.Value(t, rec.Code).Equal(http.StatusCreated)

		var risk model.Risk
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk)).Required()
		gt.Value(t, risk.RiskID).Equal("RISK-001")
		gt.Value(t, risk.Score).Equal(12)
	})

	t.Run("create with bad enum is 400", func(t *testing.T) {
		body := createBody("RISK-BAD")
		body["risk_owner"] = "Marketing"
		rec := postJSON(t, server, "/api/risks", body)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("get", func(t *testing.T) {
		rec := get(server, "/api/risks/RISK-001")
		gt.Value(t, rec.Code).Equal(http.StatusOK)
	})

	t.Run("get missing is 404", func(t *testing.T) {
		rec := get(server, "/api/risks/RISK-999")
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("patch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/risks/RISK-001",
			strings.NewReader(`{"impact": 5}`))
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var risk model.Risk
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk)).Required()
		gt.Value(t, risk.Score).Equal(15)
	})

	t.Run("toggle", func(t *testing.T) {
		rec := postJSON(t, server, "/api/risks/RISK-001/toggle-mitigated", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var risk model.Risk
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &risk)).Required()
		gt.Value(t, risk.IsMitigated).Equal(true)
		gt.Value(t, risk.Status.String()).Equal("Mitigated")
	})

	t.Run("list with filter", func(t *testing.T) {
		rec := get(server, "/api/risks/?status=Mitigated")
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var result usecase.ListResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
		gt.Value(t, result.Total).Equal(1)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/risks/RISK-001", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		gt.Value(t, rec.Code).Equal(http.StatusNoContent)

		gt.Value(t, get(server, "/api/risks/RISK-001").Code).Equal(http.StatusNotFound)
	})
}

func TestStatsEndpoints(t *testing.T) {
	server, _ := newTestServer(t)
	gt.Value(t, postJSON(t, server, "/api/risks", createBody("RISK-001")).Code).Equal(http.StatusCreated)

	rec := get(server, "/api/stats/")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var dash model.DashboardStats
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash)).Required()
	gt.Value(t, dash.TotalRisks).Equal(1)
	gt.Value(t, dash.HighRisks).Equal(1)

	gt.Value(t, get(server, "/api/stats/matrix").Code).Equal(http.StatusOK)
	gt.Value(t, get(server, "/api/stats/categories").Code).Equal(http.StatusOK)
	gt.Value(t, get(server, "/api/stats/status").Code).Equal(http.StatusOK)
	gt.Value(t, get(server, "/api/stats/owners").Code).Equal(http.StatusOK)
	gt.Value(t, get(server, "/api/stats/effectiveness").Code).Equal(http.StatusOK)
}

func TestSyncEndpoints(t *testing.T) {
	t.Run("csv sync reads the mirror", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		mirrorPath := filepath.Join(t.TempDir(), "mirror.csv")
		mirror := source.NewCSVFile(mirrorPath)

		csv := "Risk ID,Title,Risk Owner,Risk Category,Likelihood,Impact,Status,Control Effectiveness\n" +
			"RISK-001,from mirror,IT,Configuration,2,2,Open,Medium\n"
		gt.NoError(t, writeFile(mirrorPath, csv)).Required()

		server := httpctrl.New(uc, httpctrl.WithMirrorSource(mirror))
		rec := postJSON(t, server, "/api/sync/csv", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var result model.SyncResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
		gt.Value(t, result.Success).Equal(true)
		gt.Value(t, result.Created).Equal(1)
	})

	t.Run("missing mirror file responds 200 with failure", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := postJSON(t, server, "/api/sync/csv", nil)
		gt.Value(t, rec.Code).Equal(http.StatusOK)

		var result model.SyncResult
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result)).Required()
		gt.Value(t, result.Success).Equal(false)
	})

	t.Run("sheets sync without config is 400", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := postJSON(t, server, "/api/sync/sheets", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("sheets status reports unconfigured", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := get(server, "/api/sheets/status")
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.String(t, rec.Body.String()).Contains(`"connected":false`)
	})
}

func TestReportEndpoint(t *testing.T) {
	t.Run("empty register is 404", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := get(server, "/api/reports/csv")
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("unknown format is 400", func(t *testing.T) {
		server, _ := newTestServer(t)
		rec := get(server, "/api/reports/docx")
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("csv report downloads", func(t *testing.T) {
		server, _ := newTestServer(t)
		gt.Value(t, postJSON(t, server, "/api/risks", createBody("RISK-001")).Code).Equal(http.StatusCreated)

		rec := get(server, "/api/reports/csv")
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.String(t, rec.Header().Get("Content-Type")).Contains("text/csv")
		gt.String(t, rec.Header().Get("Content-Disposition")).Contains("risk_register_report_")
		gt.String(t, rec.Body.String()).Contains("RISK-001")
	})

	t.Run("xlsx report downloads", func(t *testing.T) {
		server, _ := newTestServer(t)
		gt.Value(t, postJSON(t, server, "/api/risks", createBody("RISK-001")).Code).Equal(http.StatusCreated)

		rec := get(server, "/api/reports/xlsx")
		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.String(t, rec.Header().Get("Content-Disposition")).Contains(".xlsx")
	})
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)
	rec := get(server, "/health")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}
