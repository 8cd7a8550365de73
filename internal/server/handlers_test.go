package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/insight/internal/app"
	"github.com/bobmcallan/insight/internal/common"
	"github.com/bobmcallan/insight/internal/interfaces"
	"github.com/bobmcallan/insight/internal/models"
)

type stubReportService struct {
	report *models.Report
	err    error
	calls  int
	ticker string
}

func (s *stubReportService) GenerateReport(ctx context.Context, ticker string, options interfaces.ReportOptions) (*models.Report, error) {
	s.calls++
	s.ticker = ticker
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func newTestServer(reports *stubReportService) *Server {
	a := &app.App{
		Config:        common.NewDefaultConfig(),
		Logger:        common.GetLogger(),
		ReportService: reports,
	}
	return NewServer(a)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "version")
}

func TestHandleReportSuccess(t *testing.T) {
	stub := &stubReportService{report: &models.Report{
		Ticker:      "AAPL",
		CompanyName: "Apple Inc.",
		Header: models.ReportHeader{
			Title: "Company Insight Report: Apple Inc. (AAPL)",
		},
	}}
	srv := newTestServer(stub)

	payload := bytes.NewBufferString(`{"ticker": "aapl"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, "aapl", stub.ticker)

	var body models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", body.Ticker)
	assert.Equal(t, "Company Insight Report: Apple Inc. (AAPL)", body.Header.Title)
}

func TestHandleReportMissingTicker(t *testing.T) {
	stub := &stubReportService{}
	srv := newTestServer(stub)

	payload := bytes.NewBufferString(`{"ticker": "  "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, stub.calls)
}

func TestHandleReportInvalidJSON(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	payload := bytes.NewBufferString(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReportValidationFailure(t *testing.T) {
	stub := &stubReportService{err: &models.ValidationError{
		Ticker: "ZZZZ",
		Reason: "Ticker ZZZZ not found or no info available",
	}}
	srv := newTestServer(stub)

	payload := bytes.NewBufferString(`{"ticker": "ZZZZ"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ticker_validation_failed", body.Code)
	assert.Contains(t, body.Error, "not found")
}

func TestHandleReportInternalError(t *testing.T) {
	stub := &stubReportService{err: errors.New("pipeline blew up")}
	srv := newTestServer(stub)

	payload := bytes.NewBufferString(`{"ticker": "AAPL"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/report", payload)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleReportMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/report", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorrelationIDGenerated(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestCorrelationIDPreserved(t *testing.T) {
	srv := newTestServer(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-12345")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-12345", rec.Header().Get("X-Correlation-ID"))
}
