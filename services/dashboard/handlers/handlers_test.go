// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/ingest"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/routes"
	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestAPI spins up the full route tree against an in-memory store.
func newTestAPI(t *testing.T) (*gin.Engine, *store.RiskStore) {
	t.Helper()
	s, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	router := gin.New()
	routes.SetupRoutes(router, routes.Config{
		Store:   s,
		Syncer:  ingest.NewSyncer(s),
		CSVPath: "/nonexistent/register.csv",
	})
	return router, s
}

func seedRisks(t *testing.T, s *store.RiskStore, risks ...datatypes.Risk) {
	t.Helper()
	for _, r := range risks {
		_, _, err := s.Upsert(r)
		require.NoError(t, err)
	}
}

func seedRisk(riskID string, likelihood, impact int, status string) datatypes.Risk {
	return datatypes.Risk{
		RiskID:               riskID,
		Title:                "Risk " + riskID,
		Category:             datatypes.CategoryDataProtection,
		Owner:                datatypes.OwnerSecurity,
		Likelihood:           likelihood,
		Impact:               impact,
		Status:               status,
		ControlEffectiveness: datatypes.EffectivenessMedium,
	}
}

func doRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// ===== RISKS =====

func TestListRisks_DefaultSortAndPagination(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s,
		seedRisk("RISK-001", 1, 1, datatypes.StatusOpen),
		seedRisk("RISK-002", 5, 5, datatypes.StatusOpen),
		seedRisk("RISK-003", 3, 3, datatypes.StatusOpen),
	)

	w := doRequest(router, http.MethodGet, "/v1/risks", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "RISK-002", resp.Results[0].RiskID, "default sort is score descending")
	assert.Equal(t, "RISK-001", resp.Results[2].RiskID)
}

func TestListRisks_FiltersCombineWithAND(t *testing.T) {
	router, s := newTestAPI(t)
	open := seedRisk("RISK-001", 3, 3, datatypes.StatusOpen)
	open.Owner = datatypes.OwnerIT
	closed := seedRisk("RISK-002", 3, 3, datatypes.StatusClosed)
	closed.Owner = datatypes.OwnerIT
	otherOwner := seedRisk("RISK-003", 3, 3, datatypes.StatusOpen)
	otherOwner.Owner = datatypes.OwnerFinance
	seedRisks(t, s, open, closed, otherOwner)

	w := doRequest(router, http.MethodGet, "/v1/risks?status=Open&owner=IT", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	require.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "RISK-001", resp.Results[0].RiskID)
}

func TestListRisks_SearchIsCaseInsensitive(t *testing.T) {
	router, s := newTestAPI(t)
	r := seedRisk("RISK-001", 2, 2, datatypes.StatusOpen)
	r.Title = "Phishing campaign exposure"
	seedRisks(t, s, r, seedRisk("RISK-002", 2, 2, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/risks?search=PHISHING", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	require.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, "RISK-001", resp.Results[0].RiskID)
}

func TestListRisks_MalformedParamsAreIgnored(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 2, 2, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/risks?is_mitigated=maybe&min_score=abc&page=x", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	assert.Equal(t, 1, resp.TotalCount, "garbage params fall back to defaults instead of failing")
}

func TestListRisks_HugePageNumber(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 2, 2, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/risks?page=576460752303423489", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	assert.Empty(t, resp.Results, "a page past the end is empty, never an error")
	assert.Equal(t, 1, resp.TotalCount)
}

func TestListRisks_PageSizeClamped(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 2, 2, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/risks?page_size=5000", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.RiskListResponse](t, w)
	assert.Equal(t, 100, resp.PageSize)
}

func TestGetRisk(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 4, 4, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/risks/RISK-001", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	risk := decodeJSON[datatypes.Risk](t, w)
	assert.Equal(t, "RISK-001", risk.RiskID)
	assert.Equal(t, 16, risk.RiskScore)

	// The payload carries the derived severity band and color.
	payload := decodeJSON[map[string]any](t, w)
	assert.Equal(t, "Critical", payload["severity_level"])
	assert.Equal(t, "#ef4444", payload["severity_color"])
}

func TestGetRisk_NotFound(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodGet, "/v1/risks/RISK-404", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "Risk not found", body["error"])
}

func TestGetRisk_InvalidID(t *testing.T) {
	router, _ := newTestAPI(t)

	// Over the 32-character limit.
	w := doRequest(router, http.MethodGet, "/v1/risks/"+strings.Repeat("A", 40), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===== MITIGATION TOGGLE =====

func TestToggleMitigation(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 3, 3, datatypes.StatusOpen))

	w := doRequest(router, http.MethodPost, "/v1/risks/RISK-001/toggle-mitigated", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeJSON[datatypes.ToggleMitigationResponse](t, w)
	assert.Equal(t, "RISK-001", resp.RiskID)
	assert.True(t, resp.IsMitigated)
	assert.Equal(t, "Risk RISK-001 mitigation status updated.", resp.Message)

	// Status stays untouched.
	got, err := s.Get("RISK-001")
	require.NoError(t, err)
	assert.Equal(t, datatypes.StatusOpen, got.Status)

	// Second toggle flips back.
	w = doRequest(router, http.MethodPost, "/v1/risks/RISK-001/toggle-mitigated", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = decodeJSON[datatypes.ToggleMitigationResponse](t, w)
	assert.False(t, resp.IsMitigated)
}

func TestToggleMitigation_NotFound(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodPost, "/v1/risks/RISK-404/toggle-mitigated", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "Risk not found", body["error"])
}

// ===== DASHBOARD =====

func TestDashboardStats(t *testing.T) {
	router, s := newTestAPI(t)
	mitigated := seedRisk("RISK-002", 2, 2, datatypes.StatusClosed)
	mitigated.IsMitigated = true
	seedRisks(t, s, seedRisk("RISK-001", 5, 5, datatypes.StatusOpen), mitigated)

	w := doRequest(router, http.MethodGet, "/v1/dashboard/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeJSON[datatypes.DashboardStats](t, w)
	assert.Equal(t, 2, stats.TotalRisks)
	assert.Equal(t, 1, stats.CriticalRisks)
	assert.Equal(t, 1, stats.OpenRisks)
	assert.Equal(t, 1, stats.MitigatedRisks)
	assert.Equal(t, 50.0, stats.MitigatedPercentage)
	assert.Equal(t, 14.5, stats.AverageScore)
}

func TestDashboardStats_EmptyRegister(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodGet, "/v1/dashboard/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	stats := decodeJSON[datatypes.DashboardStats](t, w)
	assert.Equal(t, 0, stats.TotalRisks)
	assert.Equal(t, 0.0, stats.MitigatedPercentage)
}

func TestRiskMatrix(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 5, 4, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/dashboard/matrix", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	cells := decodeJSON[map[string]datatypes.MatrixCell](t, w)
	require.Len(t, cells, 25, "all cells present, zero counts included")
	assert.Equal(t, 1, cells["5_4"].Count)
	assert.Equal(t, 0, cells["1_1"].Count)
	assert.Equal(t, 20, cells["5_4"].Score)
}

func TestDistribution(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s,
		seedRisk("RISK-001", 2, 2, datatypes.StatusOpen),
		seedRisk("RISK-002", 2, 2, datatypes.StatusOpen),
		seedRisk("RISK-003", 2, 2, datatypes.StatusClosed),
	)

	w := doRequest(router, http.MethodGet, "/v1/dashboard/distribution/status", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	entries := decodeJSON[[]datatypes.DistributionEntry](t, w)
	require.Len(t, entries, 2)
	assert.Equal(t, "Open", entries[0].Value)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, 4.0, entries[0].AvgScore)
}

func TestDistribution_UnknownKey(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodGet, "/v1/dashboard/distribution/severity", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===== SYNC AND UPLOAD =====

func TestSyncCSV_MissingFile(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodPost, "/v1/sync/csv", nil, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	result := decodeJSON[datatypes.SyncResult](t, w)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "CSV file not found at:")
}

func TestUploadCSV(t *testing.T) {
	router, s := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "register.csv")
	require.NoError(t, err)
	fmt.Fprint(fw, "Risk ID,Title,Risk Owner,Risk Category,Likelihood,Impact,Status,Control Effectiveness,Last Updated\n")
	fmt.Fprint(fw, "RISK-001,Uploaded risk,IT,Configuration,3,3,Open,Medium,2026-05-01\n")
	require.NoError(t, mw.Close())

	w := doRequest(router, http.MethodPost, "/v1/upload/csv", &body, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeJSON[datatypes.SyncResult](t, w)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Created)

	_, err = s.Get("RISK-001")
	assert.NoError(t, err)
}

func TestUploadCSV_RejectsNonCSV(t *testing.T) {
	router, _ := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "register.xlsx")
	require.NoError(t, err)
	fmt.Fprint(fw, "not a csv")
	require.NoError(t, mw.Close())

	w := doRequest(router, http.MethodPost, "/v1/upload/csv", &body, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "Invalid file type. Please upload a CSV file.", resp["error"])
}

func TestUploadCSV_NoFile(t *testing.T) {
	router, _ := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.Close())

	w := doRequest(router, http.MethodPost, "/v1/upload/csv", &body, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "No file provided. Please upload a CSV file.", resp["error"])
}

// ===== REPORTS =====

func TestDownloadCSVReport(t *testing.T) {
	router, s := newTestAPI(t)
	seedRisks(t, s, seedRisk("RISK-001", 4, 4, datatypes.StatusOpen))

	w := doRequest(router, http.MethodGet, "/v1/reports/csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "risk_register_full_report_")
	assert.True(t, strings.Contains(w.Body.String(), "=== RISK REGISTER SUMMARY ==="))
	assert.True(t, strings.Contains(w.Body.String(), "RISK-001"))
}

func TestDownloadCSVReport_EmptyRegister(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodGet, "/v1/reports/csv", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeJSON[map[string]string](t, w)
	assert.Equal(t, "No risk data available to export.", resp["error"])
}

// ===== HEALTH =====

func TestHealthCheck(t *testing.T) {
	router, _ := newTestAPI(t)

	w := doRequest(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
