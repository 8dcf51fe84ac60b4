// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AleutianAI/LineageBench/services/genealogy/handlers"
	"github.com/AleutianAI/LineageBench/services/genealogy/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const adaSupervisorCell = `{"results":[{"Name_supervisor":"Mary Somerville","Name_student":"Ada Lovelace","Institution_student":"London","Year_Dissertation_student":1835,"Confidence":"High"}]}`

// setupTestRouter builds a router over a store loaded from a small fixture
// workbook.
func setupTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "people to test (lineage)"))
	_, err := f.NewSheet("people to test (bio)")
	require.NoError(t, err)

	lineageRows := [][]any{
		{"Name", "Type", "Gender", "1 up", "1 down", "all ancestors", "all descendants"},
		{"Ada Lovelace", "Mathematician", "Female", adaSupervisorCell, "", "", ""},
		{"Mary Somerville", "Mathematician", "Female", "", "", "", ""},
	}
	for i, row := range lineageRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("people to test (lineage)", cell, &row))
	}
	bioRows := [][]any{
		{"Name", "Type", "Gender", "Model", "Biography(Minimal)", "Biography(Comprehensive)"},
		{"Ada Lovelace", "Mathematician", "Female", "gpt-4", "short bio", "long bio"},
		{"Ada Lovelace", "Mathematician", "Female", "claude-3", "short bio 2", "long bio 2"},
	}
	for i, row := range bioRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("people to test (bio)", cell, &row))
	}

	dir := t.TempDir()
	workbook := filepath.Join(dir, "Prompts.xlsx")
	require.NoError(t, f.SaveAs(workbook))

	s := store.New(store.Config{
		WorkbookPath:    workbook,
		RatingsPath:     filepath.Join(dir, "ratings.xlsx"),
		AssessmentsPath: filepath.Join(dir, "assessments.xlsx"),
	})
	s.Reload()

	router := gin.New()
	SetupRoutes(router, handlers.NewHandlers(s))
	return router, s
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	router, s := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "genealogy-api", body["service"])
	assert.Equal(t, s.WorkbookPath(), body["data_source"])
	assert.Equal(t, float64(2), body["people_count"])
}

func TestListPeople(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodGet, "/api/genealogy/people", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	data := body["data"].([]any)
	first := data[0].(map[string]any)
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Ada Lovelace", first["name"])
	assert.Equal(t, "Mathematician | Female", first["position"])
}

func TestGetPerson(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("found", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/people/2", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		person := body["data"].(map[string]any)
		assert.Equal(t, "Mary Somerville", person["name"])
	})

	t.Run("unknown id", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/people/99", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Person not found", body["error"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/people/ada", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetLineage(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("found", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/lineage/Ada%20Lovelace", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Ada Lovelace", body["scientist"])
		lineage := body["lineage"].(map[string]any)
		assert.Equal(t, float64(1), lineage["person_id"])
		assert.Len(t, lineage["direct_supervisor"], 1)
	})

	t.Run("unknown scientist", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/lineage/Nobody", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "No lineage data found for scientist: Nobody", body["error"])
	})
}

func TestGetQuestions(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("derived question", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/questions/Ada%20Lovelace", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		require.Equal(t, float64(1), body["count"])
		question := body["questions"].([]any)[0].(map[string]any)
		assert.Equal(t, "Mary Somerville", question["other_person"])
		assert.Equal(t, "supervised_by", question["relationship_type"])
		assert.Equal(t, "B_supervises_A", question["expected_answer"])
		assert.Equal(t, "1835", question["year"])
	})

	t.Run("unknown scientist gets empty list", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/questions/Nobody", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(0), body["count"])
		assert.Empty(t, body["questions"])
	})
}

func TestReloadEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performRequest(router, http.MethodPost, "/api/genealogy/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Data reloaded successfully", body["message"])
	assert.Equal(t, float64(2), body["count"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBiographyEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)

	t.Run("scientists", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/scientists", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("models", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/models", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		models := body["models"].([]any)
		assert.Equal(t, []any{"gpt-4", "claude-3"}, models)
	})

	t.Run("scientists for model", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/models/claude-3/scientists", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})

	t.Run("all models for scientist", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/Ada%20Lovelace", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		biography := body["biography"].(map[string]any)
		assert.Len(t, biography, 2)
	})

	t.Run("single model", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/Ada%20Lovelace/claude-3", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		biography := body["biography"].(map[string]any)
		assert.Equal(t, "short bio 2", biography["minimal_biography"])
	})

	t.Run("unknown model falls back", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/Ada%20Lovelace/gemini", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		biography := body["biography"].(map[string]any)
		assert.Equal(t, "gpt-4", biography["model"])
	})

	t.Run("unknown scientist", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/biography/Nobody", "")
		require.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "No biography data found for scientist: Nobody", body["error"])
	})
}

func TestSaveRatingEndpoint(t *testing.T) {
	router, s := setupTestRouter(t)

	t.Run("empty body", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/ratings", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "No rating data provided", body["error"])
	})

	t.Run("missing required field", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/ratings", `{"id":"r-0"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["success"])
	})

	t.Run("scientist name derived from prompt", func(t *testing.T) {
		payload := `{
			"id": "r-1",
			"model": "gpt-4",
			"technique": "minimal",
			"prompt": "Ada Lovelace — Tell me about this scientist",
			"response": "A mathematician.",
			"ratings": [{"category": "affiliation", "score": 5}],
			"timestamp": "2026-08-30T10:00:00Z"
		}`
		w := performRequest(router, http.MethodPost, "/api/ratings", payload)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Rating saved successfully", body["message"])
		assert.Equal(t, "r-1", body["id"])
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

		ratings := s.Ratings()
		require.Len(t, ratings, 1)
		assert.Equal(t, "Ada Lovelace", ratings[0].ScientistName)
		assert.Equal(t, 5, ratings[0].AffiliationScore)
	})

	t.Run("listing", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/ratings", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})
}

func TestSaveAssessmentEndpoint(t *testing.T) {
	router, s := setupTestRouter(t)

	t.Run("empty body", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/genealogy/assessments", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "No assessment data provided", body["error"])
	})

	t.Run("missing required field", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/genealogy/assessments",
			`{"id":"a-0","person_name":"Ada Lovelace"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("saved", func(t *testing.T) {
		payload := `{
			"id": "a-1",
			"person_name": "Ada Lovelace",
			"supervisors": "Mary Somerville",
			"supervisees": "None",
			"source_url": "https://example.org/ada",
			"timestamp": "2026-08-30T10:00:00Z"
		}`
		w := performRequest(router, http.MethodPost, "/api/genealogy/assessments", payload)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Genealogy assessment saved successfully", body["message"])
		require.Len(t, s.Assessments(), 1)
	})

	t.Run("listing", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/genealogy/assessments", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
	})
}
