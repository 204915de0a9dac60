package httpapi_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/httpapi"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/storage"
)

func init() { gin.SetMode(gin.TestMode) }

func router(t *testing.T, vs ...model.Vacancy) http.Handler {
	t.Helper()
	store := storage.NewMemory()
	if len(vs) > 0 {
		require.NoError(t, store.Insert(context.Background(), vs))
	}
	return httpapi.NewHandler(archive.New(store), nil).Router()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// ── /health ────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	w := get(router(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

// ── /vacancies ─────────────────────────────────────────────────────────────

func TestListVacancies_Empty(t *testing.T) {
	w := get(router(t), "/vacancies")
	require.Equal(t, http.StatusOK, w.Code)

	var body httpapi.VacancyList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
	assert.NotNil(t, body.Vacancies)
}

func TestListVacancies_InsertionOrder(t *testing.T) {
	w := get(router(t,
		model.Vacancy{Title: "first", URL: "u1"},
		model.Vacancy{Title: "second", URL: "u2"},
	), "/vacancies")
	require.Equal(t, http.StatusOK, w.Code)

	var body httpapi.VacancyList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	assert.Equal(t, "first", body.Vacancies[0].Title)
	assert.Equal(t, "second", body.Vacancies[1].Title)
}

// ── /vacancies/export.csv ──────────────────────────────────────────────────

func TestExportCSV_Empty(t *testing.T) {
	w := get(router(t), "/vacancies/export.csv")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCSV(t *testing.T) {
	w := get(router(t, model.Vacancy{Title: "Go", URL: "https://hh.ru/vacancy/1", Roles: []string{"a", "b"}}), "/vacancies/export.csv")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vacancies.csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Название", records[0][0])
	assert.Equal(t, "Go", records[1][0])
	assert.Equal(t, "a, b", records[1][6])
}
