package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jobbyhq/jobby-api/internal/handlers"
	"github.com/jobbyhq/jobby-api/internal/models"
	"github.com/jobbyhq/jobby-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.JobApplication{}, &models.ApplicationEvent{}))

	h := handlers.NewApplicationHandler(services.NewApplicationService(db))

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/applications", h.Create)
		api.GET("/applications", h.List)
		api.GET("/applications/:id", h.Get)
		api.PUT("/applications/:id", h.Update)
		api.DELETE("/applications/:id", h.Delete)
		api.POST("/applications/:id/transition", h.Transition)
		api.GET("/applications/:id/events", h.Events)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["ok"])
}

func TestCreateApplication(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{
		"company_name": "Acme",
		"role_title":   "SWE",
		"apply_url":    "www.acme.com/jobs",
		"priority":     2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Acme", body["company_name"])
	assert.Equal(t, "APPLIED", body["stage"])
	assert.Equal(t, "PENDING", body["decision"])
	assert.Equal(t, float64(2), body["priority"])
	assert.Equal(t, "https://www.acme.com/jobs", body["apply_url"])
	assert.NotNil(t, body["last_status_at"])
}

func TestCreateApplicationRejections(t *testing.T) {
	r := newTestRouter(t)

	// missing required field fails binding
	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{"company_name": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// whitespace-only company fails validation
	w = doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{
		"company_name": "   ",
		"role_title":   "SWE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// out-of-range priority
	w = doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{
		"company_name": "Acme",
		"role_title":   "SWE",
		"priority":     9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/applications/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/applications/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListWithFilters(t *testing.T) {
	r := newTestRouter(t)

	for _, payload := range []gin.H{
		{"company_name": "Acme", "role_title": "SWE"},
		{"company_name": "Globex", "role_title": "SRE", "stage": "OFFER"},
		{"company_name": "ACME Labs", "role_title": "Data Engineer"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/applications", payload)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/applications?stage=APPLIED", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)

	w = doJSON(t, r, http.MethodGet, "/api/v1/applications?company=acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apps))
	assert.Len(t, apps, 2)

	w = doJSON(t, r, http.MethodGet, "/api/v1/applications?stage=BOGUS", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndTransitionFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/applications", gin.H{
		"company_name": "Acme",
		"role_title":   "SWE",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode(t, w)["id"].(float64)
	idStr := "/api/v1/applications/" + itoa(id)

	// sparse update changes only priority
	w = doJSON(t, r, http.MethodPut, idStr, gin.H{"priority": 5})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(5), body["priority"])
	assert.Equal(t, "Acme", body["company_name"])

	// transition with a note
	w = doJSON(t, r, http.MethodPost, idStr+"/transition", gin.H{
		"stage": "INTERVIEW",
		"note":  "onsite booked",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, w)
	assert.Equal(t, "INTERVIEW", body["stage"])
	assert.Contains(t, body["notes"], "onsite booked")

	// history recorded
	w = doJSON(t, r, http.MethodGet, idStr+"/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "APPLIED", events[0]["from_stage"])
	assert.Equal(t, "INTERVIEW", events[0]["to_stage"])

	// delete returns the record, then it is gone
	w = doJSON(t, r, http.MethodDelete, idStr, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme", decode(t, w)["company_name"])

	w = doJSON(t, r, http.MethodGet, idStr, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransitionNotFound(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/v1/applications/404/transition", gin.H{"stage": "OFFER"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func itoa(f float64) string {
	return strconv.Itoa(int(f))
}
