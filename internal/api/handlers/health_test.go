package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hugh/scoutzos/internal/api/handlers"
	"github.com/hugh/scoutzos/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := handlers.NewHealthHandler(db, nil)

	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest("GET", "/ready", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "ok", rr.Body.String())

	rr = httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest("GET", "/health", nil))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp handlers.HealthResponse
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Services["database"])
	assert.Equal(t, "disabled", resp.Services["redis"])

	sqlDB, _ := db.DB()
	sqlDB.Close()

	rr = httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest("GET", "/health", nil))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.ParseJSONResponse(t, rr, &resp)
	assert.Equal(t, "unhealthy", resp.Services["database"])

	assert.Equal(t, "unhealthy", resp.Status)

	rr = httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest("GET", "/ready", nil))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
