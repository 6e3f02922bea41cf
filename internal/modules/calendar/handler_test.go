package calendar

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(src TotalsSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(NewService(src))
	h.RegisterRoutes(router.Group("/api/v1"))
	h.RegisterAdminRoutes(router.Group("/api/v1/admin"))
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_UserMonthDefaultsToOpeningMonth(t *testing.T) {
	router := setupRouter(newSource(map[string]int{"2025-10-01": 3}))

	w := get(router, "/api/v1/calendar")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool      `json:"success"`
		Data    MonthView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 10, body.Data.Month)
	assert.Equal(t, ViewUser, body.Data.View)
	c, ok := findCell(&body.Data, "2025-10-01")
	require.True(t, ok)
	assert.Nil(t, c.Tickets)
}

func TestHandler_AdminMonthCarriesCounts(t *testing.T) {
	router := setupRouter(newSource(map[string]int{"2025-10-01": 3}))

	w := get(router, "/api/v1/admin/calendar?year=2025&month=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data MonthView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	c, _ := findCell(&body.Data, "2025-10-01")
	require.NotNil(t, c.Tickets)
	assert.Equal(t, 3, *c.Tickets)
}

func TestHandler_BadQuery(t *testing.T) {
	router := setupRouter(newSource(nil))

	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/calendar?month=oct").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/api/v1/calendar?year=2025&month=0").Code)
}
