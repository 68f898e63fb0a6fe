package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psycenter/internal/metrics"
)

func TestPrometheusMetrics_CountsByRouteAndStatus(t *testing.T) {
	e := echo.New()
	e.Use(PrometheusMetrics)
	e.GET("/api/programs/:id", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "Program not found"})
	})
	e.GET("/api/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/programs/:id", "404"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/programs/abc", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	after := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/programs/:id", "404"))
	assert.Equal(t, before+1, after)

	beforeTeapot := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/boom", "418"))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, beforeTeapot+1, testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/boom", "418")))
}
