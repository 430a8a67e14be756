package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navein97/weather-app/internal/services/metrics"
)

func TestHTTPMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := metrics.NewMetrics("weather_app")
	r := gin.New()
	r.Use(m.HTTPMiddleware("/weather/:cityName"))
	r.GET("/weather/:cityName", func(c *gin.Context) {
		if c.Param("cityName") == "Atlantis" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/weather/Lviv", "/weather/Lviv", "/weather/Atlantis"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/weather/:cityName", "2xx")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.WeatherRequestsTotal.WithLabelValues("Lviv")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.WeatherErrorsTotal.WithLabelValues("Atlantis", "client_error")), 0)
}

func TestHTTPMiddleware_IgnoresOtherCityRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := metrics.NewMetrics("weather_app")
	r := gin.New()
	r.Use(m.HTTPMiddleware("/weather/:cityName"))
	r.DELETE("/favorites/:cityName", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/favorites/Lviv", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/favorites/:cityName", "2xx")), 0)
	assert.Equal(t, 0, testutil.CollectAndCount(m.WeatherRequestsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(m.WeatherErrorsTotal))
}

func TestHandler_ExposesCacheCollector(t *testing.T) {
	m := metrics.NewMetrics("weather_app")
	collector := metrics.NewPromCollector(m.Registry())
	collector.IncrementCounter("cache_get", "hit")
	collector.ObserveLatency("cache_get", 5*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weather_app_cache_operations_total{operation="cache_get",result="hit"} 1`)
	assert.Contains(t, w.Body.String(), "weather_app_cache_operation_duration_seconds")
}
