package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

func TestControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/storefront/cart/views/:viewId/order", "cart"},
		{"/api/v1/storefront/products/:productId/cart", "products"},
		{"/api/v1/storefront/home", "home"},
		{"/api/v1/system/ping", "system"},
		{"/health", "health"},
		{"/swagger/*any", "swagger"},
		{"/api/v2", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, controllerFromRoute(tt.route))
		})
	}
}

func TestProfiling_LabelsRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var labels map[string]string
	capture := func(c *gin.Context) {
		labels = map[string]string{}
		for _, key := range []string{
			telemetry.ProfilingLabelController,
			telemetry.ProfilingLabelRoute,
			telemetry.ProfilingLabelMethod,
		} {
			if v, ok := pprof.Label(c.Request.Context(), key); ok {
				labels[key] = v
			}
		}
		c.Status(http.StatusNoContent)
	}

	router := gin.New()
	router.Use(Profiling(DefaultProfilingConfig()))
	router.POST("/api/v1/storefront/cart/views/:viewId/retry", capture)
	router.GET("/health", capture)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/storefront/cart/views/abc/retry", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, map[string]string{
		"controller": "cart",
		"route":      "/api/v1/storefront/cart/views/:viewId/retry",
		"method":     http.MethodPost,
	}, labels)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, labels)
}

func TestProfiling_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Profiling(ProfilingConfig{}))
	router.GET("/api/v1/storefront/home", func(c *gin.Context) {
		_, ok := pprof.Label(c.Request.Context(), telemetry.ProfilingLabelRoute)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/storefront/home", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
