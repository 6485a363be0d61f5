package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/techstore/storefront/internal/application/cart"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/", h)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	h := NewSystemHandler("1.2.3", nil)

	info := decodeOK[SystemInfoResponse](t, serve(h.GetSystemInfo))

	assert.Equal(t, "Storefront API", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
}

func TestSystemHandler_Ping(t *testing.T) {
	h := NewSystemHandler("dev", nil)

	pong := decodeOK[PingResponse](t, serve(h.Ping))

	assert.Equal(t, "pong", pong.Message)
	assert.NotEmpty(t, pong.Timestamp)
}

func TestSystemHandler_Health(t *testing.T) {
	f := newFixture(t)

	t.Run("active store", func(t *testing.T) {
		w := serve(NewSystemHandler("dev", f.store).Health)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "ready", resp.CartStore)
	})

	t.Run("store torn down", func(t *testing.T) {
		store := cart.NewStore(nil, zap.NewNop())

		w := serve(NewSystemHandler("dev", store).Health)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "inactive", resp.CartStore)
	})

	t.Run("no store", func(t *testing.T) {
		w := serve(NewSystemHandler("dev", nil).Health)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
