package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/interfaces/http/dto"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
)

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(requestIDKey, "ctx-request-id") },
			expectedID: "ctx-request-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-request-id") },
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)

			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "page error",
			err:     &catalog.PageError{Message: "Failed to load products", Err: errors.New("dial tcp: refused")},
			status:  http.StatusBadGateway,
			code:    dto.ErrCodeUpstreamUnavailable,
			message: "Failed to load products",
		},
		{
			name:    "view not found",
			err:     shared.ErrViewNotFound,
			status:  http.StatusNotFound,
			code:    dto.ErrCodeViewNotFound,
			message: "Cart view not found or expired",
		},
		{
			name:    "wrapped store lifecycle error",
			err:     fmt.Errorf("count: %w", shared.ErrCartStoreNotInitialized),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeCartStoreNotInitialized,
			message: "Cart state store used outside its lifecycle",
		},
		{
			name:   "category required",
			err:    shared.ErrCategoryRequired,
			status: http.StatusBadRequest,
			code:   dto.ErrCodeCategoryRequired,
		},
		{
			name:   "unknown action",
			err:    fmt.Errorf("%w: %q", cart.ErrUnknownAction, "double"),
			status: http.StatusBadRequest,
			code:   dto.ErrCodeBadRequest,
		},
		{
			name:    "unknown error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    dto.ErrCodeInternal,
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(requestIDKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Error.Message)
			}
		})
	}
}

func TestBaseHandler_HandleError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	(&BaseHandler{}).HandleError(c, nil)

	assert.Zero(t, w.Body.Len())
}
