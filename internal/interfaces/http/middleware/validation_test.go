package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstore/storefront/internal/interfaces/http/dto"
)

type itemURI struct {
	ViewID    string `uri:"viewId" binding:"required,uuid"`
	ProductID string `uri:"productId" binding:"required,max=8"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.POST("/views/:viewId/items/:productId", func(c *gin.Context) {
		var uri itemURI
		if err := c.ShouldBindUri(&uri); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.String(http.StatusOK, "ok")
	})

	t.Run("reports uri field names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/views/not-a-uuid/items/programmingbook303", nil)
		req.Header.Set(RequestIDHeader, "req-v")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-v", resp.Error.RequestID)

		require.Len(t, resp.Error.Details, 2)
		fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
		assert.ElementsMatch(t, []string{"viewId", "productId"}, fields)
	})

	t.Run("passes valid input", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost,
			"/views/0b7e4a52-4a44-4d3c-9f0e-6f7d2a1c9b11/items/tshirt1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `validate:"required"`
		Max      string `validate:"max=3"`
		Min      string `validate:"min=5"`
		UUID     string `validate:"omitempty,uuid"`
		OneOf    string `validate:"omitempty,oneof=add subtract"`
	}

	err := validator.New().Struct(input{Max: "toolong", Min: "ab", UUID: "nope", OneOf: "double"})
	require.Error(t, err)

	got := map[string]string{}
	for _, e := range err.(validator.ValidationErrors) {
		got[e.Field()] = getValidationMessage(e)
	}

	assert.Equal(t, "This field is required", got["Required"])
	assert.Equal(t, "Must be at most 3 characters", got["Max"])
	assert.Equal(t, "Must be at least 5 characters", got["Min"])
	assert.Equal(t, "Invalid UUID format", got["UUID"])
	assert.Equal(t, "Must be one of: add subtract", got["OneOf"])
}
