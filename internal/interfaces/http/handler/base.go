// Package handler implements the storefront HTTP endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techstore/storefront/internal/application/cart"
	"github.com/techstore/storefront/internal/application/catalog"
	"github.com/techstore/storefront/internal/domain/shared"
	"github.com/techstore/storefront/internal/interfaces/http/dto"
	"github.com/techstore/storefront/internal/interfaces/http/middleware"
)

// requestIDKey matches the key set by middleware.RequestID
const requestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithTotal sends a success response for a listing
func (h *BaseHandler) SuccessWithTotal(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithTotal(data, int64(total)))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps application errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var pageErr *catalog.PageError
	if errors.As(err, &pageErr) {
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, pageErr.Message)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	if errors.Is(err, cart.ErrUnknownAction) {
		h.BadRequest(c, "Unknown cart action")
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
