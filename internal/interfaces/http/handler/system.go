package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/techstore/storefront/internal/application/cart"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	store     *cart.Store
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. store may be nil.
func NewSystemHandler(version string, store *cart.Store) *SystemHandler {
	return &SystemHandler{
		version:   version,
		store:     store,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Storefront API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemInfo
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      "Storefront API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// PingResponse represents the ping response
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HealthResponse reports process health
// @name HandlerHealthResponse
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	CartStore   string `json:"cart_store" example:"ready"`
	CheckedAt   string `json:"checked_at" example:"2026-01-23T12:00:00Z"`
	CartLoading bool   `json:"cart_loading"`
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Reports whether the process is up and the cart state store is active
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		CartStore: "ready",
		CheckedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if h.store == nil {
		resp.CartStore = "disabled"
		c.JSON(http.StatusOK, resp)
		return
	}
	if _, err := h.store.Count(); err != nil {
		resp.Status = "unhealthy"
		resp.CartStore = "inactive"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.CartLoading = h.store.Loading()
	c.JSON(http.StatusOK, resp)
}
