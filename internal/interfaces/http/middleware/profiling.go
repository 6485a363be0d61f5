package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techstore/storefront/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling label middleware.
type ProfilingConfig struct {
	Enabled          bool
	SkipPaths        []string
	SkipPathPrefixes []string
}

// DefaultProfilingConfig skips health checks and the API docs.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:          true,
		SkipPaths:        []string{"/health"},
		SkipPathPrefixes: []string{"/swagger"},
	}
}

// Profiling attaches controller, route and method labels to the request so
// Pyroscope profiles can be filtered per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		route := c.FullPath()
		labels := telemetry.HTTPRequestLabels(controllerFromRoute(route), route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// controllerFromRoute names the resource a route belongs to.
//
//	/api/v1/storefront/cart/views/:viewId/order -> cart
//	/api/v1/storefront/home                     -> home
//	/api/v1/system/ping                         -> system
func controllerFromRoute(route string) string {
	var segments []string
	for _, part := range strings.Split(route, "/") {
		if part == "" || part == "api" || isVersionSegment(part) ||
			strings.HasPrefix(part, ":") || strings.HasPrefix(part, "*") {
			continue
		}
		segments = append(segments, part)
	}
	switch {
	case len(segments) == 0:
		return ""
	case segments[0] == "storefront" && len(segments) > 1:
		return segments[1]
	default:
		return segments[0]
	}
}

// isVersionSegment reports whether s looks like v1, v2, ...
func isVersionSegment(s string) bool {
	if len(s) < 2 || (s[0] != 'v' && s[0] != 'V') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
