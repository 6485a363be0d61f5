package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveSwagger(t *testing.T, cfg SwaggerConfig, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name         string
		cfg          SwaggerConfig
		remoteAddr   string
		expectedCode int
	}{
		{"disabled", SwaggerConfig{Enabled: false}, "127.0.0.1:1234", http.StatusNotFound},
		{"no restrictions", SwaggerConfig{Enabled: true}, "203.0.113.9:1234", http.StatusOK},
		{"exact IP allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "127.0.0.1:1234", http.StatusOK},
		{"exact IP denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1"}}, "203.0.113.9:1234", http.StatusForbidden},
		{"CIDR allowed", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.1.2.3:1234", http.StatusOK},
		{"CIDR denied", SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}, "192.168.1.1:1234", http.StatusForbidden},
		{"garbage entries deny all", SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip", "300.0.0.0/8"}}, "127.0.0.1:1234", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveSwagger(t, tt.cfg, tt.remoteAddr)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	_, private, _ := net.ParseCIDR("192.168.0.0/16")
	ips := []net.IP{net.ParseIP("::1")}
	nets := []*net.IPNet{private}

	assert.True(t, isIPAllowed(net.ParseIP("::1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("192.168.44.2"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("8.8.8.8"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
}
