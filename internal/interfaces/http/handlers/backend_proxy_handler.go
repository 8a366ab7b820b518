package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"iwms-citizen.backend/internal/config"
	"iwms-citizen.backend/pkg/logger"
)

// BackendProxyHandler is a pass-through to the legacy IWMS backend so the
// mobile app can keep hitting a single domain.
type BackendProxyHandler struct {
	cfg    config.UpstreamConfig
	client *http.Client
}

// NewBackendProxyHandler creates a new backend proxy handler
func NewBackendProxyHandler(cfg config.UpstreamConfig) *BackendProxyHandler {
	return &BackendProxyHandler{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Forward relays the request to the configured backend, preserving method,
// path suffix, query string, body and content type.
// ANY /api/v1/backend/*path
func (h *BackendProxyHandler) Forward(c *gin.Context) {
	if h.cfg.BackendBaseURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Backend proxy is not configured",
		})
		return
	}

	target := strings.TrimRight(h.cfg.BackendBaseURL, "/") + c.Param("path")
	if raw := c.Request.URL.RawQuery; raw != "" {
		if strings.Contains(target, "?") {
			target += "&" + raw
		} else {
			target += "?" + raw
		}
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to build upstream request",
		})
		return
	}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		req.Header.Set("Content-Type", ct)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Error(c.Request.Context(), "Backend upstream request failed", zap.Error(err), zap.String("target", target))
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Upstream request failed: " + err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":  "error",
			"message": "Failed to read upstream response",
		})
		return
	}

	status := resp.StatusCode
	if status <= 0 {
		status = http.StatusOK
	}
	c.Data(status, "application/json", respBody)
}
