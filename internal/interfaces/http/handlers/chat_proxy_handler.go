package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"iwms-citizen.backend/internal/config"
	"iwms-citizen.backend/pkg/logger"
)

// ChatProxyHandler forwards chat prompts to the external AI provider. The
// provider key never leaves the server; clients only send the prompt.
type ChatProxyHandler struct {
	cfg    config.UpstreamConfig
	client *http.Client
}

// NewChatProxyHandler creates a new chat proxy handler
func NewChatProxyHandler(cfg config.UpstreamConfig) *ChatProxyHandler {
	return &ChatProxyHandler{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type chatProxyRequest struct {
	Prompt json.RawMessage `json:"prompt"`
}

// Chat handles the chat passthrough
// POST /api/v1/chat
func (h *ChatProxyHandler) Chat(c *gin.Context) {
	var body chatProxyRequest
	if err := c.ShouldBindJSON(&body); err != nil || len(body.Prompt) == 0 || string(body.Prompt) == "null" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing prompt"})
		return
	}

	if h.cfg.ChatAPIKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI key is not configured on the server"})
		return
	}

	payload, err := json.Marshal(gin.H{
		"model":    h.cfg.ChatModel,
		"messages": body.Prompt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build upstream request"})
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, h.cfg.ChatAPIURL, bytes.NewReader(payload))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build upstream request"})
		return
	}
	req.Header.Set("Authorization", "Bearer "+h.cfg.ChatAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Error(c.Request.Context(), "Chat upstream request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to contact AI provider"})
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to read AI provider response"})
		return
	}

	c.Data(resp.StatusCode, "application/json", respBody)
}
