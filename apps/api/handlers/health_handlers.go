package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports liveness and the gateway mode
type HealthResponse struct {
	Status          string `json:"status"`
	Stage           string `json:"stage,omitempty"`
	Version         string `json:"version,omitempty"`
	GatewayTestMode bool   `json:"gateway_test_mode"`
}

type HealthHandler struct {
	stage    string
	version  string
	testMode bool
}

func NewHealthHandler(stage, version string, testMode bool) *HealthHandler {
	return &HealthHandler{stage: stage, version: version, testMode: testMode}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:          "ok",
		Stage:           h.stage,
		Version:         h.version,
		GatewayTestMode: h.testMode,
	})
}
