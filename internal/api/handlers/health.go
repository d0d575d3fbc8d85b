package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// DonorRegistry describes the configured donor set.
type DonorRegistry interface {
	Donors() []string
	Dispatched() uint64
}

type HealthHandler struct {
	registry DonorRegistry
	started  time.Time
}

type HealthResponse struct {
	Status     string   `json:"status"`
	Timestamp  string   `json:"timestamp"`
	Version    string   `json:"version"`
	Uptime     string   `json:"uptime"`
	Donors     []string `json:"donors"`
	Dispatched uint64   `json:"dispatched"`
}

func NewHealthHandler(registry DonorRegistry) *HealthHandler {
	return &HealthHandler{
		registry: registry,
		started:  time.Now(),
	}
}

// Health godoc
// @Summary Health check endpoint
// @Description Reports the configured donors and how many requests have been dispatched
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().Format(time.RFC3339),
		Version:    Version,
		Uptime:     time.Since(h.started).Round(time.Second).String(),
		Donors:     h.registry.Donors(),
		Dispatched: h.registry.Dispatched(),
	})
}

// Liveness godoc
// @Summary Liveness check endpoint
// @Description Check if the service is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
