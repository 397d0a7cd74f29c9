// Package http exposes the ops endpoints.
package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iprilbot/ipril/internal/service"
)

// StatsSource provides the counters served by the stats endpoint.
type StatsSource interface {
	Stats(ctx context.Context) (service.Stats, error)
}

// Handler serves the ops HTTP routes.
type Handler struct {
	stats StatsSource
}

// NewHandler creates a Handler.
func NewHandler(stats StatsSource) *Handler {
	return &Handler{stats: stats}
}

// RegisterRoutes registers the ops routes on e.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
	e.GET("/v1/stats", h.Stats)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Stats returns session and archive counters.
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.stats.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}
