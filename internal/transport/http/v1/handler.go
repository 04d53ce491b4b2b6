// Package v1 provides the versioned REST handlers for the consultant.
package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/sessions/:session_id/welcome", h.Welcome)
	e.POST("/v1/sessions/:session_id/actions/:action", h.Action)
	e.POST("/v1/sessions/:session_id/messages", h.Message)

	e.GET("/v1/sessions/:session_id/questions", h.GetQuestions)
	e.GET("/v1/sessions/:session_id/history", h.GetHistory)
	e.GET("/v1/sessions/:session_id/context", h.GetContext)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
