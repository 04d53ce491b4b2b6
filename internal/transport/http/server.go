// Package http provides the HTTP server for the consultant.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
	v1 "github.com/melisasvr/Agile-Project-Consultant/internal/transport/http/v1"
	"github.com/melisasvr/Agile-Project-Consultant/internal/transport/ws"
)

// NewServer creates and configures the HTTP server: the v1 REST surface
// plus the WebSocket chat endpoint.
func NewServer(svc *service.Service, wsServer *ws.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)
	v1Handler.RegisterRoutes(e)

	e.GET("/ws", wsServer.HandleWebSocket)

	return e
}
