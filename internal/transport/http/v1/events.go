package v1

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
)

// Welcome handles the welcome event.
// POST /v1/sessions/:session_id/welcome
func (h *Handler) Welcome(c echo.Context) error {
	ev := &domain.Event{
		Kind:      domain.EventWelcome,
		SessionID: c.Param("session_id"),
	}
	return h.dispatch(c, ev)
}

// Action handles a named action event. The request body, if any, is the
// action payload (the answers mapping for submit_assessment).
// POST /v1/sessions/:session_id/actions/:action
func (h *Handler) Action(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read payload"})
	}

	ev := &domain.Event{
		Kind:      domain.EventAction,
		SessionID: c.Param("session_id"),
		Action:    domain.ActionName(c.Param("action")),
		Payload:   json.RawMessage(payload),
	}
	return h.dispatch(c, ev)
}

// Message handles a free-text event.
// POST /v1/sessions/:session_id/messages
func (h *Handler) Message(c echo.Context) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid message body"})
	}
	if body.Text == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}

	ev := &domain.Event{
		Kind:      domain.EventMessage,
		SessionID: c.Param("session_id"),
		Text:      body.Text,
	}
	return h.dispatch(c, ev)
}

func (h *Handler) dispatch(c echo.Context, ev *domain.Event) error {
	replies, err := h.service.HandleEvent(c.Request().Context(), ev)
	if err != nil {
		log.Printf("ERROR: failed to handle %s event: %v", ev.Kind, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to handle event"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"replies": replies,
	})
}
