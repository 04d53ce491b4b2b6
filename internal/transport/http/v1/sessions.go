package v1

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
)

// GetQuestions returns the assessment question catalog as a form panel.
// GET /v1/sessions/:session_id/questions
func (h *Handler) GetQuestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"form": service.AssessmentForm(),
	})
}

// GetHistory returns the session's conversation history.
// GET /v1/sessions/:session_id/history
func (h *Handler) GetHistory(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	turns, err := h.service.History(ctx, sessionID, limit)
	if err != nil {
		log.Printf("ERROR: failed to get history: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get history"})
	}
	if turns == nil {
		turns = []domain.Turn{}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"history": turns,
	})
}

// GetContext returns the session's stored project context. Mostly useful
// for debugging a conversation.
// GET /v1/sessions/:session_id/context
func (h *Handler) GetContext(c echo.Context) error {
	ctx := c.Request().Context()
	sessionID := c.Param("session_id")

	sess, err := h.service.Session(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: failed to get session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get session"})
	}
	if sess == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id":          sess.SessionID,
		"assessment_complete": sess.AssessmentComplete,
		"project_context":     sess.ProjectContext,
	})
}
