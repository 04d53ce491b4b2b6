package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/melisasvr/Agile-Project-Consultant/internal/config"
	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/intent"
	"github.com/melisasvr/Agile-Project-Consultant/internal/recommend"
	"github.com/melisasvr/Agile-Project-Consultant/internal/repository"
	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
	"github.com/melisasvr/Agile-Project-Consultant/policy"
	"github.com/melisasvr/Agile-Project-Consultant/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	t.Helper()
	db := helpers.NewTestSQLiteStore(t)
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	engine := recommend.New(policyEngine)
	svc := service.New(db, engine, intent.NewRouter(engine), &config.Config{})
	return NewHandler(svc), db
}

func decodeReplies(t *testing.T, body []byte) []domain.Reply {
	t.Helper()
	var resp struct {
		Replies []domain.Reply `json:"replies"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Replies
}

func TestWelcomeEndpoint(t *testing.T) {
	e := echo.New()
	h, db := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/welcome", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	if err := h.Welcome(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	replies := decodeReplies(t, rec.Body.Bytes())
	if len(replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(replies))
	}

	// The session was created lazily.
	sess, err := db.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess == nil {
		t.Fatalf("expected session created")
	}
}

func TestActionEndpointSubmitAssessment(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"team_size":"1-5 members","goals":["Faster delivery"]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/actions/submit_assessment", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id", "action")
	c.SetParamValues("s1", "submit_assessment")

	if err := h.Action(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	replies := decodeReplies(t, rec.Body.Bytes())
	if len(replies) != 3 {
		t.Fatalf("expected 3 replies, got %d", len(replies))
	}
	if replies[1].Card == nil || replies[1].Card.Title != "Recommended: KANBAN" {
		t.Fatalf("unexpected recommendation reply: %+v", replies[1])
	}
}

func TestMessageEndpointValidation(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/messages", bytes.NewBufferString(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	if err := h.Message(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageEndpointRoutesText(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"text":"how do I improve my estimation"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/s1/messages", bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("session_id")
	c.SetParamValues("s1")

	if err := h.Message(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	replies := decodeReplies(t, rec.Body.Bytes())
	if len(replies) != 1 || replies[0].Kind != domain.ReplyText {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}
