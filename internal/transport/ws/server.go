// Package ws provides the WebSocket chat transport.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/melisasvr/Agile-Project-Consultant/internal/config"
	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/hub"
	"github.com/melisasvr/Agile-Project-Consultant/internal/protocol"
	"github.com/melisasvr/Agile-Project-Consultant/internal/service"
)

// Server handles WebSocket chat connections.
type Server struct {
	cfg      *config.Config
	hub      *hub.Hub
	service  *service.Service
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, h *hub.Hub, svc *service.Service) *Server {
	return &Server{
		cfg:     cfg,
		hub:     h,
		service: svc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket: %v", err)
		return err
	}

	conn := s.hub.NewConnection(ws)
	if sessionID := c.QueryParam("session_id"); sessionID != "" {
		conn.SessionID = sessionID
	}
	s.hub.Register(conn)

	ws.SetReadLimit(s.cfg.WSMaxMessageLen)

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads messages from the WebSocket connection.
func (s *Server) readPump(conn *hub.Connection) {
	defer func() {
		s.hub.Unregister(conn)
		conn.Close()
	}()

	conn.SetReadDeadline(time.Now().Add(s.cfg.WSReadTimeout))
	conn.Conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(s.cfg.WSReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		s.handleMessage(conn, message)
	}
}

// writePump writes messages to the WebSocket connection.
func (s *Server) writePump(conn *hub.Connection) {
	ticker := time.NewTicker(s.cfg.WSPingInterval)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteTimeout))
			if !ok {
				// Hub closed the channel
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage dispatches incoming frames to the matching handler.
func (s *Server) handleMessage(conn *hub.Connection, data []byte) {
	var baseMsg protocol.BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch baseMsg.Type {
	case protocol.TypeHello:
		s.handleHello(conn, data)
	case protocol.TypeWelcome:
		s.dispatchEvent(conn, &domain.Event{Kind: domain.EventWelcome})
	case protocol.TypeAction:
		s.handleAction(conn, data)
	case protocol.TypeMessage:
		s.handleText(conn, data)
	case protocol.TypeHistory:
		s.handleHistory(conn, data)
	default:
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "unknown message type: "+baseMsg.Type)
	}
}

// handleHello handles the hello handshake message.
func (s *Server) handleHello(conn *hub.Connection, data []byte) {
	var msg protocol.HelloMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "invalid hello message")
		return
	}

	sessionID := msg.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}
	s.hub.BindSession(conn, sessionID)

	ack := protocol.HelloAckMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHelloAck,
			Ts:        time.Now().UnixMilli(),
			SessionID: sessionID,
		},
	}
	s.hub.SendJSONToConnection(conn, ack)

	log.Printf("Hello handshake completed for session: %s", sessionID)
}

func (s *Server) handleAction(conn *hub.Connection, data []byte) {
	var msg protocol.ActionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "invalid action message")
		return
	}
	s.dispatchEvent(conn, &domain.Event{
		Kind:    domain.EventAction,
		Action:  domain.ActionName(msg.Action),
		Payload: msg.Payload,
	})
}

func (s *Server) handleText(conn *hub.Connection, data []byte) {
	var msg protocol.TextMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "invalid text message")
		return
	}
	if msg.Text == "" {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "text is required")
		return
	}
	s.dispatchEvent(conn, &domain.Event{
		Kind: domain.EventMessage,
		Text: msg.Text,
	})
}

func (s *Server) handleHistory(conn *hub.Connection, data []byte) {
	if conn.SessionID == "" {
		s.sendError(conn, protocol.ErrorCodeSessionRequired, "must send hello first")
		return
	}

	var msg protocol.HistoryRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, protocol.ErrorCodeInvalidMessage, "invalid history request")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	turns, err := s.service.History(ctx, conn.SessionID, msg.Limit)
	if err != nil {
		log.Printf("ERROR: failed to load history: %v", err)
		s.sendError(conn, protocol.ErrorCodeInternalError, "failed to load history")
		return
	}
	if turns == nil {
		turns = []domain.Turn{}
	}

	page := protocol.HistoryPageMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHistoryPage,
			Ts:        time.Now().UnixMilli(),
			SessionID: conn.SessionID,
		},
		Turns: turns,
	}
	if err := s.hub.SendJSONToConnection(conn, page); err != nil {
		log.Printf("Failed to send history page: %v", err)
	}
}

// dispatchEvent runs one event through the orchestrator and fans the
// replies out to every connection bound to the session.
func (s *Server) dispatchEvent(conn *hub.Connection, ev *domain.Event) {
	if conn.SessionID == "" {
		s.sendError(conn, protocol.ErrorCodeSessionRequired, "must send hello first")
		return
	}
	ev.SessionID = conn.SessionID

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	replies, err := s.service.HandleEvent(ctx, ev)
	if err != nil {
		log.Printf("ERROR: failed to handle %s event: %v", ev.Kind, err)
		s.sendError(conn, protocol.ErrorCodeInternalError, "failed to handle event")
		return
	}

	for _, reply := range replies {
		out := protocol.ReplyMessage{
			BaseMessage: protocol.BaseMessage{
				Type:      protocol.TypeReply,
				Ts:        time.Now().UnixMilli(),
				SessionID: ev.SessionID,
			},
			Reply: reply,
		}
		if err := s.hub.BroadcastJSON(ev.SessionID, out); err != nil {
			log.Printf("Failed to broadcast reply: %v", err)
		}
	}
}

func (s *Server) sendError(conn *hub.Connection, code, message string) {
	msg := protocol.ErrorMessage{
		BaseMessage: protocol.BaseMessage{
			Type: protocol.TypeError,
			Ts:   time.Now().UnixMilli(),
		},
		Code:    code,
		Message: message,
	}
	if err := s.hub.SendJSONToConnection(conn, msg); err != nil {
		log.Printf("Failed to send error message: %v", err)
	}
}
