// Package main provides a terminal chat client for the consultant WebSocket server.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/melisasvr/Agile-Project-Consultant/internal/domain"
	"github.com/melisasvr/Agile-Project-Consultant/internal/protocol"
)

// Client represents a WebSocket chat client.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	done      chan struct{}
}

// NewClient creates a new client and connects to the server.
func NewClient(addr string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return &Client{
		conn: conn,
		done: make(chan struct{}),
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	close(c.done)
	return c.conn.Close()
}

// SendHello sends a hello message and waits for hello_ack.
func (c *Client) SendHello(sessionID string) error {
	msg := protocol.HelloMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHello,
			Ts:        time.Now().UnixMilli(),
			SessionID: sessionID,
		},
		ClientMeta: map[string]string{
			"client": "consultant-chat",
		},
	}

	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("write hello: %w", err)
	}

	// Wait for hello_ack
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read hello_ack: %w", err)
	}

	var base protocol.BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		return fmt.Errorf("unmarshal hello_ack: %w", err)
	}

	if base.Type == protocol.TypeError {
		var errMsg protocol.ErrorMessage
		json.Unmarshal(data, &errMsg)
		return fmt.Errorf("hello failed: %s - %s", errMsg.Code, errMsg.Message)
	}

	if base.Type != protocol.TypeHelloAck {
		return fmt.Errorf("expected hello_ack, got: %s", base.Type)
	}

	c.sessionID = base.SessionID
	return nil
}

// SendWelcome asks the server for the session greeting.
func (c *Client) SendWelcome() error {
	return c.conn.WriteJSON(protocol.BaseMessage{
		Type:      protocol.TypeWelcome,
		Ts:        time.Now().UnixMilli(),
		SessionID: c.sessionID,
	})
}

// SendAction sends a named action frame.
func (c *Client) SendAction(action string, payload json.RawMessage) error {
	msg := protocol.ActionMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeAction,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
		},
		Action:  action,
		Payload: payload,
	}
	return c.conn.WriteJSON(msg)
}

// SendHistoryRequest asks for the session's conversation history.
func (c *Client) SendHistoryRequest(limit int) error {
	msg := protocol.HistoryRequestMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeHistory,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
		},
		Limit: limit,
	}
	return c.conn.WriteJSON(msg)
}

// SendText sends a free-text message frame.
func (c *Client) SendText(text string) error {
	msg := protocol.TextMessage{
		BaseMessage: protocol.BaseMessage{
			Type:      protocol.TypeMessage,
			Ts:        time.Now().UnixMilli(),
			SessionID: c.sessionID,
		},
		Text: text,
	}
	return c.conn.WriteJSON(msg)
}

// ReadMessages reads and renders messages from the server.
func (c *Client) ReadMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read error: %v", err)
				}
				return
			}

			var base protocol.BaseMessage
			if err := json.Unmarshal(data, &base); err != nil {
				log.Printf("Unmarshal error: %v", err)
				continue
			}

			switch base.Type {
			case protocol.TypeReply:
				var msg protocol.ReplyMessage
				if err := json.Unmarshal(data, &msg); err != nil {
					log.Printf("Unmarshal error: %v", err)
					continue
				}
				renderReply(msg.Reply)
			case protocol.TypeHistoryPage:
				var msg protocol.HistoryPageMessage
				if err := json.Unmarshal(data, &msg); err != nil {
					log.Printf("Unmarshal error: %v", err)
					continue
				}
				fmt.Printf("\n-- history (%d turns) --\n", len(msg.Turns))
				for _, turn := range msg.Turns {
					fmt.Printf("[%s] %s\n", turn.Role, turn.Content)
				}
				fmt.Print("> ")
			case protocol.TypeError:
				var msg protocol.ErrorMessage
				json.Unmarshal(data, &msg)
				fmt.Printf("\n[error] %s: %s\n> ", msg.Code, msg.Message)
			default:
				formatted, _ := json.MarshalIndent(json.RawMessage(data), "", "  ")
				fmt.Printf("\n[%s] Received:\n%s\n> ", base.Type, string(formatted))
			}
		}
	}
}

// renderReply pretty prints one reply structure.
func renderReply(r domain.Reply) {
	switch r.Kind {
	case domain.ReplyText:
		fmt.Printf("\nagent: %s\n> ", r.Text)
	case domain.ReplyChoiceCard:
		fmt.Printf("\n-- %s --\n", r.Choice.Title)
		for _, b := range r.Choice.Buttons {
			fmt.Printf("  [%s]  (/do %s)\n", b.Label, b.Action)
		}
		fmt.Print("> ")
	case domain.ReplyFormPanel:
		fmt.Printf("\n== %s ==\n%s\n", r.Form.Title, r.Form.Description)
		for _, f := range r.Form.Fields {
			fmt.Printf("  %s: %s\n", f.QuestionID, f.Prompt)
			if len(f.Options) > 0 {
				fmt.Printf("    options: %s\n", strings.Join(f.Options, " | "))
			}
		}
		fmt.Printf("  submit with: /submit {\"question_id\": \"answer\", ...}\n> ")
	case domain.ReplySectionCard:
		fmt.Printf("\n== %s ==\n", r.Card.Title)
		if r.Card.Description != "" {
			fmt.Printf("%s\n", r.Card.Description)
		}
		for _, s := range r.Card.Sections {
			fmt.Printf("\n%s\n  %s\n", s.Title, s.Body)
		}
		for _, b := range r.Card.Buttons {
			fmt.Printf("  [%s]  (/do %s)\n", b.Label, b.Action)
		}
		fmt.Print("> ")
	case domain.ReplyFieldErrors:
		fmt.Println("\nThe assessment could not be accepted:")
		for _, fe := range r.FieldErrors {
			fmt.Printf("  %s: %s\n", fe.QuestionID, fe.Message)
		}
		fmt.Print("> ")
	default:
		fmt.Printf("\n[reply:%s]\n> ", r.Kind)
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket server address")
	sessionID := flag.String("session", "", "Session ID to resume (omit for a new session)")
	flag.Parse()

	log.SetFlags(log.Ltime)

	fmt.Printf("Connecting to %s...\n", *addr)

	client, err := NewClient(*addr)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	fmt.Println("Connected. Sending hello...")

	if err := client.SendHello(*sessionID); err != nil {
		log.Fatalf("Hello failed: %v", err)
	}

	fmt.Printf("Session established: %s\n", client.sessionID)
	fmt.Println("\nType a message and press Enter to send.")
	fmt.Println("Commands: /assess, /steps, /history, /do <action>, /submit <json>, /quit")
	fmt.Println()

	// Start reading messages in background
	go client.ReadMessages()

	if err := client.SendWelcome(); err != nil {
		log.Fatalf("Welcome failed: %v", err)
	}

	// Handle Ctrl+C
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	// Read user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		select {
		case <-interrupt:
			fmt.Println("\nInterrupted")
			return
		default:
			if !scanner.Scan() {
				return
			}

			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}

			var err error
			switch {
			case input == "/quit":
				fmt.Println("Bye!")
				return
			case input == "/assess":
				err = client.SendAction(string(domain.ActionStartAssessment), nil)
			case input == "/steps":
				err = client.SendAction(string(domain.ActionShowSteps), nil)
			case input == "/history":
				err = client.SendHistoryRequest(0)
			case strings.HasPrefix(input, "/submit "):
				raw := strings.TrimSpace(strings.TrimPrefix(input, "/submit"))
				err = client.SendAction(string(domain.ActionSubmitAssessment), json.RawMessage(raw))
			case strings.HasPrefix(input, "/do "):
				action := strings.TrimSpace(strings.TrimPrefix(input, "/do"))
				err = client.SendAction(action, nil)
			default:
				err = client.SendText(input)
			}

			if err != nil {
				log.Printf("Send error: %v", err)
			}
		}
	}
}
