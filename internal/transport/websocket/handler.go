package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkogan/connect-four/internal/domain"
	"github.com/mkogan/connect-four/internal/service/game"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler upgrades HTTP requests and feeds inbound events to the manager.
type Handler struct {
	Manager  *game.Manager
	Upgrader websocket.Upgrader
}

func NewHandler(manager *game.Manager) *Handler {
	return &Handler{
		Manager: manager,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection.
func (h *Handler) handleConnection(conn *websocket.Conn) {
	client := newClient(conn)
	log.Printf("[WS] Client connected: %s", client.ID())

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := client.ping(); err != nil {
				return
			}
		}
	}()

	defer func() {
		client.markClosed()
		h.Manager.HandleDisconnect(client)
		conn.Close()
		log.Printf("[WS] Client disconnected: %s (%s)", client.ID(), client.Username())
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("[WS] Client %s closed unexpectedly: %v", client.ID(), err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			client.Send(domain.ServerMessage{Type: "error", Message: "invalid message format"})
			continue
		}

		h.processMessage(client, msg)
	}
}

// processMessage routes one inbound event.
func (h *Handler) processMessage(client *Client, msg domain.ClientMessage) {
	switch msg.Type {
	case "join_queue":
		if msg.Username == "" {
			client.Send(domain.ServerMessage{Type: "error", Message: "username required"})
			return
		}
		client.setUsername(msg.Username)
		h.Manager.HandleJoinQueue(client, msg.Username)

	case "make_move":
		if msg.Column == nil {
			client.Send(domain.ServerMessage{Type: "move_error", Message: "column required"})
			return
		}
		h.Manager.HandleMove(client, *msg.Column)

	case "reconnect_game":
		if msg.Username == "" {
			client.Send(domain.ServerMessage{Type: "error", Message: "username required"})
			return
		}
		client.setUsername(msg.Username)
		h.Manager.HandleReconnect(client, msg.Username)

	case "get_leaderboard":
		h.Manager.HandleLeaderboard(client)

	default:
		client.Send(domain.ServerMessage{Type: "error", Message: "unknown message type"})
	}
}
