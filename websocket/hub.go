package websocket

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub tracks active connections by user id and fans frames out to them.
// A user may hold several connections (two tabs, phone plus desktop).
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *userFrame

	mu sync.Mutex
}

type userFrame struct {
	userID string
	msg    ServerMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *userFrame),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Push sends a frame to every connection the user currently holds.
func (h *Hub) Push(userID string, msg ServerMessage) {
	h.broadcast <- &userFrame{userID: userID, msg: msg}
}

// SendToUser delivers an in-app notification frame, satisfying the
// notifier contract so realtime delivery can sit next to FCM.
func (h *Hub) SendToUser(ctx context.Context, uid, title, body string, data map[string]string) error {
	h.Push(uid, ServerMessage{Type: "notification", Title: title, Body: body, Data: data})
	return nil
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; !ok {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok && conns[client] {
				delete(conns, client)
				close(client.send)
				if len(conns) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()

		case frame := <-h.broadcast:
			h.mu.Lock()
			if conns, ok := h.clients[frame.userID]; ok {
				for client := range conns {
					// Drop the frame when the writer is backed up. The
					// channel is only ever closed on unregister, after the
					// client's streams have stopped producing; a consumer
					// that stopped draining is reaped by the ping deadline.
					select {
					case client.send <- frame.msg:
					default:
						log.Warn().Str("uid", frame.userID).Msg("websocket send buffer full, frame dropped")
					}
				}
			}
			h.mu.Unlock()
		}
	}
}
