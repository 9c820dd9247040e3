// Package sessionhub pushes session lifecycle events (signed_out) to the
// websocket connections of a given user. Clients subscribe after login; when
// a session is revoked every open connection of that user is notified, so
// other devices can drop their local state.
package sessionhub

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/akarpov/memopad/internal/logging"
)

// Event is one session change notification as sent on the wire.
type Event struct {
	Kind   string `json:"event"`
	UserID string `json:"user_id,omitempty"`
}

type targetedEvent struct {
	userID  string
	payload []byte
}

// Hub tracks connected clients per user id and fans events out to them.
type Hub struct {
	mu      sync.Mutex
	rooms   map[string]map[*Client]bool
	logger  logging.Logger
	enqueue chan targetedEvent

	// done is closed when Run returns, so pending channel sends from
	// connection goroutines are released instead of blocking forever
	done chan struct{}

	Register   chan *Client
	Unregister chan *Client
}

func NewHub(logger logging.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger.With("module", "sessionhub"),
		enqueue:    make(chan targetedEvent, 16),
		done:       make(chan struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run processes registrations and event fan-out until ctx is canceled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.rooms[client.userID] == nil {
				h.rooms[client.userID] = make(map[*Client]bool)
			}
			h.rooms[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.rooms[client.userID][client]; ok {
				delete(h.rooms[client.userID], client)
				close(client.send)
				if len(h.rooms[client.userID]) == 0 {
					delete(h.rooms, client.userID)
				}
			}
			h.mu.Unlock()

		case ev := <-h.enqueue:
			h.mu.Lock()
			clients := make([]*Client, 0, len(h.rooms[ev.userID]))
			for client := range h.rooms[ev.userID] {
				clients = append(clients, client)
			}
			h.mu.Unlock()

			for _, client := range clients {
				select {
				case client.send <- ev.payload:
				default:
					// slow consumer, drop it rather than block the hub
					h.logger.Warn(ctx, "client send buffer full, dropping", "user_id", ev.userID)
					go func(c *Client) { h.unregister(c) }(client)
				}
			}

		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return
		}
	}
}

// Broadcast queues ev for delivery to every connection of userID. After the
// hub has stopped the event is dropped.
func (h *Hub) Broadcast(userID string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	select {
	case h.enqueue <- targetedEvent{userID: userID, payload: payload}:
	case <-h.done:
	}
}

// register hands the client to Run. Reports false when the hub has
// already stopped.
func (h *Hub) register(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// unregister removes the client, or returns immediately when the hub has
// already stopped and closeAll took care of all connections.
func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.rooms {
		for client := range clients {
			close(client.send)
			client.conn.Close()
		}
		delete(h.rooms, userID)
	}
}
