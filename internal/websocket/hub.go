// Package websocket pushes translation-changed events to connected
// clients, so translation UIs can refresh without polling.
package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is a message broadcast to every connected client.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ToJSON serializes the event, falling back to a minimal payload on error.
func (e Event) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"type":"error"}`)
	}
	return data
}

// Hub maintains the set of active clients and broadcasts events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *logrus.Logger
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}
}

// Run handles client registration and broadcasting until the process exits.
func (h *Hub) Run() {
	h.logger.Info("WebSocket hub started")
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.WithFields(logrus.Fields{
		"client_id":         client.ID,
		"connected_clients": len(h.clients),
	}).Info("WebSocket client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.WithFields(logrus.Fields{
			"client_id":         client.ID,
			"connected_clients": len(h.clients),
		}).Info("WebSocket client disconnected")
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Slow consumer; drop the event rather than block the hub.
			h.logger.WithField("client_id", client.ID).Warn("WebSocket send buffer full, dropping event")
		}
	}
}

// TranslationsChanged broadcasts that a locale's active translations
// changed. It satisfies the importer's ChangeNotifier.
func (h *Hub) TranslationsChanged(localeID string, translatableIDs []int64) {
	event := Event{
		Type: "translations.changed",
		Data: map[string]interface{}{
			"locale":        localeID,
			"translatables": translatableIDs,
		},
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- event.ToJSON():
	default:
		h.logger.Warn("WebSocket broadcast buffer full, dropping event")
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
