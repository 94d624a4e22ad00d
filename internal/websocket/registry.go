package websocket

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jbrusey/llm-council/internal/pkg/logger"
)

var (
	// Registry singleton
	registry *Registry
	once     sync.Once
)

// Registry manages per-conversation WebSocket handlers. Clients subscribe to
// a conversation's progress stream; the council engine broadcasts into it.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]*Handler
}

// GetRegistry returns the WebSocket registry singleton
func GetRegistry() *Registry {
	once.Do(func() {
		registry = &Registry{handlers: make(map[string]*Handler)}
	})
	return registry
}

// HandlerFor returns the handler for a conversation, creating it on demand.
func (r *Registry) HandlerFor(conversationID string) *Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handlers[conversationID]; ok {
		return h
	}
	h := NewHandler()
	r.handlers[conversationID] = h
	return h
}

// lookup returns the handler for a conversation if any client ever subscribed.
func (r *Registry) lookup(conversationID string) *Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers[conversationID]
}

// Handler manages the WebSocket connections subscribed to one conversation.
type Handler struct {
	clients  map[*Client]bool
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// Client represents a WebSocket client connection
type Client struct {
	conn *websocket.Conn
}

// NewHandler creates a new WebSocket handler
func NewHandler() *Handler {
	return &Handler{
		clients: make(map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Origins are enforced by the CORS layer; the browser
				// front-end may be served from a different dev port.
				return true
			},
		},
	}
}

// ServeHTTP upgrades the connection and keeps it registered until it closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade to WebSocket connection",
			logger.String("error", err.Error()))
		return
	}

	client := &Client{conn: conn}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	defer func() {
		conn.Close()
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
	}()

	// Inbound messages are discarded; the stream is broadcast-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends a message to all clients of this handler, dropping clients
// whose connection has gone away.
func (h *Handler) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Dropping WebSocket client after write error",
				logger.String("error", err.Error()))
			client.conn.Close()
			delete(h.clients, client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Handler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
