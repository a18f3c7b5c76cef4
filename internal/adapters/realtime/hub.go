// Package realtime pushes notifications and storage warnings to browsers over websockets.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hiveportal/internal/domain"
)

// Frame types sent to clients.
const (
	FrameNotification   = "notification"
	FrameStorageWarning = "storage_warning"
)

// Frame is the JSON envelope written to every client.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

var errHubStopped = errors.New("realtime hub stopped")

// Hub keeps the set of connected clients and fans frames out to them.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	mu      sync.RWMutex
	clients map[*Client]bool

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", "addr", client.addr)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements domain.NotificationSink.
func (h *Hub) Publish(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is nil")
	}
	return h.send(ctx, Frame{Type: FrameNotification, Data: n})
}

// StorageWarningRaised implements domain.StorageWarningListener.
func (h *Hub) StorageWarningRaised(w domain.StorageWarning) {
	if err := h.send(context.Background(), Frame{Type: FrameStorageWarning, Data: w}); err != nil {
		h.logger.Warn("could not broadcast storage warning", "key", w.Key, "err", err)
	}
}

func (h *Hub) send(ctx context.Context, f Frame) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", f.Type, err)
	}
	select {
	case h.broadcast <- payload:
		return nil
	case <-h.done:
		return errHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	var slow []*Client
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()
	for _, client := range slow {
		h.logger.Warn("dropping slow websocket client", "addr", client.addr)
		h.remove(client)
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}
