package wsnotify

import (
	"net/http"
	"sync"
	"time"
	"users-api/internal/models"

	"github.com/gorilla/websocket"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

type UserEvent struct {
	Type    string       `json:"type"`
	Payload *models.User `json:"payload"`
}

// Hub fans user change events out to every connected websocket client.
type Hub struct {
	clients  map[*websocket.Conn]bool
	lock     sync.RWMutex
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	return h.upgrader.Upgrade(w, r, nil)
}

func (h *Hub) AddClient(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.clients[conn] = true
}

func (h *Hub) RemoveClient(conn *websocket.Conn) {
	h.lock.Lock()
	defer h.lock.Unlock()
	delete(h.clients, conn)
}

func (h *Hub) ClientCount() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// Broadcast holds the write lock for the whole loop: a websocket.Conn
// allows a single concurrent writer.
func (h *Hub) Broadcast(event interface{}) {
	h.lock.Lock()
	defer h.lock.Unlock()
	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := client.WriteJSON(event); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}

func (h *Hub) NotifyUser(eventType string, user *models.User) {
	h.Broadcast(UserEvent{Type: eventType, Payload: user})
}

func (h *Hub) CloseAll() {
	h.lock.Lock()
	defer h.lock.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
