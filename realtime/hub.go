package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/task-manager-app/models"
	"github.com/yeremiapane/task-manager-app/utils"
)

// Event types
const (
	EventNotification = "notification"
	EventUnreadCount  = "unread_count"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks the websocket connections of logged-in users so new
// notifications can be pushed without polling. A user may hold several
// connections (multiple tabs).
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> user id
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]uint),
	}
}

// Register adds a connection for the given user.
func (h *Hub) Register(conn *websocket.Conn, userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = userID
}

// Unregister removes and closes a connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// PushNotification sends a freshly created notification to every
// connection the owning user has open. Delivery is best effort: a dead
// connection is dropped and the write error logged.
func (h *Hub) PushNotification(userID uint, notif models.Notification) {
	h.push(userID, Message{
		Event: EventNotification,
		Data:  notif,
	})
}

// PushUnreadCount notifies a user's clients that their unread counter
// changed.
func (h *Hub) PushUnreadCount(userID uint, count int64) {
	h.push(userID, Message{
		Event: EventUnreadCount,
		Data:  map[string]interface{}{"count": count},
	})
}

func (h *Hub) push(userID uint, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, id := range h.clients {
		if id != userID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("websocket write to user %d failed: %v", userID, err)
			}
			delete(h.clients, conn)
			conn.Close()
		}
	}
}
