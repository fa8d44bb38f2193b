package ws

import (
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Event is one server-pushed activity message: an order status change, a new
// chat message or a job-card update.
type Event struct {
	Type string      `json:"type"`
	Room string      `json:"room"`
	Data interface{} `json:"data"`
}

type client struct {
	conn  *websocket.Conn
	send  chan Event
	rooms map[string]bool
}

// Hub tracks connected clients and the rooms they joined. Rooms are plain
// strings: "user:<id>" for a session, "order:<id>" for a viewed order.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]bool
}

var hub = &Hub{rooms: make(map[string]map[*client]bool)}

func UserRoom(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

func OrderRoom(orderID uint) string {
	return fmt.Sprintf("order:%d", orderID)
}

func (h *Hub) join(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]bool)
	}
	h.rooms[room][c] = true
	c.rooms[room] = true
}

func (h *Hub) leave(c *client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(c.rooms, room)
	if members := h.rooms[room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		if members := h.rooms[room]; members != nil {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	close(c.send)
}

// Broadcast delivers an event to every client in a room. Slow clients are
// skipped rather than blocking the sender.
func Broadcast(room string, eventType string, data interface{}) {
	ev := Event{Type: eventType, Room: room, Data: data}
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	for c := range hub.rooms[room] {
		select {
		case c.send <- ev:
		default:
		}
	}
}

// BroadcastToOrder pushes an event to everyone watching an order.
func BroadcastToOrder(orderID uint, eventType string, data interface{}) {
	Broadcast(OrderRoom(orderID), eventType, data)
}

// BroadcastToUser pushes an event to a customer's open sessions.
func BroadcastToUser(userID uint, eventType string, data interface{}) {
	Broadcast(UserRoom(userID), eventType, data)
}
