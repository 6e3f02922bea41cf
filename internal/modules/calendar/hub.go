package calendar

import (
	"log"
	"sync"
	"time"

	"b200/internal/modules/reservation"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

func (c *client) writePing() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub fans day totals out to every connected calendar.
type Hub struct {
	clients map[string]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*client),
	}
}

func (h *Hub) register(id string, conn *websocket.Conn) *client {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[id]; exists && old != nil {
		_ = old.conn.Close()
	}

	c := &client{conn: conn}
	h.clients[id] = c
	return c
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[id]; exists && c != nil {
		_ = c.conn.Close()
		delete(h.clients, id)
	}
}

// Broadcast sends msg to all subscribers and drops the ones that fail.
// It returns how many received it.
func (h *Hub) Broadcast(msg interface{}) int {
	h.mutex.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mutex.RUnlock()

	sent := 0
	for id, c := range targets {
		if err := c.writeJSON(msg); err != nil {
			log.Printf("calendar_ws_send_failed client=%s error=%q", id, err.Error())
			h.Unregister(id)
			continue
		}
		sent++
	}
	return sent
}

// NotifyTotals implements reservation.TotalsNotifier.
func (h *Hub) NotifyTotals(statuses []reservation.DayStatus) {
	if len(statuses) == 0 {
		return
	}
	h.Broadcast(Event{Type: EventDayTotals, Data: statuses})
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.clients {
		if c != nil {
			_ = c.conn.Close()
		}
		delete(h.clients, id)
	}
}
