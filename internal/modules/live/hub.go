package live

import (
	"sync"
	"time"

	"hostelfinder/internal/logging"
	"hostelfinder/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to connected subscribers. Each connection has its own
// writer goroutine, so a stuck client only fills its own buffer and is then dropped.
type Hub struct {
	connections map[string]*client
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*client),
	}
}

// Register starts the writer for conn and returns its id.
func (h *Hub) Register(conn *websocket.Conn) string {
	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}

	h.mutex.Lock()
	h.connections[c.id] = c
	n := len(h.connections)
	h.mutex.Unlock()

	metrics.LiveConnections.Set(float64(n))
	go c.writePump(h)
	return c.id
}

func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	c, exists := h.connections[id]
	if exists {
		delete(h.connections, id)
		close(c.send)
	}
	n := len(h.connections)
	h.mutex.Unlock()

	if exists {
		metrics.LiveConnections.Set(float64(n))
	}
}

// Publish satisfies the booking and review event sinks.
func (h *Hub) Publish(ev Event) {
	h.Broadcast(ev)
}

// Broadcast queues ev for every subscriber and returns how many accepted it.
// Subscribers with a full buffer are disconnected.
func (h *Hub) Broadcast(ev Event) int {
	payload, err := json.Marshal(ev)
	if err != nil {
		logging.Error().Err(err).Str("type", ev.Type).Msg("encode live event")
		return 0
	}

	var (
		delivered int
		slow      []string
	)
	h.mutex.RLock()
	for id, c := range h.connections {
		select {
		case c.send <- payload:
			delivered++
		default:
			slow = append(slow, id)
		}
	}
	h.mutex.RUnlock()

	for _, id := range slow {
		logging.Warn().Str("conn_id", id).Msg("dropping slow live subscriber")
		h.Unregister(id)
	}

	metrics.LiveEventsSent.WithLabelValues(ev.Type).Inc()
	return delivered
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, c := range h.connections {
		close(c.send)
		delete(h.connections, id)
	}
	metrics.LiveConnections.Set(0)
}

// writePump owns all writes to the connection.
func (c *client) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.Unregister(c.id)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unregister(c.id)
				return
			}
		}
	}
}
