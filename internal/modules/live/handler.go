package live

import (
	"net/http"
	"time"

	"hostelfinder/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// read-only public feed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/hostels", h.Subscribe)
}

// Subscribe upgrades to a WebSocket and streams hostel events until the client leaves.
//
// Endpoint: GET /ws/hostels
func (h *Handler) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := h.hub.Register(conn)
	log := logging.Ctx(c.Request.Context())
	log.Info().Str("conn_id", id).Msg("live subscriber connected")

	defer func() {
		h.hub.Unregister(id)
		log.Info().Str("conn_id", id).Msg("live subscriber disconnected")
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// inbound messages are ignored; reading keeps pong handling alive and detects close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn_id", id).Msg("live subscriber read error")
			}
			return
		}
	}
}
