// Package realtime pushes change notifications to connected mobile clients.
// Events carry only the table, action and row id; clients refetch through the
// regular REST endpoints, so a missed event never corrupts their state.
package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mbella/transvoyages/internal/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// safeConn wraps a websocket.Conn with a write mutex.
// gorilla/websocket allows one concurrent writer; this enforces that.
type safeConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *safeConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *safeConn) close() { c.ws.Close() }

// ChangeEvent tells a client that a row changed somewhere.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Action string    `json:"action"`
	ID     uuid.UUID `json:"id"`
	At     time.Time `json:"at"`
}

type Hub struct {
	tokens *auth.Manager
	log    zerolog.Logger

	mu    sync.RWMutex
	conns map[*safeConn]struct{}
}

func NewHub(tokens *auth.Manager, log zerolog.Logger) *Hub {
	return &Hub{tokens: tokens, log: log, conns: make(map[*safeConn]struct{})}
}

// HandleWS upgrades the connection after validating the token query param.
// The websocket handshake cannot carry an Authorization header from browsers,
// so the token travels as ?token=.
func (h *Hub) HandleWS(c *gin.Context) {
	principal, err := h.tokens.Parse(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := &safeConn{ws: ws}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("user_id", principal.UserID.String()).Msg("realtime client connected")

	// Block until the client disconnects.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.close()

	h.log.Debug().Str("user_id", principal.UserID.String()).Msg("realtime client disconnected")
}

// Publish fans an event out to every connected client. Safe for concurrent
// calls; each safeConn serialises its own writes.
func (h *Hub) Publish(table, action string, id uuid.UUID) {
	event := ChangeEvent{Table: table, Action: action, ID: id, At: time.Now()}

	h.mu.RLock()
	conns := make([]*safeConn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(event); err != nil {
			h.log.Warn().Err(err).Msg("realtime write failed")
		}
	}
}
