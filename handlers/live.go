// handlers/live.go - Live match feed over WebSocket
package handlers

import (
	"sync"
	"time"

	"clubhouse/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 15 * time.Second
	pongWait       = pingPeriod * 2
	sendBufferSize = 64
)

type liveClient struct {
	id   string
	conn *websocket.Conn
	send chan services.MatchEvent
	once sync.Once
}

func (lc *liveClient) close() {
	lc.once.Do(func() { close(lc.send) })
}

// LiveHub fans match events out to every connected WebSocket client.
// It implements services.MatchNotifier.
type LiveHub struct {
	mu      sync.RWMutex
	clients map[string]*liveClient
	closed  bool
}

func NewLiveHub() *LiveHub {
	return &LiveHub{clients: make(map[string]*liveClient)}
}

// Publish queues the event for every client. Clients whose buffer is full
// miss the event rather than stall the caller.
func (h *LiveHub) Publish(event services.MatchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, lc := range h.clients {
		select {
		case lc.send <- event:
		default:
			log.Warn().Str("client", lc.id).Str("event", event.Type).Msg("live client too slow, dropping event")
		}
	}
}

// Clients returns the number of connected clients.
func (h *LiveHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones.
func (h *LiveHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, lc := range h.clients {
		lc.close()
		delete(h.clients, id)
	}
}

func (h *LiveHub) register(lc *liveClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[lc.id] = lc
	return true
}

func (h *LiveHub) unregister(lc *liveClient) {
	h.mu.Lock()
	if cur, ok := h.clients[lc.id]; ok && cur == lc {
		delete(h.clients, lc.id)
	}
	h.mu.Unlock()
	lc.close()
}

// Upgrade rejects plain HTTP requests to the feed endpoint.
func (h *LiveHub) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// Handler serves one client connection until it disconnects.
func (h *LiveHub) Handler() fiber.Handler {
	return websocket.New(h.serve)
}

func (h *LiveHub) serve(conn *websocket.Conn) {
	lc := &liveClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan services.MatchEvent, sendBufferSize),
	}
	if !h.register(lc) {
		conn.Close()
		return
	}
	log.Debug().Str("client", lc.id).Msg("live client connected")

	go h.readPump(lc)
	h.writePump(lc)
	log.Debug().Str("client", lc.id).Msg("live client disconnected")
}

// readPump discards client messages and notices when the peer goes away.
func (h *LiveHub) readPump(lc *liveClient) {
	defer h.unregister(lc)

	lc.conn.SetReadDeadline(time.Now().Add(pongWait))
	lc.conn.SetPongHandler(func(string) error {
		return lc.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := lc.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *LiveHub) writePump(lc *liveClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		lc.conn.Close()
	}()

	for {
		select {
		case event, ok := <-lc.send:
			lc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				lc.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := lc.conn.WriteJSON(event); err != nil {
				log.Debug().Err(err).Str("client", lc.id).Msg("live write failed")
				return
			}

		case <-ticker.C:
			if err := lc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
