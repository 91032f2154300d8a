package server

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"partyhost/internal/net"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	maxMessageSize = 1024
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // trusted local network
	},
}

// Hub owns the websocket connections. Read pumps decode client frames and
// enqueue them onto the core; the simulation goroutine hands each tick's
// snapshot to Publish, which fans it out. The hub never touches seats,
// cursors or game state directly.
type Hub struct {
	core *Core

	mu      sync.Mutex
	clients map[string]*client

	latest atomic.Pointer[[]byte]
}

type client struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	lastSeen atomic.Int64 // unix millis
}

// ClientInfo is the diagnostics view of one connection. Seat bindings are
// simulation-owned state and deliberately not reported here.
type ClientInfo struct {
	ID       string `json:"id"`
	LastSeen int64  `json:"last_seen"`
}

func NewHub(core *Core) *Hub {
	return &Hub{
		core:    core,
		clients: make(map[string]*client),
	}
}

// HandleWS upgrades the connection and registers it as a seatless client.
// Seat binding only happens once the client sends hello.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	c.lastSeen.Store(time.Now().UnixMilli())

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	// New connections see the last published snapshot right away instead
	// of waiting out the tick.
	if data := h.latest.Load(); data != nil {
		c.send <- *data
	}

	go h.writePump(c)
	go h.readPump(c)

	log.Printf("client %s connected", c.id)
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.drop(c)
		h.core.EnqueueLeave(c.id)
		log.Printf("client %s disconnected", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("client %s read: %v", c.id, err)
			}
			return
		}
		c.lastSeen.Store(time.Now().UnixMilli())

		msg, err := net.DecodeClientMessage(data)
		if err != nil {
			// Malformed or unknown input is dropped without a reply.
			continue
		}
		h.core.Enqueue(c.id, msg)
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Publish stores the tick's snapshot and fans it out to every connection.
// A client whose buffer is full simply misses this tick; the next publish
// carries the full state anyway.
func (h *Hub) Publish(data []byte) {
	h.latest.Store(&data)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

// Diagnostics lists the live connections.
func (h *Hub) Diagnostics() []ClientInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	infos := make([]ClientInfo, 0, len(h.clients))
	for _, c := range h.clients {
		infos = append(infos, ClientInfo{
			ID:       c.id,
			LastSeen: c.lastSeen.Load(),
		})
	}
	return infos
}
