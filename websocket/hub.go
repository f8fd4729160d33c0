// Package websocket pushes content change notifications to connected browsers.
// File: websocket/hub.go
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"zeroun-site/logger"
)

// GLOBALS

// connections tracks all connected clients (for broadcast usage)
var connections = make(map[*connection]bool)

// connectionsMutex synchronises access to the connections map
var connectionsMutex sync.Mutex

// broadcast is a channel for sending messages to all clients
var broadcast = make(chan []byte, 16)

// pingInterval controls how often we ping idle connections
var pingInterval = 30 * time.Second

// writeWait bounds a single frame write
const writeWait = 10 * time.Second

// connection is one browser's socket plus its outbound queue.
type connection struct {
	conn *websocket.Conn
	send chan []byte
}

// Update is the frame pushed whenever a content category changes.
// Type is one of: events, team, gallery, videos, content.
type Update struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

// WEBSOCKET UPGRADE

// The site is public and read-only over this socket, so any origin may listen.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWs is the /ws entry point.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}
	logger.Info.Printf("[ServeWs] WebSocket connected: %v", conn.RemoteAddr())

	c := &connection{conn: conn, send: make(chan []byte, 8)}
	registerConnection(c)

	go c.writeLoop()
	go c.readLoop()
}

func registerConnection(c *connection) {
	connectionsMutex.Lock()
	connections[c] = true
	n := len(connections)
	connectionsMutex.Unlock()
	PublishVisitorConnections(n)
}

func unregisterConnection(c *connection) {
	connectionsMutex.Lock()
	if _, ok := connections[c]; ok {
		delete(connections, c)
		close(c.send)
	}
	n := len(connections)
	connectionsMutex.Unlock()
	PublishVisitorConnections(n)
}

// readLoop drains inbound frames. Clients send nothing we act on; reading is
// only how we notice the peer went away.
func (c *connection) readLoop() {
	defer func() {
		unregisterConnection(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			logger.Debug.Printf("[readLoop] WebSocket closed: %v", err)
			return
		}
	}
}

// writeLoop ships queued broadcast frames and heartbeat pings.
func (c *connection) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warn.Printf("[writeLoop] Failed to send to %v: %v", c.conn.RemoteAddr(), err)
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

// GLOBAL BROADCAST LOOP

// HandleMessages listens for messages on the broadcast channel and distributes
// them to every connection. Run it once, from main.
func HandleMessages() {
	for {
		msg := <-broadcast

		connectionsMutex.Lock()
		conns := make([]*connection, 0, len(connections))
		for c := range connections {
			conns = append(conns, c)
		}
		connectionsMutex.Unlock()

		for _, c := range conns {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("[HandleMessages] Dropping message for slow connection %v", c.conn.RemoteAddr())
			}
		}
	}
}

// Notify broadcasts that a content category changed, so every open page
// re-fetches it.
func Notify(contentType string) {
	msg, err := json.Marshal(Update{Type: contentType, Action: "refresh"})
	if err != nil {
		logger.Error.Printf("[Notify] Error marshalling update: %v", err)
		return
	}
	broadcast <- msg
}
