// Package client - client/channel.go
// The push notification channel. One supervising goroutine owns the
// connection lifecycle as an explicit state machine (Disconnected ->
// Connecting -> Connected) and the retry timer: on any failure it waits a
// fixed delay and dials again, forever. No backoff growth, no retry cap —
// a quiet public site would rather reconnect eventually than give up.
package client

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"zeroun-site/logger"
)

// reconnectDelay is the fixed wait between connection attempts.
const reconnectDelay = 5 * time.Second

// ChannelState is the connection state of the push channel.
type ChannelState int32

// channel states
const (
	StateDisconnected ChannelState = iota
	StateConnecting
	StateConnected
)

// Message is one inbound push notification. Type names the content category
// that changed (events, team, gallery, videos, content).
type Message struct {
	Type   string `json:"type"`
	Action string `json:"action"`
}

// wsConn is the slice of *websocket.Conn the channel needs; tests substitute
// their own.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	Close() error
}

// Channel maintains the persistent push connection and fans messages out to
// subscribers.
type Channel struct {
	url        string
	retryDelay time.Duration

	// dialFunc is a seam for tests.
	dialFunc func(url string) (wsConn, error)

	mu     sync.Mutex
	subs   map[int]func(Message)
	nextID int
	state  ChannelState
	conn   wsConn

	done     chan struct{}
	stopOnce sync.Once
}

// Subscription is one registered callback; Cancel stops its delivery.
type Subscription struct {
	ch *Channel
	id int
}

// Cancel deregisters the callback. Once Cancel returns the callback will not
// be invoked again.
func (s *Subscription) Cancel() {
	s.ch.mu.Lock()
	delete(s.ch.subs, s.id)
	s.ch.mu.Unlock()
}

// PushURL maps an http(s) base URL onto the matching ws(s) URL of the push
// endpoint.
func PushURL(baseURL string) string {
	wsURL := strings.Replace(baseURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	return strings.TrimRight(wsURL, "/") + "/ws"
}

// Connect starts a channel against the server at baseURL (same value the
// Client takes) and begins dialing immediately.
func Connect(baseURL string) *Channel {
	c := &Channel{
		url:        PushURL(baseURL),
		retryDelay: reconnectDelay,
		subs:       make(map[int]func(Message)),
		done:       make(chan struct{}),
		dialFunc: func(url string) (wsConn, error) {
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
	go c.supervise()
	return c
}

// Subscribe registers a callback for every inbound message. Callbacks run on
// the channel's read goroutine and should be quick.
func (c *Channel) Subscribe(fn func(Message)) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.subs[id] = fn
	return &Subscription{ch: c, id: id}
}

// State returns the current connection state.
func (c *Channel) State() ChannelState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close stops the supervisor and closes any live connection. Subscriptions
// receive nothing after Close returns.
func (c *Channel) Close() {
	c.stopOnce.Do(func() { close(c.done) })
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.subs = make(map[int]func(Message))
	c.state = StateDisconnected
	c.mu.Unlock()
}

// supervise owns the reconnect loop.
func (c *Channel) supervise() {
	for {
		select {
		case <-c.done:
			return
		default:
		}

		c.setState(StateConnecting)
		conn, err := c.dialFunc(c.url)
		if err != nil {
			logger.Warn.Printf("[Channel] dial %s failed: %v", c.url, err)
			c.setState(StateDisconnected)
			if !c.wait() {
				return
			}
			continue
		}

		c.mu.Lock()
		select {
		case <-c.done:
			// closed while dialing
			c.mu.Unlock()
			conn.Close()
			return
		default:
		}
		c.conn = conn
		c.state = StateConnected
		c.mu.Unlock()
		logger.Info.Printf("[Channel] connected to %s", c.url)

		c.readAll(conn)

		c.mu.Lock()
		c.conn = nil
		c.state = StateDisconnected
		c.mu.Unlock()
		conn.Close()

		if !c.wait() {
			return
		}
	}
}

// readAll reads frames until the connection fails. Malformed or untyped
// frames are dropped without touching subscribers.
func (c *Channel) readAll(conn wsConn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Debug.Printf("[Channel] connection lost: %v", err)
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type == "" {
			continue
		}
		c.dispatch(msg)
	}
}

// dispatch invokes every subscriber under the lock, which is what makes
// Subscription.Cancel synchronous: once Cancel holds the lock, the callback
// cannot be running and will never run again.
func (c *Channel) dispatch(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fn := range c.subs {
		fn(msg)
	}
}

func (c *Channel) setState(s ChannelState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// wait sleeps the fixed retry delay; false when the channel was closed.
func (c *Channel) wait() bool {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-c.done:
		return false
	case <-timer.C:
		return true
	}
}
