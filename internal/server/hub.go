package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/time/rate"

	"github.com/yacobolo/tokenkit/internal/app"
	"github.com/yacobolo/tokenkit/internal/logging"
)

// Message types pushed to live preview clients.
const (
	MessageTheme  = "theme"
	MessageResult = "result"
	MessageError  = "error"
)

// Message is one server-to-client frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ErrorData is the payload of a MessageError frame.
type ErrorData struct {
	Key   string `json:"key,omitempty"`
	Error string `json:"error"`
}

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Client is one connected live preview.
type Client struct {
	id      uint64
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter
	log     *logging.Logger
}

// Hub tracks connected clients and broadcasts theme updates.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	nextID  uint64
	log     *logging.Logger
	metrics *Metrics
}

// NewHub creates an empty hub.
func NewHub(log *logging.Logger, metrics *Metrics) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log,
		metrics: metrics,
	}
}

func (h *Hub) newClient(conn *websocket.Conn, limiter *rate.Limiter) *Client {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.mu.Unlock()

	return &Client{
		id:      id,
		conn:    conn,
		send:    make(chan Message, sendBuffer),
		limiter: limiter,
		log:     h.log.WithFields(map[string]any{"client": id}),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.clients.Inc()
	c.log.Debug("websocket client connected")
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	if ok {
		h.metrics.clients.Dec()
		c.log.Debug("websocket client disconnected")
	}
}

// Broadcast queues msg for every client without blocking. A client whose
// buffer is full misses the frame; the next theme push supersedes it.
func (h *Hub) Broadcast(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			c.log.Warn("client send buffer full, dropping message")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// queue sends msg to this client only, dropping it when the buffer is full.
func (c *Client) queue(msg Message) {
	select {
	case c.send <- msg:
	default:
		c.log.Warn("client send buffer full, dropping reply")
	}
}

// writePump sends queued messages until the channel closes or ctx ends.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, c.conn, msg)
			cancel()
			if err != nil {
				c.log.WithFields(map[string]any{"error": err.Error()}).Debug("websocket write error")
				return
			}
		}
	}
}

// readPump reads client actions until the connection closes. Actions
// beyond the client's rate are answered with an error frame.
func (c *Client) readPump(ctx context.Context, dispatch func(app.Action) (app.Result, error)) {
	for {
		var act app.Action
		if err := wsjson.Read(ctx, c.conn, &act); err != nil {
			var closeErr websocket.CloseError
			if !errors.As(err, &closeErr) && ctx.Err() == nil {
				c.log.WithFields(map[string]any{"error": err.Error()}).Debug("websocket read ended")
			}
			return
		}
		if act.Key == "" {
			c.queue(Message{Type: MessageError, Data: ErrorData{Error: "missing action key"}})
			continue
		}
		if !c.limiter.Allow() {
			c.queue(Message{Type: MessageError, Data: ErrorData{Key: act.Key, Error: "rate limit exceeded"}})
			continue
		}

		res, err := dispatch(act)
		if err != nil {
			c.queue(Message{Type: MessageError, Data: ErrorData{Key: act.Key, Error: err.Error()}})
			continue
		}
		c.queue(Message{Type: MessageResult, Data: res})
	}
}
