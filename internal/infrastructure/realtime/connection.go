package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// ErrClosed is returned by Send once the connection has shut down.
var ErrClosed = errors.New("realtime: connection closed")

// Conn is the surface the registry and broadcaster need from a live
// connection. *Connection is the production implementation; tests substitute
// in-memory fakes.
type Conn interface {
	// ID uniquely identifies the connection within the process.
	ID() string
	// Send enqueues payload for delivery, returning an error if the
	// connection is closed or its buffer is exhausted.
	Send(payload []byte) error
	// Close terminates the connection. Safe to call more than once.
	Close(code int, reason string)
}

// Connection wraps a websocket and coordinates outbound writes via a buffered
// channel. A user may hold several connections at once (tabs, devices); each
// is tracked separately in the registry.
type Connection struct {
	id string

	ws    *websocket.Conn
	send  chan []byte
	once  sync.Once
	close chan struct{}
}

var _ Conn = (*Connection)(nil)

// NewConnection wraps an accepted websocket. The connection carries no user
// identity; that is bound later by the authentication handshake.
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		id:    uuid.NewString(),
		ws:    ws,
		send:  make(chan []byte, 128),
		close: make(chan struct{}),
	}
}

func (c *Connection) ID() string { return c.id }

// Start launches the write loop. It must be called exactly once per connection.
func (c *Connection) Start() {
	go c.writeLoop()
}

// Send enqueues payload for delivery. Safe to call concurrently with Close:
// a broadcast iterating a registry snapshot may race the read loop tearing
// the connection down, and must get ErrClosed back rather than a crash.
// If the client is slow and the buffer is full, the connection is closed to
// keep backpressure bounded.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return ErrClosed
	default:
	}
	select {
	case <-c.close:
		return ErrClosed
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errors.New("realtime: connection buffer exceeded")
	}
}

// Close terminates the connection and stops the write loop. The send channel
// is never closed: closing c.close alone ends the write loop, and a closed
// send channel would panic a Send racing this call.
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.close)
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = c.ws.Close()
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.close:
			return
		case msg := <-c.send:
			if err := c.writeMessage(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.writePing(); err != nil {
				return
			}
		}
	}
}

func (c *Connection) writeMessage(payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) writePing() error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.PingMessage, nil)
}
