package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkogan/connect-four/internal/domain"
	"github.com/mkogan/connect-four/pkg/uid"
)

const writeTimeout = 10 * time.Second

// Client wraps one WebSocket connection. The write mutex is required
// because conn.WriteJSON is not safe for concurrent use, and the manager's
// timer callbacks send from other goroutines than the read loop.
type Client struct {
	id   string
	conn *websocket.Conn

	mu       sync.Mutex
	username string
	closed   bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:   uid.NewConnID(),
		conn: conn,
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Username() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.username
}

func (c *Client) setUsername(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.username = username
}

func (c *Client) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

func (c *Client) markClosed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Client) Send(msg domain.ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(msg)
}

// ping shares the write mutex with Send; control frames and JSON frames
// must not interleave on the wire.
func (c *Client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}
