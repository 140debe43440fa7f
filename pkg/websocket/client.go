package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// Client is one websocket connection with a buffered outbox drained by WritePump.
type Client struct {
	id   string
	Conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
	log  *zap.Logger
}

func NewClient(id string, conn *websocket.Conn, buffer int, log *zap.Logger) *Client {
	return &Client{
		id:   id,
		Conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
		log:  log.With(zap.String("conn", id)),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send queues msg without blocking. It reports false when the client is closed or
// its outbox is full.
func (c *Client) Send(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close stops WritePump, which sends a close frame and closes the connection.
func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

// ReadPump delivers every text frame to handle until the connection fails.
func (c *Client) ReadPump(handle func([]byte)) {
	defer c.Conn.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.log.Info("read error", zap.Error(err))
			}
			return
		}
		handle(msg)
	}
}

// WritePump writes queued messages and keepalive pings until Close or a write error.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Info("write error", zap.Error(err))
				return
			}
			c.log.Debug("sent message", zap.ByteString("payload", msg))

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.flush()
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// flush writes whatever is still queued so final notifications reach the peer.
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		default:
			return
		}
	}
}
