package remote

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/macropad/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Outbound messages buffered per connection before it is dropped
	sendBuffer = 16
)

// conn is one connected remote. readPump and writePump each own one side
// of the socket.
type conn struct {
	id   string
	ws   *websocket.Conn
	addr string
	send chan []byte

	// mu guards send against use after close.
	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{
		id:   uuid.NewString(),
		ws:   ws,
		addr: ws.RemoteAddr().String(),
		send: make(chan []byte, sendBuffer),
	}
}

// enqueue queues a reply without blocking. It reports false when the
// connection is too slow and should be dropped.
func (c *conn) enqueue(r Reply) bool {
	data, err := json.Marshal(r)
	if err != nil {
		logging.Error("Failed to encode reply", zap.String("type", r.Type), zap.Error(err))
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// close stops the write pump, which then closes the socket.
func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump decodes requests until the peer goes away.
func (c *conn) readPump(handle func(*conn, Request)) {
	defer func() {
		c.close()
		_ = c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Info("Remote connection error",
					zap.String("conn_id", c.id),
					zap.Error(err),
				)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			logging.Debug("Malformed request",
				zap.String("conn_id", c.id),
				zap.Int("length", len(data)),
				zap.Error(err),
			)
			c.enqueue(ErrorReply(errMalformed))
			continue
		}
		handle(c, req)
	}
}

// writePump sends queued replies and keepalive pings.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
