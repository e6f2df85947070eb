// Package transport adapts a WebSocket connection to the server.Conn
// interface the protocol engine drives. It owns framing, the
// ping/pong keepalive, and the HTTP upgrade -- everything downstream of
// the wire, nothing about IRC semantics.
package transport

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxFrameBytes  = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Conn wraps one upgraded WebSocket connection. It implements
// server.Conn without importing internal/server, keeping the transport
// package free of protocol-layer dependencies.
type Conn struct {
	ws     *websocket.Conn
	remote string

	pingStop chan struct{}
}

// Upgrade promotes an HTTP request to a WebSocket connection and starts
// its keepalive ping loop.
func Upgrade(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "websocket upgrade")
	}

	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	c := &Conn{
		ws:       ws,
		remote:   remote,
		pingStop: make(chan struct{}),
	}

	ws.SetReadLimit(maxFrameBytes)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	go c.pingLoop()

	return c, nil
}

func (c *Conn) pingLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.pingStop:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// ReadFrame blocks for the next text frame. Binary frames are skipped;
// ping/pong frames are handled inside gorilla, and a close frame ends the
// read with an error.
func (c *Conn) ReadFrame() (string, error) {
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			return "", errors.Wrap(err, "websocket read")
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

func (c *Conn) WriteFrame(frame string) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		return errors.Wrap(err, "websocket write")
	}
	return nil
}

func (c *Conn) Close() error {
	close(c.pingStop)
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return c.ws.Close()
}

func (c *Conn) RemoteAddr() string {
	return c.remote
}
