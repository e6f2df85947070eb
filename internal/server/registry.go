// Package server implements the IRC protocol engine: registration,
// command dispatch, channel state, and message routing. It knows nothing
// about WebSockets -- it is driven entirely through the Conn interface,
// so internal/transport is its only external collaborator.
package server

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keitagame/shinya-irc/internal/config"
	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	idleTimeBeforePing = 90 * time.Second
	idleTimeBeforeDead = 180 * time.Second
)

// clientMessage pairs a parsed message with the client it arrived from.
type clientMessage struct {
	Client  *Client
	Message ircmsg.Message
}

// Server owns every shared registry: live connections, the nick
// namespace, and the channel namespace. Every mutation to these maps
// happens inside the single goroutine running Serve. Client read
// goroutines only ever send events on a channel; they never touch these
// maps directly.
type Server struct {
	Config *config.Config
	Log    *logrus.Logger

	// Clients holds every live connection, registered or not.
	Clients map[uint64]*Client
	// Nicks holds canonicalized nick -> Client for registered clients only.
	Nicks map[string]*Client
	// Channels holds canonicalized name -> Channel.
	Channels map[string]*Channel

	nextID uint64

	newClientChan  chan *Client
	messageChan    chan clientMessage
	deadClientChan chan *Client

	wg sync.WaitGroup

	startTime time.Time
}

// New builds a Server ready to have connections Accept()ed and Serve()d.
func New(cfg *config.Config, log *logrus.Logger) *Server {
	return &Server{
		Config:         cfg,
		Log:            log,
		Clients:        make(map[uint64]*Client),
		Nicks:          make(map[string]*Client),
		Channels:       make(map[string]*Channel),
		newClientChan:  make(chan *Client, 64),
		messageChan:    make(chan clientMessage, 256),
		deadClientChan: make(chan *Client, 64),
		startTime:      time.Now(),
	}
}

// Accept registers a freshly-accepted connection with the server and
// starts its read/write goroutines. Safe to call concurrently from
// whatever goroutine the transport's listener runs on -- it only ever
// sends on channels the Serve loop consumes.
func (s *Server) Accept(conn Conn) {
	id := s.allocID()
	c := newClient(s, id, conn)

	s.newClientChan <- c

	s.wg.Add(2)
	go s.readLoop(c)
	go s.writeLoop(c)
}

func (s *Server) allocID() uint64 {
	return atomic.AddUint64(&s.nextID, 1)
}

// Serve runs the single-threaded event loop until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return nil

		case c := <-s.newClientChan:
			if c.closed {
				continue
			}
			s.Clients[c.ID] = c
			s.Log.WithFields(logrus.Fields{"client": c.ID, "host": c.Host}).
				Info("accepted connection")

		case c := <-s.deadClientChan:
			s.cleanupClient(c, "Connection closed")

		case cm := <-s.messageChan:
			if cm.Client.closed {
				continue
			}
			cm.Client.LastActivity = time.Now()
			s.dispatch(cm.Client, cm.Message)

		case <-ticker.C:
			s.checkIdleClients()
		}
	}
}

func (s *Server) shutdown() {
	for _, c := range s.Clients {
		s.cleanupClient(c, "Server shutting down")
	}
	s.wg.Wait()
}

// checkIdleClients pings registered clients that have been idle a while
// and disconnects those that stayed idle past the dead window. This is
// the protocol-level heartbeat, distinct from the transport's own
// WebSocket ping/pong.
func (s *Server) checkIdleClients() {
	now := time.Now()
	for _, c := range s.Clients {
		idle := now.Sub(c.LastActivity)

		if !c.Registered {
			if idle > idleTimeBeforeDead {
				s.cleanupClient(c, "Registration timeout")
			}
			continue
		}

		if idle > idleTimeBeforeDead {
			s.cleanupClient(c, fmt.Sprintf("Ping timeout: %d seconds", int(idle.Seconds())))
			continue
		}
		if idle > idleTimeBeforePing {
			c.send("PING", s.Config.ServerName)
		}
	}
}

// readLoop reads frames from the connection, splits and parses them into
// messages, and hands them to the server's event loop.
func (s *Server) readLoop(c *Client) {
	defer s.wg.Done()
	for {
		frame, err := c.Conn.ReadFrame()
		if err != nil {
			s.deadClientChan <- c
			return
		}

		text := ircmsg.DecodeFrame(frame)
		for _, line := range ircmsg.SplitLines(text) {
			if !c.limiter.Allow() {
				continue
			}
			m, ok := ircmsg.ParseLine(line)
			if !ok {
				continue
			}
			s.messageChan <- clientMessage{Client: c, Message: m}
		}
	}
}

// writeLoop drains a client's outbound queue and writes each message as
// its own frame until the queue is closed.
func (s *Server) writeLoop(c *Client) {
	defer s.wg.Done()
	for m := range c.WriteChan {
		if err := c.Conn.WriteFrame(m.Encode()); err != nil {
			s.deadClientChan <- c
			break
		}
	}
	if err := c.Conn.Close(); err != nil {
		s.Log.WithError(errors.Wrap(err, "closing connection")).
			WithField("client", c.ID).Debug("close error")
	}
}
