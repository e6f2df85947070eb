package server

import (
	"errors"
	"sync"

	"github.com/keitagame/shinya-irc/internal/config"
	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/sirupsen/logrus"
)

// fakeConn is an in-memory Conn used by tests to drive the server
// without a real transport. Reads are fed from inbound; writes land in
// outbound for assertions. Tests run handlers synchronously via
// dispatch rather than through the event loop, so lines() drains the
// owning client's outbound queue itself instead of relying on a running
// writeLoop.
type fakeConn struct {
	mu       sync.Mutex
	inbound  []string
	outbound []string
	addr     string
	closed   bool

	client *Client
}

func newFakeConn(addr string) *fakeConn {
	return &fakeConn{addr: addr}
}

func (f *fakeConn) ReadFrame() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inbound) == 0 {
		return "", errors.New("no more frames")
	}
	line := f.inbound[0]
	f.inbound = f.inbound[1:]
	return line, nil
}

func (f *fakeConn) WriteFrame(s string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outbound = append(f.outbound, s)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) RemoteAddr() string { return f.addr }

// lines drains anything still queued on the client, then returns (and
// clears) everything written so far.
func (f *fakeConn) lines() []string {
	f.drain()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.outbound))
	copy(out, f.outbound)
	f.outbound = nil
	return out
}

func (f *fakeConn) drain() {
	if f.client == nil {
		return
	}
	for {
		select {
		case m, ok := <-f.client.WriteChan:
			if !ok {
				return
			}
			_ = f.WriteFrame(m.Encode())
		default:
			return
		}
	}
}

// newTestServer builds a Server with logging silenced, ready to have
// clients registered directly against its maps without going through
// the goroutine-driven event loop -- tests call dispatch synchronously.
func newTestServer() *Server {
	log := logrus.New()
	log.SetOutput(nowhere{})
	cfg := &config.Config{
		ServerName: "test.shinya",
		Version:    "shinya-irc-test",
		MOTD:       []string{"test server"},
	}
	return New(cfg, log)
}

type nowhere struct{}

func (nowhere) Write(p []byte) (int, error) { return len(p), nil }

// newTestClient attaches a fresh unregistered client, as Accept would.
func newTestClient(s *Server, addr string) (*Client, *fakeConn) {
	conn := newFakeConn(addr)
	c := newClient(s, s.allocID(), conn)
	conn.client = c
	s.Clients[c.ID] = c
	return c, conn
}

// registerClient drives NICK/USER through dispatch and returns the
// resulting registered Client.
func registerClient(s *Server, nick, user string) (*Client, *fakeConn) {
	c, conn := newTestClient(s, nick+".example")
	s.dispatch(c, ircmsg.Message{Command: "NICK", Params: []string{nick}})
	s.dispatch(c, ircmsg.Message{Command: "USER", Params: []string{user, "0", "*", "Real Name"}})
	return c, conn
}
