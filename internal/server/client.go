package server

import (
	"fmt"
	"time"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/keitagame/shinya-irc/internal/mask"
	"golang.org/x/time/rate"
)

// Client holds state about a single live connection, registered or not.
//
// Channels holds the canonicalized keys of channels this client has
// joined, not channel references -- the registry is the sole owner of
// Channel objects, and lookups go through Server.Channels.
type Client struct {
	Conn Conn

	WriteChan chan ircmsg.Message

	ID   uint64
	Host string

	Registered bool
	nickSet    bool
	userSet    bool

	// closed is owned by the event loop: set once by cleanupClient, it
	// makes teardown idempotent and fences off messages from a
	// connection that is already gone.
	closed bool

	Nick     string
	User     string
	RealName string

	Channels map[string]struct{}
	Modes    map[byte]struct{}

	AwayMsg string

	Signon       time.Time
	LastActivity time.Time

	limiter *rate.Limiter

	server *Server
}

func newClient(s *Server, id uint64, conn Conn) *Client {
	now := time.Now()
	return &Client{
		Conn:         conn,
		WriteChan:    make(chan ircmsg.Message, 256),
		ID:           id,
		Host:         conn.RemoteAddr(),
		Nick:         "*",
		Channels:     make(map[string]struct{}),
		Modes:        make(map[byte]struct{}),
		Signon:       now,
		LastActivity: now,
		limiter:      rate.NewLimiter(rate.Limit(10), 20),
		server:       s,
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("%d(%s) %s", c.ID, c.Nick, c.Conn.RemoteAddr())
}

// mask renders nick!user@host, the origin prefix for anything this client
// originates.
func (c *Client) mask() string {
	return mask.Hostmask(c.Nick, c.User, c.Host)
}

func (c *Client) isOperator() bool {
	_, ok := c.Modes['o']
	return ok
}

func (c *Client) isAway() bool {
	return c.AwayMsg != ""
}

// send queues an outbound message from the server itself (prefix is the
// server name). Numerics get the client's current nick (or "*" before
// registration) inserted as the first parameter.
func (c *Client) send(command string, params ...string) {
	if ircmsg.IsNumeric(command) {
		nick := "*"
		if c.Nick != "" && c.Nick != "*" {
			nick = c.Nick
		}
		params = append([]string{nick}, params...)
	}
	c.queue(ircmsg.Message{
		Prefix:  c.server.Config.ServerName,
		Command: command,
		Params:  params,
	})
}

// sendFrom queues an outbound message whose origin is another client (or
// this one) -- JOIN/PART/PRIVMSG/NICK/QUIT/etc echoes.
func (c *Client) sendFrom(origin *Client, command string, params ...string) {
	c.queue(ircmsg.Message{
		Prefix:  origin.mask(),
		Command: command,
		Params:  params,
	})
}

func (c *Client) queue(m ircmsg.Message) {
	select {
	case c.WriteChan <- m:
	default:
		// Overloaded outbound queue: drop rather than block the shared
		// event loop on one slow peer.
	}
}
