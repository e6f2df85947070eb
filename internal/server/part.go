package server

import (
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

func (s *Server) handlePart(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		c.send(ircmsg.ErrNeedMoreParams, "PART", "Not enough parameters")
		return
	}

	reason := c.Nick
	if len(m.Params) > 1 {
		reason = m.Params[1]
	}

	for _, name := range strings.Split(m.Params[0], ",") {
		s.partOne(c, name, reason)
	}
}

func (s *Server) partOne(c *Client, name, reason string) {
	ch, ok := s.getChannel(name)
	if !ok {
		c.send(ircmsg.ErrNoSuchChannel, name, "No such channel")
		return
	}
	if _, member := c.Channels[canonicalizeChannel(name)]; !member {
		c.send(ircmsg.ErrNotOnChannel, name, "You're not on that channel")
		return
	}

	s.broadcastToChannel(ch, c, true, "PART", ch.Name, reason)
	s.removeFromChannel(c, ch)
}
