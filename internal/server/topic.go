package server

import (
	"time"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

func (s *Server) handleTopic(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		c.send(ircmsg.ErrNeedMoreParams, "TOPIC", "Not enough parameters")
		return
	}
	name := m.Params[0]

	ch, ok := s.getChannel(name)
	if !ok {
		c.send(ircmsg.ErrNoSuchChannel, name, "No such channel")
		return
	}

	if len(m.Params) < 2 {
		if ch.Topic == "" {
			c.send(ircmsg.RplNoTopic, ch.Name, "No topic is set")
		} else {
			c.send(ircmsg.RplTopic, ch.Name, ch.Topic)
		}
		return
	}

	if ch.hasMode('t') && !ch.isOp(canonicalizeNick(c.Nick)) {
		c.send(ircmsg.ErrChanOPrivsNeeded, ch.Name, "You're not channel operator")
		return
	}

	ch.Topic = m.Params[1]
	ch.TopicSetter = c.Nick
	ch.TopicTime = time.Now().Unix()
	s.broadcastToChannel(ch, c, true, "TOPIC", ch.Name, ch.Topic)
}
