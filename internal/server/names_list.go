package server

import (
	"strconv"
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

// sendNames emits the RPL_NAMREPLY/RPL_ENDOFNAMES pair for one channel.
func (s *Server) sendNames(c *Client, ch *Channel) {
	names := make([]string, 0, len(ch.Members))
	for canon, member := range ch.Members {
		prefix := ""
		if ch.isOp(canon) {
			prefix = "@"
		} else if ch.isVoiced(canon) {
			prefix = "+"
		}
		names = append(names, prefix+member.Nick)
	}
	c.send(ircmsg.RplNameReply, "=", ch.Name, strings.Join(names, " "))
	c.send(ircmsg.RplEndOfNames, ch.Name, "End of /NAMES list")
}

func (s *Server) handleNames(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		for _, ch := range s.Channels {
			s.sendNames(c, ch)
		}
		return
	}
	for _, name := range strings.Split(m.Params[0], ",") {
		if ch, ok := s.getChannel(name); ok {
			s.sendNames(c, ch)
		}
	}
}

func (s *Server) handleList(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		for _, ch := range s.Channels {
			s.listOne(c, ch)
		}
		c.send(ircmsg.RplListEnd, "End of /LIST")
		return
	}
	for _, name := range strings.Split(m.Params[0], ",") {
		if ch, ok := s.getChannel(name); ok {
			s.listOne(c, ch)
		}
	}
	c.send(ircmsg.RplListEnd, "End of /LIST")
}

func (s *Server) listOne(c *Client, ch *Channel) {
	count := len(ch.Members)
	topic := ch.Topic
	c.send(ircmsg.RplList, ch.Name, strconv.Itoa(count), topic)
}
