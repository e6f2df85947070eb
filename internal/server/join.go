package server

import (
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/keitagame/shinya-irc/internal/mask"
)

func (s *Server) handleJoin(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		c.send(ircmsg.ErrNeedMoreParams, "JOIN", "Not enough parameters")
		return
	}

	names := strings.Split(m.Params[0], ",")
	var keys []string
	if len(m.Params) > 1 {
		keys = strings.Split(m.Params[1], ",")
	}

	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := ""
		if i < len(keys) {
			key = keys[i]
		}
		s.joinOne(c, name, key)
	}
}

func (s *Server) joinOne(c *Client, name, key string) {
	if !isValidChannel(name) {
		c.send(ircmsg.ErrNoSuchChannel, name, "No such channel")
		return
	}

	canon := canonicalizeChannel(name)
	if _, already := c.Channels[canon]; already {
		return
	}

	ch := s.getOrCreateChannel(name)
	nickCanon := canonicalizeNick(c.Nick)

	// Gate order is fixed: limit, key, invite, ban.
	if ch.hasMode('l') && ch.Limit != 0 && len(ch.Members) >= ch.Limit {
		c.send(ircmsg.ErrChannelIsFull, name, "Cannot join channel (+l)")
		return
	}
	if ch.hasMode('k') && ch.Key != "" && key != ch.Key {
		c.send(ircmsg.ErrBadChannelKey, name, "Cannot join channel (+k)")
		return
	}
	if ch.hasMode('i') && !ch.isInvited(nickCanon) {
		c.send(ircmsg.ErrInviteOnlyChan, name, "Cannot join channel (+i)")
		return
	}
	for _, banMask := range ch.Bans {
		if mask.Match(banMask, c.mask()) {
			c.send(ircmsg.ErrBannedFromChan, name, "Cannot join channel (+b)")
			return
		}
	}

	first := len(ch.Members) == 0
	ch.Members[nickCanon] = c
	c.Channels[canon] = struct{}{}
	if first {
		ch.Ops[nickCanon] = struct{}{}
	}

	s.broadcastToChannel(ch, c, true, "JOIN", ch.Name)

	if ch.Topic == "" {
		c.send(ircmsg.RplNoTopic, ch.Name, "No topic is set")
	} else {
		c.send(ircmsg.RplTopic, ch.Name, ch.Topic)
	}
	s.sendNames(c, ch)
}
