package server

import (
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

func (s *Server) handleAway(c *Client, m ircmsg.Message) {
	if len(m.Params) == 0 || m.Params[0] == "" {
		c.AwayMsg = ""
		c.send(ircmsg.RplUnaway, "You are no longer marked as being away")
		return
	}
	c.AwayMsg = m.Params[0]
	c.send(ircmsg.RplNowAway, "You have been marked as being away")
}

func (s *Server) handleIson(c *Client, m ircmsg.Message) {
	var online []string
	for _, nick := range m.Params {
		if peer, ok := s.Nicks[canonicalizeNick(nick)]; ok {
			online = append(online, peer.Nick)
		}
	}
	c.send(ircmsg.RplIson, strings.Join(online, " "))
}

// handleUserhost answers for at most the first five nicks given. '+'
// marks a present user, '-' an away one.
func (s *Server) handleUserhost(c *Client, m ircmsg.Message) {
	nicks := m.Params
	if len(nicks) > 5 {
		nicks = nicks[:5]
	}

	var entries []string
	for _, nick := range nicks {
		peer, ok := s.Nicks[canonicalizeNick(nick)]
		if !ok {
			continue
		}
		away := "+"
		if peer.isAway() {
			away = "-"
		}
		entries = append(entries, peer.Nick+"="+away+peer.User+"@"+peer.Host)
	}
	c.send(ircmsg.RplUserHost, strings.Join(entries, " "))
}
