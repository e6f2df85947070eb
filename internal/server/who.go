package server

import (
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/keitagame/shinya-irc/internal/mask"
)

// handleWho implements WHO <channel|mask>. The channel form lists that
// channel's members; anything else is a glob matched against registered
// nicks. WHO with no argument is a no-op.
func (s *Server) handleWho(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		return
	}
	pattern := m.Params[0]

	if ch, ok := s.getChannel(pattern); ok {
		for canon, member := range ch.Members {
			flags := presenceFlag(member)
			if ch.isOp(canon) {
				flags += "@"
			}
			s.sendWhoLine(c, member, ch.Name, flags)
		}
		c.send(ircmsg.RplEndOfWho, pattern, "End of WHO list")
		return
	}

	for _, peer := range s.Nicks {
		if !mask.Match(pattern, peer.Nick) {
			continue
		}
		s.sendWhoLine(c, peer, "*", presenceFlag(peer))
	}
	c.send(ircmsg.RplEndOfWho, pattern, "End of WHO list")
}

// presenceFlag is H (here) or G (gone) depending on away status.
func presenceFlag(c *Client) string {
	if c.isAway() {
		return "G"
	}
	return "H"
}

func (s *Server) sendWhoLine(c *Client, who *Client, channel, flags string) {
	c.send(ircmsg.RplWhoReply, channel, who.User, who.Host, s.Config.ServerName,
		who.Nick, flags, "0 "+who.RealName)
}

func (s *Server) handleWhois(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		c.send(ircmsg.ErrNeedMoreParams, "WHOIS", "Not enough parameters")
		return
	}
	nick := m.Params[0]
	peer, ok := s.Nicks[canonicalizeNick(nick)]
	if !ok {
		c.send(ircmsg.ErrNoSuchNick, nick, "No such nick/channel")
		return
	}

	c.send(ircmsg.RplWhoisUser, peer.Nick, peer.User, peer.Host, "*", peer.RealName)
	c.send(ircmsg.RplWhoisServer, peer.Nick, s.Config.ServerName, "WebSocket IRCd")

	if len(peer.Channels) > 0 {
		names := make([]string, 0, len(peer.Channels))
		canon := canonicalizeNick(peer.Nick)
		for chName := range peer.Channels {
			ch, ok := s.Channels[chName]
			if !ok {
				continue
			}
			prefix := ""
			if ch.isOp(canon) {
				prefix = "@"
			} else if ch.isVoiced(canon) {
				prefix = "+"
			}
			names = append(names, prefix+ch.Name)
		}
		if len(names) > 0 {
			c.send(ircmsg.RplWhoisChannels, peer.Nick, strings.Join(names, " "))
		}
	}

	c.send(ircmsg.RplEndOfWhois, peer.Nick, "End of WHOIS list")
}
