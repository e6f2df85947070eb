package server

import "github.com/keitagame/shinya-irc/internal/ircmsg"

func (s *Server) handlePrivmsg(c *Client, m ircmsg.Message) {
	s.sendMessage(c, m, "PRIVMSG", true)
}

// handleNotice implements NOTICE, which never triggers an error reply:
// anything PRIVMSG would have rejected is silently dropped.
func (s *Server) handleNotice(c *Client, m ircmsg.Message) {
	s.sendMessage(c, m, "NOTICE", false)
}

func (s *Server) sendMessage(c *Client, m ircmsg.Message, command string, reportErrors bool) {
	if len(m.Params) < 2 || m.Params[0] == "" {
		if reportErrors {
			c.send(ircmsg.ErrNeedMoreParams, command, "Not enough parameters")
		}
		return
	}
	target := m.Params[0]
	text := m.Params[1]

	if hasChannelSigil(target) {
		ch, ok := s.getChannel(target)
		if !ok {
			if reportErrors {
				c.send(ircmsg.ErrNoSuchChannel, target, "No such channel")
			}
			return
		}
		nickCanon := canonicalizeNick(c.Nick)
		_, isMember := ch.Members[nickCanon]
		if ch.hasMode('n') && !isMember {
			if reportErrors {
				c.send(ircmsg.ErrCannotSendToChan, target, "Cannot send to channel")
			}
			return
		}
		if ch.hasMode('m') && !ch.isOp(nickCanon) && !ch.isVoiced(nickCanon) {
			if reportErrors {
				c.send(ircmsg.ErrCannotSendToChan, target, "Cannot send to channel (+m)")
			}
			return
		}
		s.broadcastToChannel(ch, c, false, command, target, text)
		return
	}

	peer, ok := s.Nicks[canonicalizeNick(target)]
	if !ok {
		if reportErrors {
			c.send(ircmsg.ErrNoSuchNick, target, "No such nick/channel")
		}
		return
	}
	if reportErrors && peer.isAway() {
		c.send(ircmsg.RplAway, peer.Nick, peer.AwayMsg)
	}
	peer.sendFrom(c, command, target, text)
}
