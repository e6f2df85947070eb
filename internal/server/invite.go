package server

import "github.com/keitagame/shinya-irc/internal/ircmsg"

// handleInvite implements INVITE <nick> <channel>.
//
// The channel checks run before the target nick is resolved, so an
// inviter who is not on an existing channel gets ERR_NOTONCHANNEL even
// when the nick doesn't exist. An INVITE naming a channel that doesn't
// exist skips the gatekeeping entirely and simply notifies the target;
// no invite is recorded since there is no channel to record it on. Both
// orderings are long-standing behavior that clients may depend on, kept
// rather than tightened to the RFC's.
func (s *Server) handleInvite(c *Client, m ircmsg.Message) {
	if len(m.Params) < 2 {
		c.send(ircmsg.ErrNeedMoreParams, "INVITE", "Not enough parameters")
		return
	}
	nick := m.Params[0]
	chanName := m.Params[1]

	ch, exists := s.getChannel(chanName)
	if exists {
		if _, member := c.Channels[canonicalizeChannel(chanName)]; !member {
			c.send(ircmsg.ErrNotOnChannel, chanName, "You're not on that channel")
			return
		}
		if ch.hasMode('i') && !ch.isOp(canonicalizeNick(c.Nick)) {
			c.send(ircmsg.ErrChanOPrivsNeeded, chanName, "You're not channel operator")
			return
		}
	}

	target, ok := s.Nicks[canonicalizeNick(nick)]
	if !ok {
		c.send(ircmsg.ErrNoSuchNick, nick, "No such nick/channel")
		return
	}

	if exists {
		ch.Invites[canonicalizeNick(target.Nick)] = struct{}{}
	}
	c.send(ircmsg.RplInviting, nick, chanName)
	target.sendFrom(c, "INVITE", target.Nick, chanName)
}
