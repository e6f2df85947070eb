package server

import "github.com/keitagame/shinya-irc/internal/ircmsg"

func (s *Server) handleKick(c *Client, m ircmsg.Message) {
	if len(m.Params) < 2 {
		c.send(ircmsg.ErrNeedMoreParams, "KICK", "Not enough parameters")
		return
	}
	chanName := m.Params[0]
	targetNick := m.Params[1]
	reason := c.Nick
	if len(m.Params) > 2 {
		reason = m.Params[2]
	}

	ch, ok := s.getChannel(chanName)
	if !ok {
		c.send(ircmsg.ErrNoSuchChannel, chanName, "No such channel")
		return
	}
	if _, member := c.Channels[canonicalizeChannel(chanName)]; !member {
		c.send(ircmsg.ErrNotOnChannel, chanName, "You're not on that channel")
		return
	}
	if !ch.isOp(canonicalizeNick(c.Nick)) {
		c.send(ircmsg.ErrChanOPrivsNeeded, chanName, "You're not channel operator")
		return
	}

	target, ok := ch.Members[canonicalizeNick(targetNick)]
	if !ok {
		c.send(ircmsg.ErrUserNotInChannel, targetNick, chanName, "They aren't on that channel")
		return
	}

	s.broadcastToChannel(ch, c, true, "KICK", ch.Name, target.Nick, reason)
	s.removeFromChannel(target, ch)
}
