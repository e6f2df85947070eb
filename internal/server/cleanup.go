package server

import "github.com/keitagame/shinya-irc/internal/ircmsg"

func (s *Server) releaseNick(c *Client) {
	if c.Nick == "" || c.Nick == "*" {
		return
	}
	canon := canonicalizeNick(c.Nick)
	if s.Nicks[canon] == c {
		delete(s.Nicks, canon)
	}
}

// renameClient moves a registered client to a new nick, rekeying every
// channel member map it belongs to and broadcasting NICK to itself and
// every channel fellow exactly once each. The broadcast carries the OLD
// mask as origin: observers must be able to map the line back to the
// identity they knew.
func (s *Server) renameClient(c *Client, newNick string) {
	oldCanon := canonicalizeNick(c.Nick)
	newCanon := canonicalizeNick(newNick)
	oldMask := c.mask()

	delete(s.Nicks, oldCanon)
	s.Nicks[newCanon] = c

	recipients := s.fellowTravelers(c)

	for chName := range c.Channels {
		ch, ok := s.Channels[chName]
		if !ok {
			continue
		}
		if _, ok := ch.Members[oldCanon]; ok {
			delete(ch.Members, oldCanon)
			ch.Members[newCanon] = c
		}
		if _, ok := ch.Ops[oldCanon]; ok {
			delete(ch.Ops, oldCanon)
			ch.Ops[newCanon] = struct{}{}
		}
		if _, ok := ch.Voices[oldCanon]; ok {
			delete(ch.Voices, oldCanon)
			ch.Voices[newCanon] = struct{}{}
		}
	}

	c.Nick = newNick

	note := ircmsg.Message{Prefix: oldMask, Command: "NICK", Params: []string{newNick}}
	c.queue(note)
	for _, peer := range recipients {
		peer.queue(note)
	}
}

// fellowTravelers returns, once each, every other registered client that
// shares a channel with c.
func (s *Server) fellowTravelers(c *Client) []*Client {
	seen := make(map[uint64]*Client)
	for chName := range c.Channels {
		ch, ok := s.Channels[chName]
		if !ok {
			continue
		}
		for _, member := range ch.Members {
			if member.ID == c.ID {
				continue
			}
			seen[member.ID] = member
		}
	}
	out := make([]*Client, 0, len(seen))
	for _, peer := range seen {
		out = append(out, peer)
	}
	return out
}

func (s *Server) getChannel(name string) (*Channel, bool) {
	ch, ok := s.Channels[canonicalizeChannel(name)]
	return ch, ok
}

func (s *Server) getOrCreateChannel(name string) *Channel {
	canon := canonicalizeChannel(name)
	ch, ok := s.Channels[canon]
	if !ok {
		ch = newChannel(name)
		s.Channels[canon] = ch
	}
	return ch
}

// destroyChannelIfEmpty drops a channel once its last member leaves;
// empty channels are never kept around.
func (s *Server) destroyChannelIfEmpty(ch *Channel) {
	if len(ch.Members) == 0 {
		delete(s.Channels, canonicalizeChannel(ch.Name))
	}
}

// removeFromChannel removes c from ch's membership/op/voice sets and
// destroys the channel if that was the last member.
func (s *Server) removeFromChannel(c *Client, ch *Channel) {
	canon := canonicalizeNick(c.Nick)
	delete(ch.Members, canon)
	delete(ch.Ops, canon)
	delete(ch.Voices, canon)
	delete(c.Channels, canonicalizeChannel(ch.Name))
	s.destroyChannelIfEmpty(ch)
}

// broadcastToChannel sends a message, originated by origin, to every
// member of ch. includeOrigin controls whether origin itself is sent a
// copy (JOIN, PART and KICK echo to the origin; channel PRIVMSG and
// NOTICE do not).
func (s *Server) broadcastToChannel(ch *Channel, origin *Client, includeOrigin bool, command string, params ...string) {
	for _, member := range ch.Members {
		if member.ID == origin.ID && !includeOrigin {
			continue
		}
		member.sendFrom(origin, command, params...)
	}
}

// cleanupClient removes a client from every registry it is part of,
// notifying channel fellows with a QUIT, and closes its outbound queue
// so writeLoop exits and the underlying connection is closed. Safe to
// reach twice (QUIT racing a transport close): the second call is a
// no-op.
func (s *Server) cleanupClient(c *Client, reason string) {
	if c.closed {
		return
	}
	c.closed = true
	delete(s.Clients, c.ID)

	if c.Registered {
		recipients := s.fellowTravelers(c)
		for chName := range c.Channels {
			if ch, ok := s.Channels[chName]; ok {
				delete(ch.Members, canonicalizeNick(c.Nick))
				delete(ch.Ops, canonicalizeNick(c.Nick))
				delete(ch.Voices, canonicalizeNick(c.Nick))
				s.destroyChannelIfEmpty(ch)
			}
		}
		for _, peer := range recipients {
			peer.sendFrom(c, "QUIT", reason)
		}
	}

	s.releaseNick(c)
	close(c.WriteChan)
}

// quitMessage is the QUIT text a client gets echoed back to itself
// before the connection closes.
func quitMessage(reason string) ircmsg.Message {
	return ircmsg.Message{Command: "ERROR", Params: []string{reason}}
}
