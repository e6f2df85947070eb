package server

import (
	"fmt"
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

// handleNick implements NICK both before and after registration.
func (s *Server) handleNick(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 || m.Params[0] == "" {
		c.send(ircmsg.ErrNoNicknameGiven, "No nickname given")
		return
	}
	nick := m.Params[0]
	if !isValidNick(nick) {
		c.send(ircmsg.ErrErroneousNickname, nick, "Erroneous nickname")
		return
	}

	canon := canonicalizeNick(nick)
	if existing, ok := s.Nicks[canon]; ok && existing != c {
		c.send(ircmsg.ErrNicknameInUse, nick, "Nickname is already in use")
		return
	}

	if !c.Registered {
		c.Nick = nick
		c.nickSet = true
		s.maybeFinalizeRegistration(c)
		return
	}

	s.renameClient(c, nick)
}

// handleUser implements USER, the second leg of registration.
func (s *Server) handleUser(c *Client, m ircmsg.Message) {
	if c.Registered {
		c.send(ircmsg.ErrAlreadyRegistered, "Unauthorized command (already registered)")
		return
	}
	if len(m.Params) < 4 {
		c.send(ircmsg.ErrNeedMoreParams, "USER", "Not enough parameters")
		return
	}
	user := m.Params[0]
	if len(user) > 10 {
		user = user[:10]
	}
	c.User = user
	c.RealName = m.Params[3]
	c.userSet = true
	s.maybeFinalizeRegistration(c)
}

// handleCap acknowledges CAP LS with an empty capability list and
// otherwise ignores the command. Clients that open with CAP before
// NICK/USER must not be disconnected for it, and registration does not
// wait for CAP END.
func (s *Server) handleCap(c *Client, m ircmsg.Message) {
	sub := ""
	if len(m.Params) > 0 {
		sub = strings.ToUpper(m.Params[0])
	}
	if sub == "LS" {
		c.send("CAP", "*", "LS", "")
	}
}

func (s *Server) handlePing(c *Client, m ircmsg.Message) {
	token := s.Config.ServerName
	if len(m.Params) > 0 {
		token = m.Params[0]
	}
	c.send("PONG", s.Config.ServerName, token)
}

func (s *Server) handlePong(c *Client, m ircmsg.Message) {
	// LastActivity is already bumped by the event loop for every
	// message received; nothing else to do.
}

func (s *Server) handleQuit(c *Client, m ircmsg.Message) {
	reason := "Quit"
	if len(m.Params) > 0 && m.Params[0] != "" {
		reason = m.Params[0]
	}
	c.queue(quitMessage(reason))
	s.cleanupClient(c, reason)
}

// maybeFinalizeRegistration installs the client in the nick registry and
// sends the welcome burst once both NICK and USER have succeeded. The
// nick is only claimed here, not at NICK time, so the registry never
// holds a key for an unregistered connection; the collision re-check
// covers the window where another connection registered the same nick
// between this client's NICK and USER.
func (s *Server) maybeFinalizeRegistration(c *Client) {
	if c.Registered || !c.nickSet || !c.userSet {
		return
	}

	canon := canonicalizeNick(c.Nick)
	if existing, ok := s.Nicks[canon]; ok && existing != c {
		c.send(ircmsg.ErrNicknameInUse, c.Nick, "Nickname is already in use")
		c.Nick = "*"
		c.nickSet = false
		return
	}
	s.Nicks[canon] = c
	c.Registered = true

	cfg := s.Config
	c.send(ircmsg.RplWelcome, fmt.Sprintf("Welcome to %s %s", cfg.ServerName, c.mask()))
	c.send(ircmsg.RplYourHost, fmt.Sprintf("Your host is %s, running version %s", cfg.ServerName, cfg.Version))
	c.send(ircmsg.RplCreated, fmt.Sprintf("This server was created %s",
		s.startTime.UTC().Format("2006-01-02 15:04:05 UTC")))
	c.send(ircmsg.RplMyInfo, cfg.ServerName, cfg.Version, "o", "imnopqrstv")

	s.sendMOTD(c)
	s.sendLusers(c)
}

// sendLusers emits the RPL_LUSER* burst that follows the MOTD. 252 and
// 253 only appear when their counts are nonzero.
func (s *Server) sendLusers(c *Client) {
	var clients, ops, unknown int
	for _, other := range s.Clients {
		if !other.Registered {
			unknown++
			continue
		}
		clients++
		if other.isOperator() {
			ops++
		}
	}

	c.send(ircmsg.RplLUserClient, fmt.Sprintf("There are %d users and 0 invisible on 1 servers", clients))
	if ops > 0 {
		c.send(ircmsg.RplLUserOp, fmt.Sprintf("%d", ops), "IRC Operators online")
	}
	if unknown > 0 {
		c.send(ircmsg.RplLUserUnknown, fmt.Sprintf("%d", unknown), "unknown connection(s)")
	}
	c.send(ircmsg.RplLUserChannels, fmt.Sprintf("%d", len(s.Channels)), "channels formed")
	c.send(ircmsg.RplLUserMe, fmt.Sprintf("I have %d clients and 1 servers", clients))
}

// sendMOTD emits the 375/372.../376 MOTD block, or 422 if none is
// configured.
func (s *Server) sendMOTD(c *Client) {
	if len(s.Config.MOTD) == 0 {
		c.send(ircmsg.ErrNoMotd, "MOTD File is missing")
		return
	}
	c.send(ircmsg.RplMotdStart, fmt.Sprintf("- %s Message of the Day -", s.Config.ServerName))
	for _, line := range s.Config.MOTD {
		c.send(ircmsg.RplMotd, "- "+line)
	}
	c.send(ircmsg.RplEndOfMotd, "End of /MOTD command")
}
