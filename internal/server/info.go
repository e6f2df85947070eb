package server

import (
	"time"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

func (s *Server) handleVersion(c *Client, m ircmsg.Message) {
	c.send(ircmsg.RplVersion, s.Config.Version+"."+s.Config.ServerName,
		s.Config.ServerName, "")
}

func (s *Server) handleTime(c *Client, m ircmsg.Message) {
	c.send(ircmsg.RplTime, s.Config.ServerName,
		time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
}

func (s *Server) handleInfo(c *Client, m ircmsg.Message) {
	c.send(ircmsg.RplInfo, s.Config.ServerName+" "+s.Config.Version)
	c.send(ircmsg.RplInfo, "IRC server speaking RFC 1459 over WebSocket")
	c.send(ircmsg.RplInfo, "Running since "+s.startTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	c.send(ircmsg.RplEndOfInfo, "End of /INFO list")
}

func (s *Server) handleLusers(c *Client, m ircmsg.Message) {
	s.sendLusers(c)
}

func (s *Server) handleMotd(c *Client, m ircmsg.Message) {
	s.sendMOTD(c)
}

// handleOper always rejects: no operator credential store exists, so
// OPER can never succeed.
func (s *Server) handleOper(c *Client, m ircmsg.Message) {
	c.send(ircmsg.ErrNoPrivileges, "Permission Denied- You're not an IRC operator")
}
