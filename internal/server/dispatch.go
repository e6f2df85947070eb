package server

import "github.com/keitagame/shinya-irc/internal/ircmsg"

type handlerFunc func(s *Server, c *Client, m ircmsg.Message)

// preRegCommands lists the only commands accepted before registration
// completes. Everything else is silently ignored pre-registration.
var preRegCommands = map[string]bool{
	"NICK": true, "USER": true, "CAP": true, "PING": true, "PONG": true, "QUIT": true,
}

var commandTable = map[string]handlerFunc{
	"NICK": (*Server).handleNick,
	"USER": (*Server).handleUser,
	"CAP":  (*Server).handleCap,
	"PING": (*Server).handlePing,
	"PONG": (*Server).handlePong,
	"QUIT": (*Server).handleQuit,

	"JOIN":  (*Server).handleJoin,
	"PART":  (*Server).handlePart,
	"TOPIC": (*Server).handleTopic,

	"PRIVMSG": (*Server).handlePrivmsg,
	"NOTICE":  (*Server).handleNotice,

	"NAMES": (*Server).handleNames,
	"LIST":  (*Server).handleList,

	"INVITE": (*Server).handleInvite,
	"KICK":   (*Server).handleKick,
	"MODE":   (*Server).handleMode,

	"WHO":   (*Server).handleWho,
	"WHOIS": (*Server).handleWhois,

	"AWAY":     (*Server).handleAway,
	"ISON":     (*Server).handleIson,
	"USERHOST": (*Server).handleUserhost,

	"VERSION": (*Server).handleVersion,
	"TIME":    (*Server).handleTime,
	"INFO":    (*Server).handleInfo,
	"LUSERS":  (*Server).handleLusers,
	"MOTD":    (*Server).handleMotd,
	"OPER":    (*Server).handleOper,
}

// dispatch routes one parsed message to its handler. Unregistered
// clients may only use the handshake commands, and unknown commands
// only draw ERR_UNKNOWNCOMMAND once the client is registered.
func (s *Server) dispatch(c *Client, m ircmsg.Message) {
	if m.Command == "" {
		return
	}

	if !c.Registered {
		if !preRegCommands[m.Command] {
			return
		}
		commandTable[m.Command](s, c, m)
		return
	}

	h, ok := commandTable[m.Command]
	if !ok {
		c.send(ircmsg.ErrUnknownCommand, m.Command, "Unknown command")
		return
	}
	h(s, c, m)
}
