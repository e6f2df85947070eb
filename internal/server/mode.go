package server

import (
	"strconv"
	"strings"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
)

func (s *Server) handleMode(c *Client, m ircmsg.Message) {
	if len(m.Params) < 1 {
		c.send(ircmsg.ErrNeedMoreParams, "MODE", "Not enough parameters")
		return
	}
	target := m.Params[0]
	if hasChannelSigil(target) {
		s.channelMode(c, target, m.Params[1:])
		return
	}
	s.userMode(c, target, m.Params[1:])
}

// channelMode applies a channel mode string. Member-affecting letters
// (o, v) and ban edits (b with a parameter) are broadcast immediately,
// one MODE line per change; after the whole string is processed, a
// consolidated MODE line carrying the applied letters, without their
// parameters, is broadcast as well.
func (s *Server) channelMode(c *Client, name string, args []string) {
	ch, ok := s.getChannel(name)
	if !ok {
		c.send(ircmsg.ErrNoSuchChannel, name, "No such channel")
		return
	}

	if len(args) == 0 {
		modes := "+" + ch.modeLettersSorted()
		if ch.Key != "" {
			modes += " " + ch.Key
		}
		if ch.Limit != 0 {
			modes += " " + strconv.Itoa(ch.Limit)
		}
		c.send(ircmsg.RplChannelModeIs, ch.Name, modes)
		return
	}

	if !ch.isOp(canonicalizeNick(c.Nick)) && !c.isOperator() {
		c.send(ircmsg.ErrChanOPrivsNeeded, ch.Name, "You're not channel operator")
		return
	}

	modeStr := args[0]
	params := args[1:]
	takeParam := func() (string, bool) {
		if len(params) == 0 {
			return "", false
		}
		p := params[0]
		params = params[1:]
		return p, true
	}

	adding := true
	var applied []byte

	for _, r := range modeStr {
		switch r {
		case '+':
			adding = true
			applied = append(applied, '+')
		case '-':
			adding = false
			applied = append(applied, '-')

		case 'm', 'n', 't', 'i', 's', 'p':
			flag := byte(r)
			if adding {
				ch.Modes[flag] = struct{}{}
			} else {
				delete(ch.Modes, flag)
			}
			applied = append(applied, flag)

		case 'k':
			if adding {
				p, ok := takeParam()
				if !ok {
					continue
				}
				ch.Modes['k'] = struct{}{}
				ch.Key = p
			} else {
				delete(ch.Modes, 'k')
				ch.Key = ""
			}
			applied = append(applied, 'k')

		case 'l':
			if adding {
				p, ok := takeParam()
				if !ok {
					continue
				}
				n, err := strconv.Atoi(p)
				if err != nil {
					continue
				}
				ch.Limit = n
				ch.Modes['l'] = struct{}{}
			} else {
				delete(ch.Modes, 'l')
				ch.Limit = 0
			}
			applied = append(applied, 'l')

		case 'o', 'v':
			nick, ok := takeParam()
			if !ok {
				continue
			}
			memberCanon := canonicalizeNick(nick)
			if _, isMember := ch.Members[memberCanon]; !isMember {
				continue
			}
			set := ch.Ops
			if r == 'v' {
				set = ch.Voices
			}
			if adding {
				set[memberCanon] = struct{}{}
			} else {
				delete(set, memberCanon)
			}
			applied = append(applied, byte(r))
			s.broadcastToChannel(ch, c, true, "MODE",
				ch.Name, string(signed(adding))+string(byte(r)), nick)

		case 'b':
			banMask, ok := takeParam()
			if !ok {
				for _, b := range ch.Bans {
					c.send(ircmsg.RplBanList, ch.Name, b)
				}
				c.send(ircmsg.RplEndOfBanList, ch.Name, "End of channel ban list")
				continue
			}
			if adding {
				if !containsBan(ch.Bans, banMask) {
					ch.Bans = append(ch.Bans, banMask)
				}
			} else {
				ch.Bans = removeBan(ch.Bans, banMask)
			}
			s.broadcastToChannel(ch, c, true, "MODE",
				ch.Name, string(signed(adding))+"b", banMask)
		}
	}

	if strings.Trim(string(applied), "+-") == "" {
		return
	}
	s.broadcastToChannel(ch, c, true, "MODE", ch.Name, string(applied))
}

func containsBan(bans []string, mask string) bool {
	for _, b := range bans {
		if b == mask {
			return true
		}
	}
	return false
}

func removeBan(bans []string, mask string) []string {
	out := bans[:0]
	for _, b := range bans {
		if b != mask {
			out = append(out, b)
		}
	}
	return out
}

func signed(adding bool) byte {
	if adding {
		return '+'
	}
	return '-'
}

// userMode handles MODE against a nick. Only the issuer itself may be
// the target, unless the issuer carries the global operator flag.
func (s *Server) userMode(c *Client, nick string, args []string) {
	if canonicalizeNick(nick) != canonicalizeNick(c.Nick) && !c.isOperator() {
		c.send(ircmsg.ErrUsersDontMatch, "Cannot change mode for other users")
		return
	}

	target, ok := s.Nicks[canonicalizeNick(nick)]
	if !ok {
		c.send(ircmsg.ErrNoSuchNick, nick, "No such nick")
		return
	}

	if len(args) == 0 {
		c.send(ircmsg.RplUModeIs, "+"+userModeLetters(target))
		return
	}

	adding := true
	for _, r := range args[0] {
		switch r {
		case '+':
			adding = true
		case '-':
			adding = false
		case 'i':
			if adding {
				target.Modes['i'] = struct{}{}
			} else {
				delete(target.Modes, 'i')
			}
		case 'o':
			// +o grants nothing: there is no credential store to check a
			// grant against. -o still lets a client drop the flag.
			if !adding {
				delete(target.Modes, 'o')
			}
		default:
			c.send(ircmsg.ErrUModeUnknownFlag, "Unknown MODE flag")
		}
	}

	c.sendFrom(c, "MODE", target.Nick, args[0])
}

func userModeLetters(c *Client) string {
	order := "io"
	var out []byte
	for _, f := range []byte(order) {
		if _, ok := c.Modes[f]; ok {
			out = append(out, f)
		}
	}
	return string(out)
}
