// Package ircmsg parses and encodes RFC 1459/2812 protocol lines.
//
// The rules implemented here are deliberately narrower than the full RFC
// grammar: a client-supplied prefix is recognized only so it can be
// stripped and discarded (this server never trusts a client-supplied
// origin), and the trailing parameter is only ever introduced by the
// literal substring " :". See ParseLine.
package ircmsg

import (
	"fmt"
	"strings"
)

// Message holds a single protocol message: an optional origin, the command
// token, and its parameters.
//
// Prefix is never populated by ParseLine (client-sent prefixes are
// stripped and discarded, see the package doc). It exists
// so outbound messages can carry the server name or a sender's mask.
type Message struct {
	Prefix  string
	Command string
	Params  []string
}

func (m Message) String() string {
	return fmt.Sprintf("Prefix [%s] Command [%s] Params %q", m.Prefix, m.Command, m.Params)
}

// ParseLine parses one logical IRC line. The line must already have any
// envelope (JSON wrapper, frame splitting) removed and not contain an
// embedded newline.
//
// Returns ok=false for an empty line, a line that is only a prefix, or a
// line with no command token -- all of which are silently dropped.
func ParseLine(line string) (Message, bool) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Message{}, false
	}

	if line[0] == ':' {
		idx := strings.IndexByte(line, ' ')
		if idx == -1 {
			return Message{}, false
		}
		line = strings.TrimLeft(line[idx+1:], " ")
		if line == "" {
			return Message{}, false
		}
	}

	head := line
	var trailing string
	hasTrailing := false
	if idx := strings.Index(line, " :"); idx != -1 {
		head = line[:idx]
		trailing = line[idx+2:]
		hasTrailing = true
	}

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return Message{}, false
	}

	params := fields[1:]
	if hasTrailing {
		params = append(params, trailing)
	}

	return Message{
		Command: strings.ToUpper(fields[0]),
		Params:  params,
	}, true
}

// Encode renders the message back to wire form, without a trailing CRLF.
//
// The last parameter is always sent as trailing text (prefixed with ':'),
// so topics, messages, reasons, and MOTD lines survive the round trip
// regardless of embedded spaces.
func (m Message) Encode() string {
	var b strings.Builder

	if m.Prefix != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}

	b.WriteString(m.Command)

	for i, param := range m.Params {
		b.WriteByte(' ')
		if i == len(m.Params)-1 {
			b.WriteByte(':')
		}
		b.WriteString(param)
	}

	return b.String()
}
