package server

import "strings"

// canonicalizeASCII folds only ASCII letters to lowercase. Traditional IRC
// casefolding is ASCII-only; full Unicode casefolding would fold
// characters clients don't expect to collide.
func canonicalizeASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func canonicalizeNick(nick string) string {
	return canonicalizeASCII(nick)
}

func canonicalizeChannel(name string) string {
	return canonicalizeASCII(name)
}

// isValidNick checks the nickname grammar.
func isValidNick(n string) bool {
	if len(n) < 1 || len(n) > 30 {
		return false
	}
	if !isNickFirstChar(n[0]) {
		return false
	}
	for i := 1; i < len(n); i++ {
		c := n[i]
		if isNickFirstChar(c) || (c >= '0' && c <= '9') || c == '-' {
			continue
		}
		return false
	}
	return true
}

func isNickFirstChar(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case strings.IndexByte(`[\]^_`+"`"+`{|}`, c) >= 0:
		return true
	}
	return false
}

// hasChannelSigil reports whether a message target names a channel
// rather than a nick. Routing only looks at the sigil; full name
// validation happens on JOIN.
func hasChannelSigil(name string) bool {
	return len(name) > 0 && strings.IndexByte("#&!+", name[0]) >= 0
}

// isValidChannel checks the channel-name grammar.
func isValidChannel(name string) bool {
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	if strings.IndexByte("#&!+", name[0]) < 0 {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case 0x00, 0x07, '\n', '\r', ' ', ',':
			return false
		}
	}
	return true
}
