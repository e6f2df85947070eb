// Package mask matches nick!user@host strings against IRC ban-style glob
// masks ('*' and '?' wildcards, case-insensitive, no escape syntax).
package mask

import (
	"strings"

	"github.com/gobwas/glob"
)

// Match reports whether candidate (a nick!user@host or bare nick string)
// matches the glob mask. An invalid mask never matches anything.
func Match(mask, candidate string) bool {
	g, err := glob.Compile(quoteNonWildcards(strings.ToLower(mask)))
	if err != nil {
		return false
	}
	return g.Match(strings.ToLower(candidate))
}

// quoteNonWildcards escapes every glob metacharacter except '*' and '?'.
// IRC masks have no character classes or escape syntax, and '[', ']',
// '{', '}', '\' are all legal nickname characters that must match
// literally.
func quoteNonWildcards(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '[', ']', '{', '}', ',':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Hostmask builds the canonical nick!user@host string used as both the
// origin prefix on broadcasts and the candidate string for ban matching.
func Hostmask(nick, user, host string) string {
	return nick + "!" + user + "@" + host
}
