package server

import (
	"strings"
	"testing"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/stretchr/testify/assert"
)

func TestPrivmsgToChannelReachesOtherMembersNotSender(t *testing.T) {
	s := newTestServer()
	alice, aliceConn := registerClient(s, "alice", "alice")
	bob, bobConn := registerClient(s, "bob", "bob")
	s.dispatch(alice, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})
	s.dispatch(bob, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})

	_ = aliceConn.lines() // drain JOIN/NAMES noise
	_ = bobConn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "PRIVMSG", Params: []string{"#general", "hello there"}})

	assert.Contains(t, strings.Join(bobConn.lines(), "\n"), "PRIVMSG #general :hello there")
	assert.Empty(t, aliceConn.lines())
}

func TestPrivmsgToUnknownNick(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	s.dispatch(alice, ircmsg.Message{Command: "PRIVMSG", Params: []string{"ghost", "hi"}})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.ErrNoSuchNick)
}

func TestNoticeNeverErrors(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()
	s.dispatch(alice, ircmsg.Message{Command: "NOTICE", Params: []string{"ghost", "hi"}})
	assert.Empty(t, conn.lines())
}

func TestPrivmsgToAwayUserRepliesWithAwayNumeric(t *testing.T) {
	s := newTestServer()
	alice, aliceConn := registerClient(s, "alice", "alice")
	bob, _ := registerClient(s, "bob", "bob")
	s.dispatch(bob, ircmsg.Message{Command: "AWAY", Params: []string{"gone fishing"}})
	_ = aliceConn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "PRIVMSG", Params: []string{"bob", "hey"}})
	assert.Contains(t, strings.Join(aliceConn.lines(), "\n"), ircmsg.RplAway)
}
