package server

import (
	"strings"
	"testing"

	"github.com/keitagame/shinya-irc/internal/ircmsg"
	"github.com/stretchr/testify/assert"
)

func TestWhoChannelListsMembersWithFlags(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	bob, _ := registerClient(s, "bob", "bob")
	s.dispatch(alice, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})
	s.dispatch(bob, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})
	s.dispatch(bob, ircmsg.Message{Command: "AWAY", Params: []string{"afk"}})
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "WHO", Params: []string{"#general"}})

	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, "352 alice #general alice alice.example test.shinya alice H@ :0 Real Name")
	assert.Contains(t, joined, "352 alice #general bob bob.example test.shinya bob G :0 Real Name")
	assert.Contains(t, joined, " 315 alice #general ")
}

func TestWhoGlobMatchesNicks(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	registerClient(s, "alfred", "alfred")
	registerClient(s, "bob", "bob")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "WHO", Params: []string{"al*"}})

	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, " alice ")
	assert.Contains(t, joined, " alfred ")
	assert.NotContains(t, joined, " bob ")
}

func TestWhoisKnownNick(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	bob, _ := registerClient(s, "bob", "bob")
	s.dispatch(bob, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "WHOIS", Params: []string{"bob"}})

	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, " 311 alice bob bob bob.example * :Real Name")
	assert.Contains(t, joined, " 312 alice bob test.shinya ")
	assert.Contains(t, joined, " 319 alice bob :@#general")
	assert.Contains(t, joined, " 318 alice bob ")
}

func TestWhoisUnknownNick(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "WHOIS", Params: []string{"ghost"}})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.ErrNoSuchNick)
}

func TestNamesAllChannels(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	s.dispatch(alice, ircmsg.Message{Command: "JOIN", Params: []string{"#one,#two"}})
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "NAMES"})

	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, "353 alice = #one :@alice")
	assert.Contains(t, joined, "353 alice = #two :@alice")
}

func TestListShowsTopicAndCount(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	s.dispatch(alice, ircmsg.Message{Command: "JOIN", Params: []string{"#general"}})
	s.dispatch(alice, ircmsg.Message{Command: "TOPIC", Params: []string{"#general", "the topic"}})
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "LIST"})

	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, " 322 alice #general 1 :the topic")
	assert.Contains(t, joined, " 323 alice ")
}

func TestIsonReportsOnlyRegistered(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	registerClient(s, "bob", "bob")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "ISON", Params: []string{"bob", "ghost", "alice"}})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), " 303 alice :bob alice")
}

func TestUserhostCapsAtFiveAndMarksAway(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	for _, nick := range []string{"n1", "n2", "n3", "n4", "n5", "n6"} {
		registerClient(s, nick, nick)
	}
	bob, _ := registerClient(s, "bob", "bob")
	s.dispatch(bob, ircmsg.Message{Command: "AWAY", Params: []string{"afk"}})
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "USERHOST",
		Params: []string{"n1", "n2", "n3", "n4", "n5", "n6"}})
	joined := strings.Join(conn.lines(), "\n")
	assert.Contains(t, joined, "n5=+n5@n5.example")
	assert.NotContains(t, joined, "n6")

	s.dispatch(alice, ircmsg.Message{Command: "USERHOST", Params: []string{"bob"}})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), "bob=-bob@bob.example")
}

func TestPingRepliesWithServerAndToken(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "PING", Params: []string{"tok123"}})
	assert.Contains(t, conn.lines(), ":test.shinya PONG test.shinya :tok123")
}

func TestUnknownCommandOnlyAfterRegistration(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "BOGUS"})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.ErrUnknownCommand)
}

func TestOperAlwaysRejected(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "OPER", Params: []string{"alice", "pw"}})
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.ErrNoPrivileges)
}

func TestAwayRoundTrip(t *testing.T) {
	s := newTestServer()
	alice, conn := registerClient(s, "alice", "alice")
	_ = conn.lines()

	s.dispatch(alice, ircmsg.Message{Command: "AWAY", Params: []string{"lunch"}})
	assert.True(t, alice.isAway())
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.RplNowAway)

	s.dispatch(alice, ircmsg.Message{Command: "AWAY"})
	assert.False(t, alice.isAway())
	assert.Contains(t, strings.Join(conn.lines(), "\n"), ircmsg.RplUnaway)
}
