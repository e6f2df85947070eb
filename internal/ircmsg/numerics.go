package ircmsg

// Numeric reply codes this server emits. Names follow RFC 1459/2812.
const (
	RplWelcome       = "001"
	RplYourHost      = "002"
	RplCreated       = "003"
	RplMyInfo        = "004"
	RplUModeIs       = "221"
	RplLUserClient   = "251"
	RplLUserOp       = "252"
	RplLUserUnknown  = "253"
	RplLUserChannels = "254"
	RplLUserMe       = "255"
	RplAway          = "301"
	RplUserHost      = "302"
	RplIson          = "303"
	RplUnaway        = "305"
	RplNowAway       = "306"
	RplWhoisUser     = "311"
	RplWhoisServer   = "312"
	RplEndOfWho      = "315"
	RplEndOfWhois    = "318"
	RplWhoisChannels = "319"
	RplList          = "322"
	RplListEnd       = "323"
	RplChannelModeIs = "324"
	RplNoTopic       = "331"
	RplTopic         = "332"
	RplInviting      = "341"
	RplVersion       = "351"
	RplWhoReply      = "352"
	RplNameReply     = "353"
	RplEndOfNames    = "366"
	RplBanList       = "367"
	RplEndOfBanList  = "368"
	RplInfo          = "371"
	RplMotd          = "372"
	RplEndOfInfo     = "374"
	RplMotdStart     = "375"
	RplEndOfMotd     = "376"
	RplTime          = "391"

	ErrNoSuchNick        = "401"
	ErrNoSuchChannel     = "403"
	ErrCannotSendToChan  = "404"
	ErrUnknownCommand    = "421"
	ErrNoMotd            = "422"
	ErrNoNicknameGiven   = "431"
	ErrErroneousNickname = "432"
	ErrNicknameInUse     = "433"
	ErrUserNotInChannel  = "441"
	ErrNotOnChannel      = "442"
	ErrUserOnChannel     = "443"
	ErrNeedMoreParams    = "461"
	ErrAlreadyRegistered = "462"
	ErrChannelIsFull     = "471"
	ErrInviteOnlyChan    = "473"
	ErrBannedFromChan    = "474"
	ErrBadChannelKey     = "475"
	ErrNoPrivileges      = "481"
	ErrChanOPrivsNeeded  = "482"
	ErrUModeUnknownFlag  = "501"
	ErrUsersDontMatch    = "502"
)

// IsNumeric reports whether command is a three-digit numeric reply code;
// numeric replies need the target nick inserted as the first parameter.
func IsNumeric(command string) bool {
	return len(command) == 3 &&
		isDigit(command[0]) && isDigit(command[1]) && isDigit(command[2])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
