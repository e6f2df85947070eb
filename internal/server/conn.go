package server

// Conn is the framed bidirectional text-message pipe a transport
// implementation provides for one connection. internal/transport's
// WebSocket adapter implements this; tests may substitute an in-memory
// fake. Framing, ping/pong, and the close handshake are the transport's
// concern, not this package's.
type Conn interface {
	// ReadFrame blocks for the next inbound text frame. A frame may carry
	// multiple '\n'-separated IRC lines, or a JSON envelope wrapping one.
	ReadFrame() (string, error)
	// WriteFrame sends one outbound text frame.
	WriteFrame(string) error
	Close() error
	// RemoteAddr is the peer address string captured at accept, used as a
	// client's host when no other hostname resolution is done.
	RemoteAddr() string
}
