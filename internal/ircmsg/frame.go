package ircmsg

import (
	"encoding/json"
	"strings"
)

// envelope is the optional JSON wrapper browser clients may send instead of
// a raw IRC line.
type envelope struct {
	Line string `json:"line"`
}

// DecodeFrame unwraps a single WebSocket text frame into the raw IRC text
// it carries. A frame whose stripped content begins with '{' is treated as
// a JSON envelope; on decode failure the frame is used verbatim. This is a
// transport convenience only -- it never changes protocol semantics.
func DecodeFrame(frame string) string {
	trimmed := strings.TrimSpace(frame)
	if !strings.HasPrefix(trimmed, "{") {
		return frame
	}

	var env envelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return frame
	}

	return env.Line
}

// SplitLines splits a frame's text into logical IRC lines on embedded '\n',
// stripping a trailing '\r' from each.
func SplitLines(text string) []string {
	parts := strings.Split(text, "\n")
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, strings.TrimRight(p, "\r"))
	}
	return lines
}
