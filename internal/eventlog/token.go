package eventlog

import (
	"strconv"
	"strings"
)

// Token marks a position in a resource's event sequence: the id of the last
// event the holder has seen. The wire form is "sync:<id>"; id 0 is the
// sentinel for "no history yet".
type Token struct {
	id uint64
}

// TokenFromID builds a token positioned at the given event id.
func TokenFromID(id uint64) Token { return Token{id: id} }

// ID returns the event id the token points at.
func (t Token) ID() uint64 { return t.id }

// IsSentinel reports whether the token is the "no history" sentinel.
func (t Token) IsSentinel() bool { return t.id == 0 }

// String renders the wire form of the token.
func (t Token) String() string {
	return "sync:" + strconv.FormatUint(t.id, 10)
}

// ParseToken decodes a wire-form token. Decoding is fail-open: anything that
// does not parse comes back as the sentinel token, which a read treats the
// same as an aged-out cursor. A bare integer is accepted for compatibility
// with clients that strip the prefix.
func ParseToken(raw string) Token {
	raw = strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(raw, "sync:"); ok {
		raw = rest
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return Token{}
	}
	return Token{id: id}
}
