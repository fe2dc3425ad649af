package request

import (
	"github.com/google/uuid"
)

// Token is an opaque request identifier.
type Token string

// NewToken returns a fresh random token (UUIDv4, 122 random bits).
func NewToken() Token {
	return Token(uuid.NewString())
}

// String implements fmt.Stringer.
func (t Token) String() string {
	return string(t)
}

// Matches reports whether a response carrying other belongs to t.
// An empty token never matches.
func (t Token) Matches(other Token) bool {
	return t != "" && t == other
}
