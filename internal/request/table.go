package request

import (
	"github.com/billie-coop/nimbus/internal/csync"
)

// Table maps live tokens to their pending requests.
type Table[V any] struct {
	entries  *csync.Map[Token, *Invocation[V]]
	newToken func() Token
}

// NewTable creates an empty correlation table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{
		entries:  csync.NewMap[Token, *Invocation[V]](),
		newToken: NewToken,
	}
}

// Open registers a new pending request under a token no live entry uses.
func (t *Table[V]) Open() *Invocation[V] {
	for {
		p := newInvocation[V](t.newToken())
		if t.entries.SetIfAbsent(p.token, p) {
			return p
		}
	}
}

// Resolve settles the request registered under token and removes it.
// Unknown or already-settled tokens are ignored and false is returned.
func (t *Table[V]) Resolve(token Token, outcome Outcome[V]) bool {
	p, ok := t.entries.LoadAndDelete(token)
	if !ok {
		return false
	}
	return p.Settle(outcome)
}

// Forget drops a request without settling it. Later responses for the token
// are ignored.
func (t *Table[V]) Forget(token Token) {
	t.entries.Delete(token)
}

// Lookup returns the live request for token.
func (t *Table[V]) Lookup(token Token) (*Invocation[V], bool) {
	return t.entries.Get(token)
}

// Len returns the number of outstanding requests.
func (t *Table[V]) Len() int {
	return t.entries.Len()
}
