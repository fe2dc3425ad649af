package request

import (
	"sync"
)

// Invocation is one outstanding request.
type Invocation[V any] struct {
	token   Token
	mu      sync.Mutex
	state   Resolution
	outcome Outcome[V]
	done    chan struct{}
}

func newInvocation[V any](token Token) *Invocation[V] {
	return &Invocation[V]{
		token: token,
		state: Pending,
		done:  make(chan struct{}),
	}
}

// Token returns the request token.
func (p *Invocation[V]) Token() Token {
	return p.token
}

// State returns the current resolution.
func (p *Invocation[V]) State() Resolution {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Settle records the outcome. It reports false, changing nothing, if the
// request was already settled.
func (p *Invocation[V]) Settle(outcome Outcome[V]) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, ok := p.state.Transition(outcome.Resolution())
	if !ok {
		return false
	}
	p.state = next
	p.outcome = outcome
	close(p.done)
	return true
}

// Done is closed once the request settles.
func (p *Invocation[V]) Done() <-chan struct{} {
	return p.done
}

// Outcome returns the settled outcome. Only meaningful after Done is closed.
func (p *Invocation[V]) Outcome() Outcome[V] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcome
}
