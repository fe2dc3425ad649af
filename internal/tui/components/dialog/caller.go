package dialog

import (
	"context"
	"io"
	"time"

	"github.com/billie-coop/nimbus/internal/request"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/charmbracelet/log"
)

// OpenRequest is the payload of an open event.
type OpenRequest[P any] struct {
	RequestID request.Token
	Params    P
}

// Response is the payload of a response event.
type Response[V any] struct {
	RequestID request.Token
	Cancelled bool
	Value     V
}

type callerConfig struct {
	timeout time.Duration
	logger  *log.Logger
}

// CallerOption configures a Caller.
type CallerOption func(*callerConfig)

// WithTimeout resolves a request as cancelled when no answer arrives in d.
// Zero waits forever.
func WithTimeout(d time.Duration) CallerOption {
	return func(c *callerConfig) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *log.Logger) CallerOption {
	return func(c *callerConfig) {
		c.logger = logger
	}
}

// Caller opens a dialog over the broker and waits for its answer.
type Caller[P, V any] struct {
	broker   *events.Broker
	open     events.EventType
	response events.EventType
	table    *request.Table[V]
	timeout  time.Duration
	logger   *log.Logger
}

// NewCaller creates a caller that publishes open and listens on response.
func NewCaller[P, V any](broker *events.Broker, open, response events.EventType, opts ...CallerOption) *Caller[P, V] {
	cfg := callerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	return &Caller[P, V]{
		broker:   broker,
		open:     open,
		response: response,
		table:    request.NewTable[V](),
		timeout:  cfg.timeout,
		logger:   cfg.logger.WithPrefix(string(open)),
	}
}

// Show publishes an open request and blocks until the matching response
// arrives or ctx is done. A context error is returned together with a
// cancelled outcome; answers arriving after that are ignored. A ctx that is
// already done returns at once without opening a dialog.
func (c *Caller[P, V]) Show(ctx context.Context, params P) (request.Outcome[V], error) {
	if err := ctx.Err(); err != nil {
		return request.Cancel[V](), err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	pending := c.table.Open()
	token := pending.Token()

	var sub *events.Subscription
	sub = c.broker.On(c.response, func(e events.Event) {
		resp, ok := e.Payload.(Response[V])
		if !ok || !token.Matches(resp.RequestID) {
			return
		}

		outcome := request.Accept(resp.Value)
		if resp.Cancelled {
			outcome = request.Cancel[V]()
		}
		if c.table.Resolve(token, outcome) {
			sub.Remove()
		}
	})
	defer sub.Remove()

	c.logger.Debug("dialog requested", "request_id", token)
	c.broker.Publish(events.Event{
		Type:    c.open,
		Payload: OpenRequest[P]{RequestID: token, Params: params},
	})

	select {
	case <-pending.Done():
		outcome := pending.Outcome()
		c.logger.Debug("dialog answered", "request_id", token, "cancelled", outcome.Cancelled)
		return outcome, nil
	case <-ctx.Done():
		// An answer already taken from the table may still be settling.
		// Only one of the two settles succeeds.
		if !pending.Settle(request.Cancel[V]()) {
			outcome := pending.Outcome()
			c.logger.Debug("dialog answered", "request_id", token, "cancelled", outcome.Cancelled)
			return outcome, nil
		}
		c.table.Forget(token)
		c.logger.Warn("dialog abandoned", "request_id", token, "err", ctx.Err())
		return request.Cancel[V](), ctx.Err()
	}
}

// Outstanding returns the number of requests still waiting for an answer.
func (c *Caller[P, V]) Outstanding() int {
	return c.table.Len()
}

// Callers bundles the façades for every correlated dialog.
type Callers struct {
	TwoFactor *Caller[TwoFactorParams, string]
	Input     *Caller[InputParams, string]
	Confirm   *Caller[ConfirmParams, bool]
}

// NewCallers creates the façades over one broker.
func NewCallers(broker *events.Broker, opts ...CallerOption) *Callers {
	return &Callers{
		TwoFactor: NewCaller[TwoFactorParams, string](broker, events.OpenTwoFactorCodeDialogEvent, events.TwoFactorCodeDialogResponseEvent, opts...),
		Input:     NewCaller[InputParams, string](broker, events.OpenInputDialogEvent, events.InputDialogResponseEvent, opts...),
		Confirm:   NewCaller[ConfirmParams, bool](broker, events.OpenConfirmDialogEvent, events.ConfirmDialogResponseEvent, opts...),
	}
}

// ShowTwoFactorCodeDialog asks for a two-factor code or recovery key.
func (c *Callers) ShowTwoFactorCodeDialog(ctx context.Context, params TwoFactorParams) (request.Outcome[string], error) {
	return c.TwoFactor.Show(ctx, params)
}

// ShowInputDialog asks for a line of text.
func (c *Callers) ShowInputDialog(ctx context.Context, params InputParams) (request.Outcome[string], error) {
	return c.Input.Show(ctx, params)
}

// ShowConfirmDialog asks a yes/no question.
func (c *Callers) ShowConfirmDialog(ctx context.Context, params ConfirmParams) (request.Outcome[bool], error) {
	return c.Confirm.Show(ctx, params)
}
