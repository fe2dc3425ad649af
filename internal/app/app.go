package app

import (
	"context"
	"io"

	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/worker"
	"github.com/charmbracelet/log"
)

// Backend is the part of the worker the flows use.
type Backend interface {
	FetchAccount(ctx context.Context) (worker.Account, error)
	FetchSettings(ctx context.Context) (worker.Settings, error)
	SaveSetting(ctx context.Context, key, value string) error

	ListNotes(ctx context.Context) ([]worker.Note, error)
	CreateNote(ctx context.Context, title, content string) (worker.Note, error)
	EditNoteTitle(ctx context.Context, id, title string) error
	EditNoteContent(ctx context.Context, id, content string) error
	DeleteNote(ctx context.Context, id string) error

	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	GenerateTwoFactorKey(ctx context.Context) (worker.TwoFactorKey, error)
	EnableTwoFactor(ctx context.Context, code string) (string, error)
	DisableTwoFactor(ctx context.Context, code string) error
}

// App holds all the core services and business logic
type App struct {
	Backend Backend
	Callers *dialog.Callers

	Notes    *NoteService
	Security *SecurityService

	// Event system
	EventBroker *events.Broker

	logger *log.Logger
}

// Option configures an App.
type Option func(*options)

type options struct {
	logger     *log.Logger
	callerOpts []dialog.CallerOption
}

// WithLogger sets the logger for the app and its dialog callers.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCallerOptions passes options to every dialog caller.
func WithCallerOptions(opts ...dialog.CallerOption) Option {
	return func(o *options) {
		o.callerOpts = append(o.callerOpts, opts...)
	}
}

// New creates a new app with all services initialized
func New(backend Backend, eventBroker *events.Broker, opts ...Option) *App {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	callerOpts := append([]dialog.CallerOption{dialog.WithLogger(o.logger)}, o.callerOpts...)

	app := &App{
		Backend:     backend,
		Callers:     dialog.NewCallers(eventBroker, callerOpts...),
		EventBroker: eventBroker,
		logger:      o.logger.WithPrefix("app"),
	}

	app.Notes = NewNoteService(app)
	app.Security = NewSecurityService(app)

	return app
}

// status publishes a toast
func (a *App) status(message string, kind events.StatusType) {
	a.EventBroker.Publish(events.Event{
		Type:    events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{Message: message, Type: kind},
	})
}

// fail reports a failed operation as an error toast and returns err.
func (a *App) fail(action string, err error) error {
	a.logger.Warn(action+" failed", "err", err)
	a.status(err.Error(), events.StatusError)
	return err
}

// abandoned reports a dialog that never got an answer.
func (a *App) abandoned(action string, err error) error {
	a.logger.Warn(action+" abandoned", "err", err)
	a.status("No answer, "+action+" cancelled", events.StatusInfo)
	return err
}

// RefetchAccount asks every account view to reload.
func (a *App) RefetchAccount() {
	a.EventBroker.Emit(events.AccountRefetchEvent, nil)
}
