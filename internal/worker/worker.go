package worker

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultCodeLength is the number of digits in a two-factor code.
const DefaultCodeLength = 6

// Worker runs account and note operations against a sqlite database.
type Worker struct {
	db     *sql.DB
	logger *log.Logger
	now    func() time.Time
	digits int

	// Serializes read-modify-write sequences on the account row
	mu sync.Mutex
}

// Option configures a Worker.
type Option func(*Worker)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithClock replaces time.Now, for two-factor codes and timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		w.now = now
	}
}

// WithCodeLength sets the number of digits in two-factor codes. Lengths
// outside MinCodeLength..MaxCodeLength are ignored.
func WithCodeLength(digits int) Option {
	return func(w *Worker) {
		if digits >= MinCodeLength && digits <= MaxCodeLength {
			w.digits = digits
		}
	}
}

// Open opens (creating if needed) the database at dbPath.
func Open(dbPath string, opts ...Option) (*Worker, error) {
	w := &Worker{
		logger: log.New(io.Discard),
		now:    time.Now,
		digits: DefaultCodeLength,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithPrefix("worker")

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	w.db = db

	if err := w.initSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	w.logger.Debug("database opened", "path", dbPath)
	return w, nil
}

// initSchema creates the tables and the single account row
func (w *Worker) initSchema(ctx context.Context) error {
	statements := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS account (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL DEFAULT '',
			two_factor_secret TEXT NOT NULL DEFAULT '',
			pending_secret TEXT NOT NULL DEFAULT '',
			recovery_hash TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			password_changed_at INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes(updated_at)",
	}

	for _, query := range statements {
		if _, err := w.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}

	_, err := w.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO account (id, email, created_at) VALUES (1, ?, ?)",
		defaultEmail(), w.now().Unix())
	return err
}

func defaultEmail() string {
	user := os.Getenv("USER")
	if user == "" {
		user = "me"
	}
	return user + "@localhost"
}

// Close closes the database
func (w *Worker) Close() error {
	if w.db == nil {
		return nil
	}
	return w.db.Close()
}
