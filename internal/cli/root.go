// Package cli holds the nimbus command tree.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/billie-coop/nimbus/internal/app"
	"github.com/billie-coop/nimbus/internal/config"
	"github.com/billie-coop/nimbus/internal/tui"
	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/billie-coop/nimbus/internal/worker"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dataDir string
	version string = "dev"
)

// rootCmd starts the terminal UI when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "nimbus",
	Short: "Notes and account security in your terminal",
	Long: `nimbus keeps your notes and account settings in a local workspace.

Quick Start:
  nimbus                          # Open the workspace
  nimbus config show              # Print the configuration
  nimbus config set theme light   # Change a setting
  nimbus code                     # Print the current two-factor code`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "Directory holding the database, config and log")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig reads the config for the selected data directory.
func loadConfig() (*config.Config, *config.Manager, error) {
	manager := config.NewManager(dataDir)
	if err := manager.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return manager.Get(), manager, nil
}

// newLogger opens the log file. The UI owns the terminal, so nothing is
// written to stderr while it runs.
func newLogger(cfg *config.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "nimbus",
	})
	return logger, f, nil
}

func openWorker(cfg *config.Config, logger *log.Logger) (*worker.Worker, error) {
	w, err := worker.Open(cfg.DatabasePath(),
		worker.WithLogger(logger),
		worker.WithCodeLength(cfg.TwoFactorCodeLength),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return w, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	timeout, err := cfg.DialogTimeoutDuration()
	if err != nil {
		return err
	}

	logger, logFile, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	w, err := openWorker(cfg, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	themes := styles.NewManager(cfg.Theme)
	styles.SetDefaultManager(themes)

	broker := events.NewBroker()
	appInstance := app.New(w, broker,
		app.WithLogger(logger),
		app.WithCallerOptions(dialog.WithTimeout(timeout)),
	)
	dialogManager := dialog.NewManager(broker, w, cfg.TwoFactorCodeLength)

	model := tui.New(appInstance, dialogManager,
		tui.WithLogger(logger),
		tui.WithThemes(themes),
	)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Dialogs open from flow goroutines; Send must not block them
	dialogManager.SetSender(func(msg tea.Msg) { go p.Send(msg) })

	logger.Info("starting", "data_dir", cfg.DataDir, "version", version)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run program: %w", err)
	}
	return nil
}
