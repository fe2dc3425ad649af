package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config represents the nimbus configuration
type Config struct {
	// Storage
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Logging: debug, info, warn, error
	LogLevel string `json:"log_level" yaml:"log_level"`

	// UI preferences
	Theme string `json:"theme" yaml:"theme"`

	// Dialogs
	TwoFactorCodeLength int    `json:"two_factor_code_length" yaml:"two_factor_code_length"`
	DialogTimeout       string `json:"dialog_timeout" yaml:"dialog_timeout"` // empty waits forever
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:             dataDir,
		LogLevel:            "info",
		Theme:               "nimbus",
		TwoFactorCodeLength: 6,
		DialogTimeout:       "",
	}
}

// DialogTimeoutDuration parses DialogTimeout. Zero means no timeout.
func (c *Config) DialogTimeoutDuration() (time.Duration, error) {
	if c.DialogTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.DialogTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid dialog_timeout %q: %w", c.DialogTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid dialog_timeout %q: must not be negative", c.DialogTimeout)
	}
	return d, nil
}

// DatabasePath is the worker's sqlite file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "nimbus.db")
}

// LogPath is the log file the TUI writes to.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "nimbus.log")
}

// DefaultDataDir returns $NIMBUS_DATA_DIR or ~/.nimbus.
func DefaultDataDir() string {
	if dir := os.Getenv("NIMBUS_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nimbus"
	}
	return filepath.Join(home, ".nimbus")
}

// Manager handles configuration loading and saving
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a new configuration manager for dataDir
func NewManager(dataDir string) *Manager {
	return &Manager{
		configPath: filepath.Join(dataDir, "config.json"),
		config:     DefaultConfig(dataDir),
	}
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.configPath
}

// Load reads the configuration from disk, creating defaults if needed
func (m *Manager) Load() error {
	dataDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := m.ensureGitignore(); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so keys missing from older files keep a value
	config := *DefaultConfig(dataDir)
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse config JSON: %w", err)
	}

	m.expandEnvVars(&config)

	if err := validate(&config); err != nil {
		return err
	}

	m.config = &config
	return nil
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Get returns the current configuration
func (m *Manager) Get() *Config {
	return m.config
}

// Set updates a configuration value and saves
func (m *Manager) Set(key, value string) error {
	next := *m.config

	switch key {
	case "data_dir":
		next.DataDir = value
	case "log_level":
		next.LogLevel = value
	case "theme":
		next.Theme = value
	case "two_factor_code_length":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid two_factor_code_length %q: %w", value, err)
		}
		next.TwoFactorCodeLength = n
	case "dialog_timeout":
		next.DialogTimeout = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := validate(&next); err != nil {
		return err
	}

	m.config = &next
	return m.Save()
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{"data_dir", "log_level", "theme", "two_factor_code_length", "dialog_timeout"}
}

func validate(c *Config) error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	// RFC 4226 codes have 6 to 8 digits
	if c.TwoFactorCodeLength < 6 || c.TwoFactorCodeLength > 8 {
		return fmt.Errorf("invalid two_factor_code_length %d: must be between 6 and 8", c.TwoFactorCodeLength)
	}
	if _, err := c.DialogTimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// ensureGitignore creates a .gitignore in the data directory so a synced
// or versioned dotfiles folder never picks up the database or logs
func (m *Manager) ensureGitignore() error {
	gitignorePath := filepath.Join(filepath.Dir(m.configPath), ".gitignore")

	if _, err := os.Stat(gitignorePath); !os.IsNotExist(err) {
		return nil // Already exists
	}

	gitignoreContent := `# nimbus data directory .gitignore
#
# Only the config is worth keeping under version control

# Ignore logs and the local database
*.log
*.db
*.db-wal
*.db-shm
*.tmp
.DS_Store

# Allow these important files
!config.json
!.gitignore
`

	return os.WriteFile(gitignorePath, []byte(gitignoreContent), 0o644)
}

// Regular expression to match $VAR or ${VAR}
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnvVars expands environment variables in config values
func (m *Manager) expandEnvVars(config *Config) {
	config.DataDir = m.expandString(config.DataDir)
	config.LogLevel = m.expandString(config.LogLevel)
	config.Theme = m.expandString(config.Theme)
	config.DialogTimeout = m.expandString(config.DialogTimeout)
}

// expandString expands environment variables in a string
// Supports $VAR and ${VAR} syntax
func (m *Manager) expandString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		// Return original if env var not found
		return match
	})
}
