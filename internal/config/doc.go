// Package config provides local configuration for nimbus.
//
// Everything lives in the data directory (~/.nimbus unless NIMBUS_DATA_DIR is
// set):
//
//	~/.nimbus/
//	├── config.json   # Settings
//	├── .gitignore    # Keeps the database and logs out of dotfile repos
//	├── nimbus.db     # Worker database
//	└── nimbus.log    # TUI log
//
// The config.json file contains simple key-value settings:
//
//	{
//	  "data_dir": "/home/me/.nimbus",
//	  "log_level": "info",
//	  "theme": "nimbus",
//	  "two_factor_code_length": 6,
//	  "dialog_timeout": ""
//	}
//
// An empty dialog_timeout makes dialog requests wait for the user forever;
// any Go duration ("2m", "90s") gives up and treats the request as cancelled.
//
// String values can reference environment variables using $VAR or ${VAR}:
//
//	{
//	  "data_dir": "${XDG_DATA_HOME}/nimbus"
//	}
//
// Example usage:
//
//	manager := config.NewManager(config.DefaultDataDir())
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := manager.Get()
//	manager.Set("theme", "light")
package config
