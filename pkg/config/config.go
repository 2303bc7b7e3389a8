// Package config provides configuration management for migward.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use MIGWARD_ prefix with underscores for nesting:
//
//	MIGWARD_DATABASE_HOST=localhost
//	MIGWARD_DATABASE_PORT=5432
//	MIGWARD_CLEAN_DISABLED=true
//	MIGWARD_LOG_LEVEL=info
package config

// Config represents the complete migward configuration.
type Config struct {
	// Database contains connection settings for the managed database.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Clean contains settings for the destructive schema-reset workflow.
	Clean CleanConfig `mapstructure:"clean" yaml:"clean"`

	// History contains schema-history table settings.
	History HistoryConfig `mapstructure:"history" yaml:"history"`

	// Callbacks contains lifecycle callback settings.
	Callbacks CallbacksConfig `mapstructure:"callbacks" yaml:"callbacks"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver selects the database engine.
	// Valid values: "postgres", "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// File is the database file path when Driver is "sqlite".
	File string `mapstructure:"file" yaml:"file"`

	// MaxConnections caps the connection pool size.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`
}

// CleanConfig contains settings for the clean command.
type CleanConfig struct {
	// Schemas is the ordered list of schemas the clean workflow targets.
	// The first schema is the home schema used for session context
	// switches. Empty list means the default schema of the connection.
	Schemas []string `mapstructure:"schemas" yaml:"schemas"`

	// Disabled blocks the clean workflow entirely. Running clean against
	// a production database is rarely survivable, so the safe value is
	// the default and must be flipped deliberately.
	Disabled bool `mapstructure:"disabled" yaml:"disabled"`
}

// HistoryConfig contains schema-history table settings.
type HistoryConfig struct {
	// Table is the name of the schema-history table.
	Table string `mapstructure:"table" yaml:"table"`

	// BaselineVersion is the version recorded by the baseline command.
	BaselineVersion string `mapstructure:"baseline_version" yaml:"baseline_version"`

	// BaselineDescription is the description recorded by the baseline
	// command.
	BaselineDescription string `mapstructure:"baseline_description" yaml:"baseline_description"`
}

// CallbacksConfig contains lifecycle callback settings.
type CallbacksConfig struct {
	// Dir is the directory searched for SQL callback scripts
	// (beforeClean.sql, afterClean.sql). Empty means no script callbacks.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:         "postgres",
			Host:           "localhost",
			Port:           5432,
			User:           "postgres",
			Password:       "postgres",
			Database:       "migward",
			SSLMode:        "disable",
			File:           "migward.sqlite",
			MaxConnections: 10,
		},
		Clean: CleanConfig{
			// clean is destructive, it stays off until enabled on purpose
			Disabled: true,
		},
		History: HistoryConfig{
			Table:               "schema_history",
			BaselineVersion:     "1",
			BaselineDescription: "<< Baseline >>",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
