package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver selects the database engine.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseFile sets the database file path for the sqlite driver.
func OptDatabaseFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database File", s) {
			c.Database.File = s
		}
	}
}

// OptDatabaseMaxConnections caps the connection pool size.
func OptDatabaseMaxConnections(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Connections", i) {
			c.Database.MaxConnections = i
		}
	}
}

// OptCleanSchemas sets the ordered list of schemas targeted by clean.
// The first schema becomes the home schema for context switches.
func OptCleanSchemas(ss []string) Option {
	var res []string
	for _, s := range ss {
		s = strings.TrimSpace(s)
		if s != "" {
			res = append(res, s)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Clean.Schemas = res
		}
	}
}

// OptCleanDisabled sets whether the clean workflow is blocked.
func OptCleanDisabled(b bool) Option {
	return func(c *Config) {
		c.Clean.Disabled = b
	}
}

// OptHistoryTable sets the name of the schema-history table.
func OptHistoryTable(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("History Table", s) {
			c.History.Table = s
		}
	}
}

// OptHistoryBaselineVersion sets the version recorded by baseline.
func OptHistoryBaselineVersion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Baseline Version", s) {
			c.History.BaselineVersion = s
		}
	}
}

// OptHistoryBaselineDescription sets the description recorded by baseline.
func OptHistoryBaselineDescription(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Baseline Description", s) {
			c.History.BaselineDescription = s
		}
	}
}

// OptCallbacksDir sets the directory searched for SQL callback scripts.
func OptCallbacksDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Callbacks Dir", s) {
			c.Callbacks.Dir = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
