// Package iotesting provides shared test utilities for integration
// tests. This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"strconv"

	"github.com/migward/migward/pkg/config"
)

// TestDatabaseName is the database name used for all integration tests.
// This ensures tests never accidentally run against production databases.
const TestDatabaseName = "migward_test"

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from built-in defaults, applies MIGWARD_DATABASE_* env
// overrides, and forces the database name to TestDatabaseName for
// safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if v := os.Getenv("MIGWARD_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v := os.Getenv("MIGWARD_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			opts = append(opts, config.OptDatabasePort(port))
		}
	}
	if v := os.Getenv("MIGWARD_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("MIGWARD_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	cfg.Update(opts)

	// Always use test database for safety
	cfg.Database.Database = TestDatabaseName

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for
// tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
