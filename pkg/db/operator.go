package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/migward/migward/pkg/config"
)

// Operator defines the interface for basic PostgreSQL connection
// management. It provides connection lifecycle management and exposes
// the pgxpool.Pool so dialect and history components can execute their
// specialized SQL operations internally.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// dedicated connections, transactions, and custom queries.
	Pool() *pgxpool.Pool
}
