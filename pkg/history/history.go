// Package history defines the contract for the persisted migration
// ledger (the schema-history table) and its row model.
package history

import (
	"context"
	"time"
)

// TypeSchema marks the synthetic history row written when migward
// itself created the target schemas. Its presence tells the clean
// workflow that whole schemas, not just their contents, belong to the
// tool and may be dropped.
const TypeSchema = "SCHEMA"

// TypeBaseline marks the row written by the baseline command.
const TypeBaseline = "BASELINE"

// AppliedMigration is one row of the schema-history table.
type AppliedMigration struct {
	InstalledRank int       `gorm:"column:installed_rank;primaryKey"`
	Version       string    `gorm:"column:version;type:varchar(50)"`
	Description   string    `gorm:"column:description;type:varchar(200);not null"`
	Type          string    `gorm:"column:type;type:varchar(20);not null"`
	Script        string    `gorm:"column:script;type:varchar(1000);not null"`
	Checksum      *int32    `gorm:"column:checksum"`
	InstalledBy   string    `gorm:"column:installed_by;type:varchar(100);not null"`
	InstalledOn   time.Time `gorm:"column:installed_on;not null;autoCreateTime"`
	ExecutionTime int64     `gorm:"column:execution_time;not null"`
	Success       bool      `gorm:"column:success;not null"`
}

// Store gives access to the schema-history table. Query results may be
// cached per store instance; ClearCache resets the cache after the
// table's shape may have changed.
type Store interface {
	// Exists reports whether the schema-history table is present.
	Exists(ctx context.Context) (bool, error)

	// HasSchemasMarker reports whether the ledger carries a row of
	// TypeSchema, meaning the schemas themselves were created by the
	// tool and should be dropped rather than emptied.
	HasSchemasMarker(ctx context.Context) (bool, error)

	// Applied returns all history rows ordered by installed rank.
	Applied(ctx context.Context) ([]AppliedMigration, error)

	// Baseline creates the history table if needed and records a
	// baseline row with the given version and description.
	Baseline(ctx context.Context, version, description string) error

	// ClearCache drops any cached query results.
	ClearCache()
}
