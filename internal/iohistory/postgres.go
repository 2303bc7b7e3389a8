// Package iohistory implements the schema-history store. The
// PostgreSQL store wraps GORM over the pgx pool, the SQLite store uses
// database/sql directly.
package iohistory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/migward/migward/pkg/history"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgStore implements history.Store for PostgreSQL.
type pgStore struct {
	db    *gorm.DB
	table string
	user  string

	// applied rows cached until ClearCache
	cache    []history.AppliedMigration
	hasCache bool
}

// NewPgStore creates a history store over the given pool. The user is
// recorded as installed_by on baseline rows.
func NewPgStore(
	pool *pgxpool.Pool,
	table, user string,
) (history.Store, error) {
	if pool == nil {
		return nil, NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}

	return &pgStore{db: gormDB, table: table, user: user}, nil
}

// Exists reports whether the schema-history table is present.
func (s *pgStore) Exists(ctx context.Context) (bool, error) {
	return s.db.WithContext(ctx).Migrator().HasTable(s.table), nil
}

// HasSchemasMarker reports whether the ledger carries a SCHEMA row.
func (s *pgStore) HasSchemasMarker(ctx context.Context) (bool, error) {
	rows, err := s.Applied(ctx)
	if err != nil {
		return false, err
	}
	for _, row := range rows {
		if row.Type == history.TypeSchema {
			return true, nil
		}
	}
	return false, nil
}

// Applied returns all history rows ordered by installed rank. Rows are
// cached until ClearCache.
func (s *pgStore) Applied(
	ctx context.Context,
) ([]history.AppliedMigration, error) {
	if s.hasCache {
		return s.cache, nil
	}

	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		s.cache = nil
		s.hasCache = true
		return nil, nil
	}

	var rows []history.AppliedMigration
	err = s.db.WithContext(ctx).
		Table(s.table).
		Order("installed_rank").
		Find(&rows).Error
	if err != nil {
		return nil, QueryError(s.table, err)
	}

	s.cache = rows
	s.hasCache = true
	return rows, nil
}

// Baseline creates the history table if needed and records a baseline
// row.
func (s *pgStore) Baseline(
	ctx context.Context,
	version, description string,
) error {
	err := s.db.WithContext(ctx).
		Table(s.table).
		AutoMigrate(&history.AppliedMigration{})
	if err != nil {
		return BaselineError(s.table, err)
	}
	s.ClearCache()

	rows, err := s.Applied(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Type == history.TypeBaseline {
			return AlreadyBaselinedError(s.table, row.Version)
		}
	}

	rank := 1
	if n := len(rows); n > 0 {
		rank = rows[n-1].InstalledRank + 1
	}

	row := history.AppliedMigration{
		InstalledRank: rank,
		Version:       version,
		Description:   description,
		Type:          history.TypeBaseline,
		Script:        description,
		InstalledBy:   s.user,
		ExecutionTime: 0,
		Success:       true,
	}
	err = s.db.WithContext(ctx).Table(s.table).Create(&row).Error
	if err != nil {
		return BaselineError(s.table, err)
	}

	s.ClearCache()
	return nil
}

// ClearCache drops the cached rows; the next query hits the database.
func (s *pgStore) ClearCache() {
	s.cache = nil
	s.hasCache = false
}
