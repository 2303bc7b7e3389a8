package iohistory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/migward/migward/internal/iosqlite"
	"github.com/migward/migward/pkg/history"
)

// sqliteStore implements history.Store over a SQLite session.
type sqliteStore struct {
	session *iosqlite.Session
	table   string
	user    string

	cache    []history.AppliedMigration
	hasCache bool
}

// NewSqliteStore creates a history store over the given session.
func NewSqliteStore(
	session *iosqlite.Session,
	table, user string,
) history.Store {
	return &sqliteStore{session: session, table: table, user: user}
}

func (s *sqliteStore) Exists(ctx context.Context) (bool, error) {
	rows, err := s.session.Query(ctx,
		"SELECT count(*) FROM sqlite_master "+
			"WHERE type = 'table' AND name = ?",
		s.table)
	if err != nil {
		return false, QueryError(s.table, err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, QueryError(s.table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return false, QueryError(s.table, err)
	}

	return count > 0, nil
}

func (s *sqliteStore) HasSchemasMarker(
	ctx context.Context,
) (bool, error) {
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

func (s *sqliteStore) Applied(
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

	query := fmt.Sprintf(`
		SELECT installed_rank, version, description, type, script,
			checksum, installed_by, installed_on, execution_time,
			success
		FROM %q
		ORDER BY installed_rank
	`, s.table)

	rows, err := s.session.Query(ctx, query)
	if err != nil {
		return nil, QueryError(s.table, err)
	}
	defer rows.Close()

	var res []history.AppliedMigration
	for rows.Next() {
		var row history.AppliedMigration
		var version sql.NullString
		var installedOn string
		err = rows.Scan(
			&row.InstalledRank, &version, &row.Description,
			&row.Type, &row.Script, &row.Checksum,
			&row.InstalledBy, &installedOn, &row.ExecutionTime,
			&row.Success,
		)
		if err != nil {
			return nil, QueryError(s.table, err)
		}
		// versionless rows (markers) are stored as NULL
		row.Version = version.String
		if t, perr := time.Parse(time.RFC3339, installedOn); perr == nil {
			row.InstalledOn = t
		}
		res = append(res, row)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError(s.table, err)
	}

	s.cache = res
	s.hasCache = true
	return res, nil
}

func (s *sqliteStore) Baseline(
	ctx context.Context,
	version, description string,
) error {
	create := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			installed_rank INTEGER PRIMARY KEY,
			version VARCHAR(50),
			description VARCHAR(200) NOT NULL,
			type VARCHAR(20) NOT NULL,
			script VARCHAR(1000) NOT NULL,
			checksum INTEGER,
			installed_by VARCHAR(100) NOT NULL,
			installed_on TEXT NOT NULL,
			execution_time INTEGER NOT NULL,
			success BOOLEAN NOT NULL
		)
	`, s.table)
	if err := s.session.Exec(ctx, create); err != nil {
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

	insert := fmt.Sprintf(`
		INSERT INTO %q (installed_rank, version, description, type,
			script, checksum, installed_by, installed_on,
			execution_time, success)
		VALUES (?, ?, ?, ?, ?, NULL, ?, ?, 0, true)
	`, s.table)
	err = s.session.Exec(ctx, insert,
		rank, version, description, history.TypeBaseline,
		description, s.user, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return BaselineError(s.table, err)
	}

	s.ClearCache()
	return nil
}

func (s *sqliteStore) ClearCache() {
	s.cache = nil
	s.hasCache = false
}
