package iosqlite

import (
	"context"
	"fmt"

	"github.com/migward/migward/pkg/dialect"
)

// CollectStats gathers object counts for the given schemas. SQLite
// serializes statements on the pinned connection, so schemas are
// visited one after another.
func CollectStats(
	ctx context.Context,
	session *Session,
	names []string,
) ([]dialect.SchemaStats, error) {
	res := make([]dialect.SchemaStats, len(names))

	for i, name := range names {
		stats := dialect.SchemaStats{Name: name}

		exists, err := NewSchema(session, name).Exists(ctx)
		if err != nil {
			return nil, err
		}
		stats.Exists = exists

		if exists {
			q := fmt.Sprintf(`
				SELECT count(*) FROM %q.sqlite_master
				WHERE name NOT LIKE 'sqlite_%%'
			`, name)
			rows, err := session.Query(ctx, q)
			if err != nil {
				return nil, InventoryError(name, err)
			}
			if rows.Next() {
				if err := rows.Scan(&stats.Objects); err != nil {
					rows.Close()
					return nil, InventoryError(name, err)
				}
			}
			rows.Close()
			if err := rows.Err(); err != nil {
				return nil, InventoryError(name, err)
			}
		}

		res[i] = stats
	}

	return res, nil
}
