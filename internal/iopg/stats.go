package iopg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/migward/migward/pkg/dialect"
	"golang.org/x/sync/errgroup"
)

// CollectStats gathers object counts for the given schemas. Queries run
// concurrently on the pool, one goroutine per schema, so the helper
// must not be used with a single-connection session.
func CollectStats(
	ctx context.Context,
	pool *pgxpool.Pool,
	names []string,
) ([]dialect.SchemaStats, error) {
	res := make([]dialect.SchemaStats, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			stats, err := schemaStats(ctx, pool, name)
			if err != nil {
				return err
			}
			res[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

func schemaStats(
	ctx context.Context,
	pool *pgxpool.Pool,
	name string,
) (dialect.SchemaStats, error) {
	res := dialect.SchemaStats{Name: name}

	existsQ := `
		SELECT EXISTS (
			SELECT FROM information_schema.schemata
			WHERE schema_name = $1
		)
	`
	err := pool.QueryRow(ctx, existsQ, name).Scan(&res.Exists)
	if err != nil {
		return res, ExistsCheckError(name, err)
	}
	if !res.Exists {
		return res, nil
	}

	countQ := `
		SELECT
			(SELECT count(*) FROM pg_tables WHERE schemaname = $1) +
			(SELECT count(*) FROM information_schema.views
				WHERE table_schema = $1) +
			(SELECT count(*) FROM pg_matviews WHERE schemaname = $1) +
			(SELECT count(*) FROM information_schema.sequences
				WHERE sequence_schema = $1) +
			(SELECT count(*) FROM pg_proc p
				JOIN pg_namespace n ON n.oid = p.pronamespace
				WHERE n.nspname = $1 AND p.prokind IN ('f', 'p')) +
			(SELECT count(*) FROM pg_type t
				JOIN pg_namespace n ON n.oid = t.typnamespace
				WHERE t.typtype = 'e' AND n.nspname = $1)
	`
	err = pool.QueryRow(ctx, countQ, name).Scan(&res.Objects)
	if err != nil {
		return res, InventoryError(name, err)
	}

	return res, nil
}
