// Package ioclean implements the destructive schema-reset workflow.
// Every target schema is dropped or emptied depending on the
// schema-history marker, lifecycle callbacks observe both edges of the
// run, and the session's ambient schema is restored on every exit path.
package ioclean

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/migward/migward/pkg/dialect"
	"github.com/migward/migward/pkg/history"
	"github.com/migward/migward/pkg/lifecycle"
)

// policy is the per-run decision between emptying schemas and dropping
// them. It is computed once from the schema-history marker and never
// re-evaluated inside the schema loop.
type policy int

const (
	cleanPolicy policy = iota
	dropPolicy
)

type cleaner struct {
	session   dialect.Session
	history   history.Store
	schemas   []dialect.Schema
	callbacks []lifecycle.Callback
	disabled  bool
}

// NewCleaner creates a Cleaner over the given collaborators. The first
// schema of the list is the home schema used for all ambient context
// switches. Callbacks fire in the order they are given.
func NewCleaner(
	session dialect.Session,
	store history.Store,
	schemas []dialect.Schema,
	callbacks []lifecycle.Callback,
	disabled bool,
) lifecycle.Cleaner {
	return &cleaner{
		session:   session,
		history:   store,
		schemas:   schemas,
		callbacks: callbacks,
		disabled:  disabled,
	}
}

// Clean runs the workflow. The disabled guard fires before any side
// effect; after it, the deferred restore of the ambient schema covers
// every exit path.
func (c *cleaner) Clean(ctx context.Context) (err error) {
	if c.disabled {
		return CleanDisabledError()
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	defer func() {
		if rerr := c.session.RestoreCurrentSchema(ctx); rerr != nil {
			log.Error("Cannot restore current schema",
				"error", rerr)
			if err == nil {
				err = rerr
			}
		}
	}()

	for i, cb := range c.callbacks {
		if err = c.runCallback(ctx, cb, "beforeClean", i); err != nil {
			return err
		}
	}

	if err = c.switchToHome(ctx); err != nil {
		return err
	}

	pol := c.resolvePolicy(ctx, log)

	for _, schema := range c.schemas {
		var exists bool
		exists, err = schema.Exists(ctx)
		if err != nil {
			return SchemaExistsCheckError(schema.Name(), err)
		}
		if !exists {
			log.Warn("Unable to clean unknown schema",
				"schema", schema.Name())
			continue
		}

		if pol == dropPolicy {
			err = c.dropSchema(ctx, schema, log)
		} else {
			err = c.cleanSchema(ctx, schema, log)
		}
		if err != nil {
			return err
		}
	}

	for i, cb := range c.callbacks {
		if err = c.runCallback(ctx, cb, "afterClean", i); err != nil {
			return err
		}
	}

	c.history.ClearCache()
	return nil
}

// resolvePolicy reads the schemas marker once per run. A failed read is
// logged and degrades to the less destructive clean policy instead of
// aborting.
func (c *cleaner) resolvePolicy(
	ctx context.Context,
	log *slog.Logger,
) policy {
	marker, err := c.history.HasSchemasMarker(ctx)
	if err != nil {
		log.Error(
			"Error while checking whether the schemas should be dropped",
			"error", err)
		return cleanPolicy
	}
	if marker {
		return dropPolicy
	}
	return cleanPolicy
}

// runCallback executes one callback edge together with the switch to
// the home schema as a single transactional unit. Only the callback's
// own failure is reported as a hook error; a failed switch is a
// session problem and passes through unchanged.
func (c *cleaner) runCallback(
	ctx context.Context,
	cb lifecycle.Callback,
	phase string,
	position int,
) error {
	return c.session.RunAtomic(ctx, func(ctx context.Context) error {
		if err := c.switchToHome(ctx); err != nil {
			return err
		}
		var err error
		if phase == "beforeClean" {
			err = cb.BeforeClean(ctx, c.session)
		} else {
			err = cb.AfterClean(ctx, c.session)
		}
		if err != nil {
			return HookError(cb.Name(), phase, position, err)
		}
		return nil
	})
}

// switchToHome sets the ambient schema to the first target schema.
// With an empty schema list there is no home and no switch happens.
func (c *cleaner) switchToHome(ctx context.Context) error {
	if len(c.schemas) == 0 {
		return nil
	}
	return c.session.ChangeCurrentSchema(ctx, c.schemas[0].Name())
}

func (c *cleaner) dropSchema(
	ctx context.Context,
	schema dialect.Schema,
	log *slog.Logger,
) error {
	log.Debug("Dropping schema", "schema", schema.Name())
	start := time.Now()
	err := c.session.RunAtomic(ctx, func(ctx context.Context) error {
		return schema.Drop(ctx)
	})
	if err != nil {
		return SchemaDropError(schema.Name(), err)
	}
	log.Info("Successfully dropped schema",
		"schema", schema.Name(),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

func (c *cleaner) cleanSchema(
	ctx context.Context,
	schema dialect.Schema,
	log *slog.Logger,
) error {
	log.Debug("Cleaning schema", "schema", schema.Name())
	start := time.Now()
	err := c.session.RunAtomic(ctx, func(ctx context.Context) error {
		return schema.Clean(ctx)
	})
	if err != nil {
		return SchemaCleanError(schema.Name(), err)
	}
	log.Info("Successfully cleaned schema",
		"schema", schema.Name(),
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}
