package lifecycle

import (
	"context"

	"github.com/migward/migward/pkg/dialect"
)

// Callback observes the edges of the clean workflow. Callbacks are
// invoked in registration order, each inside its own transaction, with
// the session's ambient schema set to the home schema.
type Callback interface {
	// Name identifies the callback in logs and errors.
	Name() string

	// BeforeClean fires before any schema is mutated.
	BeforeClean(ctx context.Context, session dialect.Session) error

	// AfterClean fires after every schema has been processed.
	AfterClean(ctx context.Context, session dialect.Session) error
}
