// Package lifecycle defines the interfaces of migward's lifecycle
// operations and their callbacks.
package lifecycle

import (
	"context"
)

// Cleaner runs the destructive schema-reset workflow: every target
// schema is either dropped or emptied of all objects, depending on the
// schema-history marker. The workflow is strictly sequential, each
// schema and each callback is processed in its configured order.
type Cleaner interface {
	// Clean executes the workflow once. On any outcome, success or
	// failure, the session's ambient schema is restored to its
	// pre-call value before Clean returns.
	Clean(ctx context.Context) error
}
