package worker

import (
	"context"
)

// Worker is one background consumer with a managed lifecycle.
type Worker interface {
	// Start runs the worker loop until Stop or ctx cancellation.
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
