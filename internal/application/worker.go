package application

import "context"

// Worker represents a background runner of reporter batches.
// Implementations must run until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
