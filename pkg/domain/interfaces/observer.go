package interfaces

import "context"

// MutationObserver is invoked synchronously by the repository after every
// successful store mutation (create, update, upsert, delete). Observers must
// not fail the mutation: they return nothing and handle their own errors.
type MutationObserver interface {
	OnMutation(ctx context.Context)
}
