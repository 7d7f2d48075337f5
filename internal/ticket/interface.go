package ticket

import (
	"context"

	"appliance-support-bot/internal/model"
)

// Synchronizer reconciles the local ticket cache against the remote tracker
// and applies mutations. All remote failures are returned, never swallowed;
// the cache is only written after the corresponding remote operation
// succeeded.
type Synchronizer interface {
	// Create runs the ticket-creation pipeline: list projects and
	// categories, extract fields (degrading to the first project and its
	// first category when extraction is uncertain), create the remote
	// issue, and cache it with status open.
	Create(ctx context.Context, sc model.Scope, problem string) (CreateOutput, error)

	// StatusDigest fetches every cached ticket from the tracker,
	// reconciles stale status/category values into the cache, and returns
	// one entry per ticket. A fetch failure yields an entry with Err set
	// and does not abort the digest.
	StatusDigest(ctx context.Context, sc model.Scope) ([]StatusEntry, error)

	// Close marks the remote ticket closed, then updates the cache.
	Close(ctx context.Context, sc model.Scope, ticketID int) error

	// Delete removes the remote ticket, then drops it from the cache.
	Delete(ctx context.Context, sc model.Scope, ticketID int) error

	// OpenTickets lists the cached tickets for identifier resolution and
	// display.
	OpenTickets(ctx context.Context, sc model.Scope) ([]model.LocalTicket, error)
}
