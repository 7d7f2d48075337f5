package repository

import (
	"context"

	"appliance-support-bot/internal/model"
)

// SessionRepository is the per-user key-value store for conversation records.
// All operations address a single user's record; there is no cross-user
// transaction. Callers follow read-modify-write semantics via Get/Save or the
// Update merge helper.
type SessionRepository interface {
	Exists(ctx context.Context, userID string) (bool, error)

	// Create initializes and persists the default record for a user,
	// replacing any existing one.
	Create(ctx context.Context, userID string) (*model.Session, error)

	// Get returns the user's record, or nil when absent.
	Get(ctx context.Context, userID string) (*model.Session, error)

	// Save persists the record, stamping LastActive unconditionally.
	Save(ctx context.Context, sess *model.Session) error

	// Update performs a read-modify-write merge: it loads the record,
	// applies mutate, and saves. A missing record is a no-op.
	Update(ctx context.Context, userID string, mutate func(*model.Session)) error

	Clear(ctx context.Context, userID string) error

	// Expired reports true when no record exists or the record has been
	// inactive longer than the configured timeout.
	Expired(ctx context.Context, userID string) (bool, error)
}
