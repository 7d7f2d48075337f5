package dialogue

import (
	"context"

	"appliance-support-bot/internal/model"
)

// UseCase is the dialogue controller: given one inbound message it decides
// the replies, mutates the session, and drives the ticket pipeline. External
// service failures are converted into user-visible replies; the handler
// always produces at least one coherent reply. A returned error means the
// local store itself failed and the caller should apologize generically.
type UseCase interface {
	HandleMessage(ctx context.Context, sc model.Scope, text string) ([]string, error)
}
