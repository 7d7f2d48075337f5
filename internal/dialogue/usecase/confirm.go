package usecase

import (
	"context"

	"appliance-support-bot/internal/dialogue"
	"appliance-support-bot/internal/model"
)

// resolveConfirmation handles a literal yes/no reply against the pending
// question on the action stack.
func (uc *implUseCase) resolveConfirmation(ctx context.Context, sc model.Scope, sess *model.Session, lower, msg string) ([]string, error) {
	yes := lower == "yes" || lower == "y"

	switch sess.PeekAction() {
	case model.ActionAskedKB:
		if yes {
			// Solved; start a fresh problem cycle.
			if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
				return nil, err
			}
			return []string{dialogue.ReplyGladToHelp}, nil
		}

		// Troubleshooting didn't help: escalate to a ticket using the
		// stored problem text.
		sess.PopAction()
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		problem := sess.Problem
		if problem == "" {
			problem = msg
		}
		return uc.runCreatePipeline(ctx, sc, problem)

	case model.ActionAskedTicket:
		// Either outcome ends the cycle.
		if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
			return nil, err
		}
		if yes {
			return []string{dialogue.ReplyTicketConfirmYes}, nil
		}
		return []string{dialogue.ReplyTicketConfirmNo}, nil
	}

	return []string{dialogue.ReplyFallback}, nil
}
