package usecase

import (
	"context"
	"errors"
	"fmt"

	"appliance-support-bot/internal/dialogue"
	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/ticket"
)

// runCreatePipeline drives the ticket-creation pipeline and converts its
// terminal errors into user-visible replies. On success the new id is added
// to the session's ticket list (mirroring the cache) before the session is
// reset with tickets preserved.
func (uc *implUseCase) runCreatePipeline(ctx context.Context, sc model.Scope, problem string) ([]string, error) {
	out, err := uc.tickets.Create(ctx, sc, problem)
	if err != nil {
		switch {
		case errors.Is(err, ticket.ErrNoProjects):
			return []string{dialogue.ReplyNoProjects}, nil
		case errors.Is(err, ticket.ErrNoCategories):
			return []string{dialogue.ReplyNoCategories}, nil
		case errors.Is(err, ticket.ErrUnresolvedMatch):
			return []string{dialogue.ReplyUnresolvedMatch}, nil
		}
		uc.l.Errorf(ctx, "internal.dialogue.runCreatePipeline: %v", err)
		return []string{fmt.Sprintf(dialogue.FmtCreateError, err)}, nil
	}

	if err := uc.sessions.Update(ctx, sc.UserID, func(s *model.Session) {
		s.AddTicket(out.TicketID)
	}); err != nil {
		return nil, err
	}
	if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
		return nil, err
	}

	format := dialogue.FmtTicketCreated
	if out.UsedFallback {
		format = dialogue.FmtTicketCreatedFallback
	}
	return []string{fmt.Sprintf(format, out.TicketID)}, nil
}

// resetPreservingTickets clears the session record and immediately recreates
// it, carrying the ticket id list into the new record.
func (uc *implUseCase) resetPreservingTickets(ctx context.Context, userID string) error {
	old, err := uc.sessions.Get(ctx, userID)
	if err != nil {
		return err
	}

	tickets := []int{}
	if old != nil && len(old.Tickets) > 0 {
		tickets = old.Tickets
	}

	if err := uc.sessions.Clear(ctx, userID); err != nil {
		return err
	}
	fresh, err := uc.sessions.Create(ctx, userID)
	if err != nil {
		return err
	}
	fresh.Tickets = tickets
	return uc.sessions.Save(ctx, fresh)
}
