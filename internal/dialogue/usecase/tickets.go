package usecase

import (
	"context"
	"fmt"
	"strings"

	"appliance-support-bot/internal/dialogue"
	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/nlu"
)

// ticketStatus renders the reconciled status digest for the user's tickets.
func (uc *implUseCase) ticketStatus(ctx context.Context, sc model.Scope, sess *model.Session) ([]string, error) {
	entries, err := uc.tickets.StatusDigest(ctx, sc)
	if err != nil {
		return nil, err
	}

	sess.ClearActions()
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return []string{dialogue.ReplyNoTickets}, nil
	}

	var sb strings.Builder
	sb.WriteString("Ticket updates/history:")
	for _, e := range entries {
		sb.WriteString("\n――――――――――\n")
		if e.Err != "" {
			fmt.Fprintf(&sb, "ID: `%d` | Error fetching ticket: %s", e.ID, e.Err)
			continue
		}
		fmt.Fprintf(&sb, "ID: `%d` | %s | Status: %s | Category: %s", e.ID, e.Summary, e.Status, e.Category)
		if len(e.Notes) > 0 {
			sb.WriteString("\nUpdates:")
			for _, n := range e.Notes {
				fmt.Fprintf(&sb, "\n- %s", n)
			}
		}
	}
	return []string{sb.String()}, nil
}

// closeTicket resolves the target ticket and applies the close mutation.
func (uc *implUseCase) closeTicket(ctx context.Context, sc model.Scope, sess *model.Session, msg string) ([]string, error) {
	id, ok, err := uc.resolveTicketRef(ctx, sc, msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Ambiguous reference: ask, mutate nothing, leave the stack alone.
		return []string{fmt.Sprintf(dialogue.FmtWhichTicket, "close")}, nil
	}

	reply := fmt.Sprintf(dialogue.FmtTicketClosed, id)
	if closeErr := uc.tickets.Close(ctx, sc, id); closeErr != nil {
		reply = fmt.Sprintf(dialogue.FmtCloseError, closeErr)
	}

	sess.ClearActions()
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return []string{reply}, nil
}

// deleteTicket resolves the target ticket and deletes it remotely and locally.
func (uc *implUseCase) deleteTicket(ctx context.Context, sc model.Scope, sess *model.Session, msg string) ([]string, error) {
	id, ok, err := uc.resolveTicketRef(ctx, sc, msg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{fmt.Sprintf(dialogue.FmtWhichTicket, "delete")}, nil
	}

	reply := fmt.Sprintf(dialogue.FmtTicketDeleted, id)
	if delErr := uc.tickets.Delete(ctx, sc, id); delErr != nil {
		reply = fmt.Sprintf(dialogue.FmtDeleteError, delErr)
	} else {
		// Keep the session's ticket list equal to the cache id set.
		sess.RemoveTicket(id)
	}

	sess.ClearActions()
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return []string{reply}, nil
}

// resolveTicketRef asks the identifier-resolution service to map the command
// onto one of the user's cached tickets. A resolver failure is treated as no
// confident match.
func (uc *implUseCase) resolveTicketRef(ctx context.Context, sc model.Scope, msg string) (int, bool, error) {
	cached, err := uc.tickets.OpenTickets(ctx, sc)
	if err != nil {
		return 0, false, err
	}

	open := make([]nlu.OpenTicket, 0, len(cached))
	for _, t := range cached {
		open = append(open, nlu.OpenTicket{ID: t.ID, Category: t.Category})
	}

	id, ok, err := uc.resolver.PickTicketID(ctx, msg, open)
	if err != nil {
		uc.l.Warnf(ctx, "internal.dialogue.resolveTicketRef: resolver failed: %v", err)
		return 0, false, nil
	}
	if !ok {
		return 0, false, nil
	}

	// Only tickets the user actually owns are valid targets.
	for _, t := range cached {
		if t.ID == id {
			return id, true, nil
		}
	}
	uc.l.Warnf(ctx, "internal.dialogue.resolveTicketRef: resolver picked foreign ticket %d", id)
	return 0, false, nil
}
