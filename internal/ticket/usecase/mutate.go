package usecase

import (
	"context"
	"fmt"

	"appliance-support-bot/internal/mantis"
	"appliance-support-bot/internal/model"
)

const closeNote = "Closed via support bot."

// Close marks the remote ticket closed and mirrors the status into the cache.
// The cache is untouched when the remote mutation fails.
func (s *implSynchronizer) Close(ctx context.Context, sc model.Scope, ticketID int) error {
	patch := mantis.IssuePatch{
		Status: &mantis.ObjectRef{ID: s.closeStatus},
	}
	if err := s.tracker.UpdateIssue(ctx, ticketID, patch); err != nil {
		return fmt.Errorf("close issue %d: %w", ticketID, err)
	}

	// The audit note is best effort. The ticket is already closed remotely,
	// so a note failure must not fail the close.
	if err := s.tracker.AddNote(ctx, ticketID, closeNote); err != nil {
		s.l.Warnf(ctx, "internal.ticket.Close: audit note for %d failed: %v", ticketID, err)
	}

	if err := s.cache.UpdateStatus(ctx, sc.UserID, ticketID, model.TicketStatusClosed); err != nil {
		return fmt.Errorf("cache close of %d: %w", ticketID, err)
	}

	s.l.Infof(ctx, "internal.ticket.Close: user=%s ticket=%d", sc.UserID, ticketID)
	return nil
}

// Delete removes the remote ticket and drops it from the cache. The cache is
// untouched when the remote delete fails.
func (s *implSynchronizer) Delete(ctx context.Context, sc model.Scope, ticketID int) error {
	if err := s.tracker.DeleteIssue(ctx, ticketID); err != nil {
		return fmt.Errorf("delete issue %d: %w", ticketID, err)
	}

	if err := s.cache.Remove(ctx, sc.UserID, ticketID); err != nil {
		return fmt.Errorf("uncache ticket %d: %w", ticketID, err)
	}

	s.l.Infof(ctx, "internal.ticket.Delete: user=%s ticket=%d", sc.UserID, ticketID)
	return nil
}
