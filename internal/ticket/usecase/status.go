package usecase

import (
	"context"
	"fmt"

	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/ticket"
)

// StatusDigest fetches each cached ticket from the tracker and reconciles
// stale cache entries. A single failed fetch becomes an error entry; the rest
// of the digest still completes.
func (s *implSynchronizer) StatusDigest(ctx context.Context, sc model.Scope) ([]ticket.StatusEntry, error) {
	cached, err := s.cache.List(ctx, sc.UserID)
	if err != nil {
		return nil, fmt.Errorf("list cached tickets: %w", err)
	}

	entries := make([]ticket.StatusEntry, 0, len(cached))
	for _, t := range cached {
		remote, getErr := s.tracker.GetIssue(ctx, t.ID)
		if getErr != nil {
			s.l.Warnf(ctx, "internal.ticket.StatusDigest: user=%s ticket=%d fetch failed: %v", sc.UserID, t.ID, getErr)
			entries = append(entries, ticket.StatusEntry{ID: t.ID, Err: getErr.Error()})
			continue
		}

		status := t.Status
		if remote.Status.Name != "" && remote.Status.Name != status {
			if err := s.cache.UpdateStatus(ctx, sc.UserID, t.ID, remote.Status.Name); err != nil {
				return nil, fmt.Errorf("reconcile ticket %d status: %w", t.ID, err)
			}
			status = remote.Status.Name
		}

		category := t.Category
		if remote.Category.Name != "" && remote.Category.Name != category {
			if err := s.cache.UpdateCategory(ctx, sc.UserID, t.ID, remote.Category.Name); err != nil {
				return nil, fmt.Errorf("reconcile ticket %d category: %w", t.ID, err)
			}
			category = remote.Category.Name
		}

		notes := make([]string, 0, len(remote.Notes))
		for _, n := range remote.Notes {
			notes = append(notes, n.Text)
		}

		summary := remote.Summary
		if summary == "" {
			summary = "No summary"
		}

		entries = append(entries, ticket.StatusEntry{
			ID:       t.ID,
			Summary:  summary,
			Status:   status,
			Category: category,
			Notes:    notes,
		})
	}

	return entries, nil
}

// OpenTickets lists the cached tickets for the user.
func (s *implSynchronizer) OpenTickets(ctx context.Context, sc model.Scope) ([]model.LocalTicket, error) {
	return s.cache.List(ctx, sc.UserID)
}
