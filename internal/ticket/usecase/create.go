package usecase

import (
	"context"
	"fmt"
	"strings"

	"appliance-support-bot/internal/mantis"
	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/ticket"
)

// fallbackSummaryLimit bounds the problem fragment used for the summary when
// field extraction was uncertain.
const fallbackSummaryLimit = 50

// Create runs the ticket-creation pipeline against the live tracker state.
// No cache write happens before the remote create has succeeded.
func (s *implSynchronizer) Create(ctx context.Context, sc model.Scope, problem string) (ticket.CreateOutput, error) {
	projects, err := s.tracker.ListProjects(ctx)
	if err != nil {
		return ticket.CreateOutput{}, fmt.Errorf("list projects: %w", err)
	}
	if len(projects) == 0 {
		return ticket.CreateOutput{}, ticket.ErrNoProjects
	}

	categoriesByProject := make(map[int][]mantis.Category, len(projects))
	for _, p := range projects {
		cats, catErr := s.tracker.ListCategories(ctx, p.ID)
		if catErr != nil {
			return ticket.CreateOutput{}, fmt.Errorf("list categories for project %d: %w", p.ID, catErr)
		}
		categoriesByProject[p.ID] = cats
	}

	fields, err := s.extractor.ExtractTicketFields(ctx, problem, projects, categoriesByProject)
	if err != nil {
		// Extraction failure degrades to the default-project path, same
		// as an uncertain result.
		s.l.Warnf(ctx, "internal.ticket.Create: extraction failed, using fallback fields: %v", err)
		fields = nil
	}

	var req mantis.CreateIssueRequest
	var categoryName string
	usedFallback := fields == nil

	if usedFallback {
		fallback := projects[0]
		cats := categoriesByProject[fallback.ID]
		if len(cats) == 0 {
			return ticket.CreateOutput{}, ticket.ErrNoCategories
		}
		categoryName = cats[0].Name
		req = mantis.CreateIssueRequest{
			Summary:     fmt.Sprintf("%s: %s", sc.Username, truncate(problem, fallbackSummaryLimit)),
			Description: problem,
			Project:     mantis.ObjectRef{ID: fallback.ID},
			Category:    mantis.ObjectRef{Name: categoryName},
		}
	} else {
		projectID := 0
		for _, p := range projects {
			if strings.EqualFold(p.Name, fields.ProjectName) {
				projectID = p.ID
				break
			}
		}
		categoryFound := false
		if projectID != 0 {
			for _, c := range categoriesByProject[projectID] {
				if strings.EqualFold(c.Name, fields.CategoryName) {
					categoryName = c.Name
					categoryFound = true
					break
				}
			}
		}
		if projectID == 0 || !categoryFound {
			return ticket.CreateOutput{}, ticket.ErrUnresolvedMatch
		}
		req = mantis.CreateIssueRequest{
			Summary:     fmt.Sprintf("%s: %s", sc.Username, fields.Summary),
			Description: fields.Description,
			Project:     mantis.ObjectRef{ID: projectID},
			Category:    mantis.ObjectRef{Name: categoryName},
		}
	}

	issue, err := s.tracker.CreateIssue(ctx, req)
	if err != nil {
		return ticket.CreateOutput{}, fmt.Errorf("create issue: %w", err)
	}

	local := model.LocalTicket{
		ID:       issue.ID,
		Category: categoryName,
		Status:   model.TicketStatusOpen,
	}
	if err := s.cache.Add(ctx, sc.UserID, local); err != nil {
		return ticket.CreateOutput{}, fmt.Errorf("cache ticket %d: %w", issue.ID, err)
	}

	s.l.Infof(ctx, "internal.ticket.Create: user=%s ticket=%d category=%s fallback=%t",
		sc.UserID, issue.ID, categoryName, usedFallback)

	return ticket.CreateOutput{
		TicketID:     issue.ID,
		Category:     categoryName,
		UsedFallback: usedFallback,
	}, nil
}

// truncate clips s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
