package repository

import (
	"context"

	"appliance-support-bot/internal/mantis"
	"appliance-support-bot/internal/model"
)

// CacheRepository is the per-user local ticket cache. Records are normalized
// to the canonical model.LocalTicket shape at this boundary; no bare ids or
// mixed shapes exist downstream.
type CacheRepository interface {
	// Add upserts a ticket for the user, updating category and status if
	// the ticket is already cached.
	Add(ctx context.Context, userID string, ticket model.LocalTicket) error
	Remove(ctx context.Context, userID string, ticketID int) error
	List(ctx context.Context, userID string) ([]model.LocalTicket, error)
	UpdateStatus(ctx context.Context, userID string, ticketID int, status string) error
	UpdateCategory(ctx context.Context, userID string, ticketID int, category string) error
}

// Tracker is the remote issue tracker boundary. It owns the authoritative
// ticket data; the cache holds a possibly-stale subset.
type Tracker interface {
	ListProjects(ctx context.Context) ([]mantis.Project, error)
	ListCategories(ctx context.Context, projectID int) ([]mantis.Category, error)
	CreateIssue(ctx context.Context, req mantis.CreateIssueRequest) (*mantis.Issue, error)
	GetIssue(ctx context.Context, id int) (*mantis.Issue, error)
	UpdateIssue(ctx context.Context, id int, patch mantis.IssuePatch) error
	DeleteIssue(ctx context.Context, id int) error
	AddNote(ctx context.Context, id int, text string) error
}
