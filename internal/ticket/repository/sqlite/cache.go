package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/ticket/repository"
)

type implRepository struct {
	db *sql.DB
}

// New creates a SQLite-backed local ticket cache. The tickets table is
// created on first use.
func New(db *sql.DB) (repository.CacheRepository, error) {
	r := &implRepository{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate tickets: %w", err)
	}
	return r, nil
}

func (r *implRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tickets (
		user_id   TEXT NOT NULL,
		ticket_id INTEGER NOT NULL,
		category  TEXT NOT NULL DEFAULT 'General',
		status    TEXT NOT NULL DEFAULT 'open',
		PRIMARY KEY (user_id, ticket_id)
	);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *implRepository) Add(ctx context.Context, userID string, ticket model.LocalTicket) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tickets (user_id, ticket_id, category, status) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, ticket_id) DO UPDATE SET category = excluded.category, status = excluded.status`,
		userID, ticket.ID, ticket.Category, ticket.Status)
	if err != nil {
		return fmt.Errorf("add ticket %d for %s: %w", ticket.ID, userID, err)
	}
	return nil
}

func (r *implRepository) Remove(ctx context.Context, userID string, ticketID int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE user_id = ? AND ticket_id = ?`, userID, ticketID)
	if err != nil {
		return fmt.Errorf("remove ticket %d for %s: %w", ticketID, userID, err)
	}
	return nil
}

func (r *implRepository) List(ctx context.Context, userID string) ([]model.LocalTicket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ticket_id, category, status FROM tickets WHERE user_id = ? ORDER BY ticket_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tickets for %s: %w", userID, err)
	}
	defer rows.Close()

	var tickets []model.LocalTicket
	for rows.Next() {
		var t model.LocalTicket
		if err := rows.Scan(&t.ID, &t.Category, &t.Status); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *implRepository) UpdateStatus(ctx context.Context, userID string, ticketID int, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET status = ? WHERE user_id = ? AND ticket_id = ?`, status, userID, ticketID)
	if err != nil {
		return fmt.Errorf("update ticket %d status for %s: %w", ticketID, userID, err)
	}
	return nil
}

func (r *implRepository) UpdateCategory(ctx context.Context, userID string, ticketID int, category string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET category = ? WHERE user_id = ? AND ticket_id = ?`, category, userID, ticketID)
	if err != nil {
		return fmt.Errorf("update ticket %d category for %s: %w", ticketID, userID, err)
	}
	return nil
}
