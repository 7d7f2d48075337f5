package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/session/repository"
)

type implRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// New creates a SQLite-backed session repository. The sessions table is
// created on first use.
func New(db *sql.DB, timeout time.Duration) (repository.SessionRepository, error) {
	r := &implRepository{db: db, timeout: timeout}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("migrate sessions: %w", err)
	}
	return r, nil
}

func (r *implRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		user_id     TEXT PRIMARY KEY,
		data        TEXT NOT NULL,
		last_active INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_last_active ON sessions(last_active);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *implRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE user_id = ?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query session: %w", err)
	}
	return true, nil
}

func (r *implRepository) Create(ctx context.Context, userID string) (*model.Session, error) {
	sess := model.NewSession(userID)
	if err := r.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (r *implRepository) Get(ctx context.Context, userID string) (*model.Session, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM sessions WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", userID, err)
	}
	return &sess, nil
}

func (r *implRepository) Save(ctx context.Context, sess *model.Session) error {
	sess.LastActive = time.Now()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.UserID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, data, last_active) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, last_active = excluded.last_active`,
		sess.UserID, string(data), sess.LastActive.Unix())
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.UserID, err)
	}
	return nil
}

func (r *implRepository) Update(ctx context.Context, userID string, mutate func(*model.Session)) error {
	sess, err := r.Get(ctx, userID)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	mutate(sess)
	return r.Save(ctx, sess)
}

func (r *implRepository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear session %s: %w", userID, err)
	}
	return nil
}

func (r *implRepository) Expired(ctx context.Context, userID string) (bool, error) {
	var lastActive int64
	err := r.db.QueryRowContext(ctx, `SELECT last_active FROM sessions WHERE user_id = ?`, userID).Scan(&lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("query session: %w", err)
	}
	return time.Since(time.Unix(lastActive, 0)) > r.timeout, nil
}
