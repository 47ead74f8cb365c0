package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"monipaep/internal/domain"
)

// invalidTextRepresentation is raised by Postgres for a malformed UUID.
const invalidTextRepresentation = "22P02"

type credentialRepository struct {
	DB  *sql.DB
	now func() time.Time
}

// NewCredentialRepository returns a CredentialStore over the console_sessions table.
func NewCredentialRepository(db *sql.DB) domain.CredentialStore {
	return &credentialRepository{DB: db, now: time.Now}
}

func (r *credentialRepository) Save(ctx context.Context, c *domain.StoredCredentials) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = r.now().UTC()
	}
	query := `
		INSERT INTO console_sessions (session_id, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (session_id) DO UPDATE
		SET access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`
	err := r.DB.QueryRowContext(ctx, query, c.SessionID, c.AccessToken, c.RefreshToken, c.ExpiresAt, c.UpdatedAt).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func (r *credentialRepository) Get(ctx context.Context, sessionID string) (*domain.StoredCredentials, error) {
	query := `
		SELECT session_id, access_token, refresh_token, expires_at, created_at, updated_at
		FROM console_sessions
		WHERE session_id = $1
	`
	c := &domain.StoredCredentials{}
	err := r.DB.QueryRowContext(ctx, query, sessionID).
		Scan(&c.SessionID, &c.AccessToken, &c.RefreshToken, &c.ExpiresAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNoSession
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	if c.Expired(r.now()) {
		return nil, domain.ErrNoSession
	}
	return c, nil
}

func (r *credentialRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM console_sessions WHERE session_id = $1`, sessionID)
	if err != nil && !isInvalidText(err) {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

func (r *credentialRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM console_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired credentials: %w", err)
	}
	return res.RowsAffected()
}

func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == invalidTextRepresentation
}
