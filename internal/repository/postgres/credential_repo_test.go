package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"monipaep/internal/domain"

	"github.com/stretchr/testify/require"
)

var (
	fixedNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessionID = "6f1c2d8e-8a7b-4f3e-9c2d-1a2b3c4d5e6f"
)

func newCredentialRepo(t *testing.T) (*credentialRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &credentialRepository{DB: db, now: func() time.Time { return fixedNow }}, mock
}

func TestCredentialRepository_Save(t *testing.T) {
	ctx := context.Background()
	expires := fixedNow.Add(domain.CredentialMaxAge)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "upsert",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO console_sessions \(session_id, access_token, refresh_token, expires_at, created_at, updated_at\)`).
					WithArgs(sessionID, "access", "refresh", expires, fixedNow).
					WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fixedNow.Add(-time.Hour)))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO console_sessions`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newCredentialRepo(t)
			tt.mock(mock)

			creds := &domain.StoredCredentials{
				SessionID:   sessionID,
				Credentials: domain.Credentials{AccessToken: "access", RefreshToken: "refresh"},
				ExpiresAt:   expires,
			}
			err := repo.Save(ctx, creds)
			if tt.wantErr {
				require.ErrorIs(t, err, sql.ErrConnDone)
				return
			}
			require.NoError(t, err)
			require.Equal(t, fixedNow, creds.UpdatedAt)
			require.Equal(t, fixedNow.Add(-time.Hour), creds.CreatedAt)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialRepository_Get(t *testing.T) {
	ctx := context.Background()
	columns := []string{"session_id", "access_token", "refresh_token", "expires_at", "created_at", "updated_at"}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.StoredCredentials
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT session_id, access_token, refresh_token, expires_at, created_at, updated_at`).
					WithArgs(sessionID).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(sessionID, "a", "r", fixedNow.Add(time.Hour), fixedNow, fixedNow))
			},
			want: &domain.StoredCredentials{
				SessionID:   sessionID,
				Credentials: domain.Credentials{AccessToken: "a", RefreshToken: "r"},
				ExpiresAt:   fixedNow.Add(time.Hour),
				CreatedAt:   fixedNow,
				UpdatedAt:   fixedNow,
			},
		},
		{
			name: "expired",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).
					WithArgs(sessionID).
					WillReturnRows(sqlmock.NewRows(columns).AddRow(sessionID, "a", "r", fixedNow, fixedNow, fixedNow))
			},
			wantErr: domain.ErrNoSession,
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WithArgs(sessionID).WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNoSession,
		},
		{
			name: "malformed id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WithArgs(sessionID).WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrNoSession,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT`).WithArgs(sessionID).WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newCredentialRepo(t)
			tt.mock(mock)

			got, err := repo.Get(ctx, sessionID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialRepository_Delete(t *testing.T) {
	repo, mock := newCredentialRepo(t)
	mock.ExpectExec(`DELETE FROM console_sessions WHERE session_id = \$1`).
		WithArgs(sessionID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), sessionID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_DeleteExpired(t *testing.T) {
	repo, mock := newCredentialRepo(t)
	mock.ExpectExec(`DELETE FROM console_sessions WHERE expires_at <= \$1`).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), fixedNow)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
