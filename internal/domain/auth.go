package domain

import (
	"context"
	"errors"
	"time"
)

// Auth error codes sent by the surveillance API in the "code" field of a 401 body.
const (
	CodeTokenExpired           = "token.expired"
	CodeRefreshTokenInvalid    = "refresh.token.invalid"
	CodeRefreshTokenDeletion   = "refresh.token.deletion"
	CodeRefreshTokenExpired    = "refresh.token.expired"
	CodeRefreshTokenCreation   = "refresh.token.creation"
	CodeRefreshTokenGeneration = "refresh.token.generation"
	CodeTokenNotFound          = "token.not.found"
	CodeTokenInvalid           = "token.invalid"
)

// signOutCodes are the auth failures that cannot be recovered by refreshing.
var signOutCodes = map[string]struct{}{
	CodeRefreshTokenInvalid:    {},
	CodeRefreshTokenDeletion:   {},
	CodeRefreshTokenExpired:    {},
	CodeRefreshTokenCreation:   {},
	CodeRefreshTokenGeneration: {},
	CodeTokenNotFound:          {},
	CodeTokenInvalid:           {},
}

// IsSignOutCode reports whether code is an auth failure that forces sign-out.
func IsSignOutCode(code string) bool {
	_, ok := signOutCodes[code]
	return ok
}

// Sentinel errors for authentication.
var (
	// ErrAuthToken is returned instead of signing out when no interactive
	// sign-out hook is available (server-side rendering).
	ErrAuthToken = errors.New("authentication token rejected")
	// ErrSignedOut is returned by a session whose credentials were cleared.
	ErrSignedOut = errors.New("session signed out")
	// ErrNoSession is returned when no credentials are stored for a console session.
	ErrNoSession = errors.New("session not found")
	// ErrInvalidCredentials is returned when sign-in is rejected by the API.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// CredentialMaxAge is how long issued credentials are kept, matching the sign-in cookie policy.
const CredentialMaxAge = 30 * 24 * time.Hour

// Credentials is the pair of tokens issued by the API on sign-in and on refresh.
type Credentials struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// StoredCredentials are Credentials persisted for a console session.
type StoredCredentials struct {
	SessionID string
	Credentials
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the stored credentials are past their expiry at now.
func (s *StoredCredentials) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Identity is the signed-in system user as returned by the API.
// swagger:model Identity
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Profile is the signed-in user together with their grants.
// swagger:model Profile
type Profile struct {
	User        Identity `json:"user"`
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

// LoginResponse is the body of GET /systemuser/login.
type LoginResponse struct {
	Profile
	Credentials
}

// CredentialStore persists session credentials keyed by console session id.
type CredentialStore interface {
	Save(ctx context.Context, creds *StoredCredentials) error
	Get(ctx context.Context, sessionID string) (*StoredCredentials, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SignOutBroadcaster notifies every console replica that a session signed out.
type SignOutBroadcaster interface {
	Publish(ctx context.Context, sessionID string) error
	// Subscribe delivers sign-outs to handler until ctx is done.
	Subscribe(ctx context.Context, handler func(sessionID string)) error
}

// Claims are the grants carried inside an access token.
type Claims struct {
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

// ClaimsDecoder extracts grants from an access token.
type ClaimsDecoder interface {
	Decode(token string) (*Claims, error)
}

// AuthEndpoints are the unauthenticated calls of the API.
type AuthEndpoints interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*Credentials, error)
	SignUp(ctx context.Context, s *SignUp) (*MutationResult, error)
}

// SessionRegistry tracks the API clients of open console sessions.
type SessionRegistry interface {
	ClientResolver
	// Open registers freshly issued credentials for sessionID.
	Open(sessionID string, creds Credentials)
	// SignOut clears the session's credentials; unknown sessions are ignored.
	SignOut(ctx context.Context, sessionID string) error
}

// AuthService defines sign-in, profile and sign-out for console sessions.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (sessionID string, profile *Profile, err error)
	Me(ctx context.Context, sessionID string) (*Profile, error)
	SignOut(ctx context.Context, sessionID string) error
}

type sessionIDKey struct{}

// WithSessionID returns a context carrying the console session ID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFromContext returns the console session ID from the context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}
