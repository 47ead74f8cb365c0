package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	h "monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

type contextKey string

const credentialsKey contextKey = "credentials"

// SetCredentials returns a context carrying the session's stored credentials and its id.
func SetCredentials(ctx context.Context, creds *domain.StoredCredentials) context.Context {
	ctx = domain.WithSessionID(ctx, creds.SessionID)
	return context.WithValue(ctx, credentialsKey, creds)
}

// CredentialsFromContext returns the credentials set by RequireSession, if present.
func CredentialsFromContext(ctx context.Context) (*domain.StoredCredentials, bool) {
	creds, ok := ctx.Value(credentialsKey).(*domain.StoredCredentials)
	return creds, ok
}

// RequireSession returns a wrapper that resolves the session cookie against the credential store
// and sets the session in the request context.
// If the cookie is missing or the session is unknown or expired, it responds with 401 and does not call next.
func RequireSession(store domain.CredentialStore, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sessionID, ok := h.SessionIDFromRequest(r)
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing session")
				return
			}
			creds, err := store.Get(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					h.ClearSessionCookie(w)
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeSessionExpired, "session expired, sign in again")
					return
				}
				logger.ErrorContext(r.Context(), "failed to load session", "err", err)
				h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal error")
				return
			}
			if creds.Expired(time.Now()) {
				h.ClearSessionCookie(w)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeSessionExpired, "session expired, sign in again")
				return
			}
			next(w, r.WithContext(SetCredentials(r.Context(), creds)))
		}
	}
}

// RequireAccess returns a wrapper that checks the grants in the session's access token.
// Every permission is required and any one of roles is enough. It must run after RequireSession.
func RequireAccess(decoder domain.ClaimsDecoder, logger *slog.Logger, permissions, roles []string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			creds, ok := CredentialsFromContext(r.Context())
			if !ok {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing session")
				return
			}
			claims, err := decoder.Decode(creds.AccessToken)
			if err != nil {
				logger.WarnContext(r.Context(), "unreadable access token", "session_id", creds.SessionID, "err", err)
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "access denied")
				return
			}
			if !domain.ValidateUserPermissions(claims, permissions, roles) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "access denied")
				return
			}
			next(w, r)
		}
	}
}
