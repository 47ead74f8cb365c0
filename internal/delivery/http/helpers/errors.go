package helpers

import (
	"errors"
	"net/http"

	"monipaep/internal/domain"
)

// ErrorStatus maps a service error to the HTTP status, error code and message
// written to the client.
func ErrorStatus(err error) (status int, code, message string) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, ErrCodeBadRequest, vErr.Error()
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials"
	case SessionExpired(err):
		return http.StatusUnauthorized, ErrCodeSessionExpired, "session expired, sign in again"
	}
	if apiErr, ok := domain.AsAPIError(err); ok {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return http.StatusNotFound, ErrCodeNotFound, apiErr.Message
		case apiErr.Status == http.StatusForbidden:
			return http.StatusForbidden, ErrCodeForbidden, apiErr.Message
		case apiErr.Status >= 400 && apiErr.Status < 500:
			return http.StatusBadRequest, ErrCodeBadRequest, apiErr.Message
		default:
			return http.StatusBadGateway, ErrCodeUpstream, apiErr.Message
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "not found"
	case errors.Is(err, domain.ErrDecode):
		return http.StatusBadGateway, ErrCodeUpstream, "unexpected response from surveillance API"
	}
	return http.StatusInternalServerError, ErrCodeInternalError, "internal error"
}

// SessionExpired reports whether err ended the console session.
func SessionExpired(err error) bool {
	if errors.Is(err, domain.ErrAuthToken) || errors.Is(err, domain.ErrSignedOut) || errors.Is(err, domain.ErrNoSession) {
		return true
	}
	apiErr, ok := domain.AsAPIError(err)
	return ok && apiErr.Status == http.StatusUnauthorized && domain.IsSignOutCode(apiErr.Code)
}
