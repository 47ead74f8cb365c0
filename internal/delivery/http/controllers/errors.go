package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
)

// writeError maps a service error onto the response envelope. A session that
// the surveillance API ended also loses its cookie.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code, message := helpers.ErrorStatus(err)
	if code == helpers.ErrCodeSessionExpired {
		helpers.ClearSessionCookie(w)
	}
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteJSONError(w, status, code, message)
}
