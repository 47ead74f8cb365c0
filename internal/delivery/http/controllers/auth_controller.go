package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	h "monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// SignInRequest is the request body for POST /auth/session
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l SignInRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(l.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !domain.ValidEmail(email) {
		errs = append(errs, "invalid email format")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// SignInSuccessResponse is the success response envelope for POST /auth/session (200).
type SignInSuccessResponse struct {
	Data  *domain.Profile `json:"data"`
	Error *h.APIError     `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
	Cookie  h.SessionCookie
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, cookie h.SessionCookie) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
		Cookie:  cookie,
	}
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticate against the surveillance API. Opens a console session kept in the monipaep.session cookie for 30 days.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} controllers.SignInSuccessResponse "data contains the signed-in profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error"
// @Router /auth/session [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	sessionID, profile, err := c.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	c.Cookie.Set(w, sessionID)
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}

// SignOut godoc
// @Summary Sign out
// @Description Clear the stored credentials of the current console session on every replica.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/session [delete]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.SessionIDFromRequest(r); ok {
		if err := c.Service.SignOut(r.Context(), sessionID); err != nil {
			writeError(w, r, c.Logger, err)
			return
		}
	}
	h.ClearSessionCookie(w)
	h.WriteJSONSuccess(w, http.StatusOK, domain.MutationResult{Success: "signed out"})
}

// Me godoc
// @Summary Current user
// @Description Profile, permissions and roles of the signed-in system user. A profile that cannot be loaded ends the session.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.SignInSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized or session_expired"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := domain.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing session")
		return
	}
	profile, err := c.Service.Me(r.Context(), sessionID)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, profile)
}
