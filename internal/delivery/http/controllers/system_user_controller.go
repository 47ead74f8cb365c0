package controllers

import (
	"log/slog"
	"net/http"

	"monipaep/internal/delivery/http/helpers"
	"monipaep/internal/domain"
)

// SystemUserController handles system user administration and sign-up.
type SystemUserController struct {
	Logger  *slog.Logger
	Service domain.SystemUserService
}

// NewSystemUserController creates a SystemUserController with the given logger and service.
func NewSystemUserController(logger *slog.Logger, svc domain.SystemUserService) *SystemUserController {
	return &SystemUserController{Logger: logger, Service: svc}
}

// SignUp godoc
// @Summary Sign up a system user
// @Description The account stays unauthorized until an admin grants access.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body domain.SignUp true "Sign-up data"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /auth/signup [post]
func (c *SystemUserController) SignUp(w http.ResponseWriter, r *http.Request) {
	var s domain.SignUp
	if !helpers.DecodeAndValidate(w, r, &s) {
		return
	}
	res, err := c.Service.SignUp(r.Context(), &s)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, res)
}

// List godoc
// @Summary List system users with their access flags
// @Tags systemusers
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param filter query string false "name"
// @Param value query string false "Filter value"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /api/systemusers [get]
func (c *SystemUserController) List(w http.ResponseWriter, r *http.Request) {
	q := helpers.ParseListQuery(r)
	page, err := c.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, helpers.NewListResponse(page, q))
}

// Get godoc
// @Summary Get a system user
// @Tags systemusers
// @Produce json
// @Param id path string true "System user ID"
// @Success 200 {object} helpers.APIResponse "data contains domain.SystemUser"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/systemusers/{id} [get]
func (c *SystemUserController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := c.Service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, u)
}

// Update godoc
// @Summary Change department and access flags
// @Tags systemusers
// @Accept json
// @Produce json
// @Param id path string true "System user ID"
// @Param body body domain.SystemUserUpdate true "Changes"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/systemusers/{id} [put]
func (c *SystemUserController) Update(w http.ResponseWriter, r *http.Request) {
	var u domain.SystemUserUpdate
	if !helpers.DecodeAndValidate(w, r, &u) {
		return
	}
	res, err := c.Service.Update(r.Context(), r.PathValue("id"), &u)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// UpdateDetails godoc
// @Summary Change profile details
// @Tags systemusers
// @Accept json
// @Produce json
// @Param id path string true "System user ID"
// @Param body body domain.SystemUserDetailsUpdate true "Changed fields"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/systemusers/{id}/details [put]
func (c *SystemUserController) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	var u domain.SystemUserDetailsUpdate
	if !helpers.DecodeAndValidate(w, r, &u) {
		return
	}
	res, err := c.Service.UpdateDetails(r.Context(), r.PathValue("id"), &u)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// ChangePassword godoc
// @Summary Change password
// @Tags systemusers
// @Accept json
// @Produce json
// @Param id path string true "System user ID"
// @Param body body domain.PasswordChange true "Passwords"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /api/systemusers/{id}/password [put]
func (c *SystemUserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var p domain.PasswordChange
	if !helpers.DecodeAndValidate(w, r, &p) {
		return
	}
	res, err := c.Service.ChangePassword(r.Context(), r.PathValue("id"), &p)
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Delete godoc
// @Summary Delete a system user
// @Tags systemusers
// @Produce json
// @Param id path string true "System user ID"
// @Success 200 {object} helpers.APIResponse
// @Router /api/systemusers/{id} [delete]
func (c *SystemUserController) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := c.Service.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}
