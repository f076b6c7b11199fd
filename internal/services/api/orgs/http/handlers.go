// Package http provides http transport for orgs and the caller's settings
package http

import (
	stdhttp "net/http"
	"strconv"

	"daybrief/internal/modkit/httpkit"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/services/api/orgs/domain"
	svc "daybrief/internal/services/api/orgs/service"
)

// Register mounts org CRUD endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateOrgInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.PatchJSON[domain.UpdateOrgInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.remove)
}

// RegisterMe mounts the caller-scoped settings endpoints; identity comes from
// the auth middleware, not the path
func RegisterMe(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/settings", h.settings)
	httpkit.PutJSON[domain.PutSettingsInput](r, "/settings", h.putSettings)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /orgs Orgs orgsCreate
// @Summary Register an organization
// @Tags Orgs
// @Accept json
// @Produce json
// @Param payload body domain.CreateOrgInput true "Organization"
// @Success 201 {object} domain.Org "created"
// @Router /orgs [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateOrgInput) (any, error) {
	o, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(o), nil
}

// swagger:route GET /orgs Orgs orgsList
// @Summary List organizations
// @Tags Orgs
// @Produce json
// @Param cursor query string false "Opaque cursor from the previous page"
// @Param limit query int false "Page size (default 25, max 100)"
// @Success 200 {array} domain.Org "ok"
// @Router /orgs [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, perr.InvalidArgf("limit must be a positive integer")
		}
		limit = n
	}

	page, err := h.svc.List(r.Context(), q.Get("cursor"), limit)
	if err != nil {
		return nil, err
	}
	return httpkit.List(page.Items, page.Total, 0, len(page.Items), page.NextCursor), nil
}

// swagger:route GET /orgs/{id} Orgs orgsGet
// @Summary Fetch one organization
// @Tags Orgs
// @Produce json
// @Param id path string true "Org id"
// @Success 200 {object} domain.Org "ok"
// @Router /orgs/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route PATCH /orgs/{id} Orgs orgsUpdate
// @Summary Partially update an organization
// @Tags Orgs
// @Accept json
// @Produce json
// @Param id path string true "Org id"
// @Param payload body domain.UpdateOrgInput true "Fields to change"
// @Success 200 {object} domain.Org "ok"
// @Router /orgs/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateOrgInput) (any, error) {
	return h.svc.Update(r.Context(), httpkit.Param(r, "id"), in)
}

// swagger:route DELETE /orgs/{id} Orgs orgsDeactivate
// @Summary Soft delete an organization
// @Tags Orgs
// @Produce json
// @Param id path string true "Org id"
// @Success 204 "deactivated"
// @Router /orgs/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Deactivate(r.Context(), httpkit.Param(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// swagger:route GET /me/settings Me meSettings
// @Summary Read the caller's settings for their org
// @Tags Me
// @Produce json
// @Success 200 {object} domain.UserSettings "ok"
// @Router /me/settings [get]
func (h *handlers) settings(r *stdhttp.Request) (any, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Settings(r.Context(), user, org)
}

// swagger:route PUT /me/settings Me meSettingsPut
// @Summary Replace the caller's settings for their org
// @Tags Me
// @Accept json
// @Produce json
// @Param payload body domain.PutSettingsInput true "Settings"
// @Success 200 {object} domain.UserSettings "ok"
// @Router /me/settings [put]
func (h *handlers) putSettings(r *stdhttp.Request, in domain.PutSettingsInput) (any, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.PutSettings(r.Context(), user, org, in)
}
