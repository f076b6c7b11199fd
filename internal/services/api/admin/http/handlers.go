// Package http provides http transport for the admin dashboard
package http

import (
	stdhttp "net/http"
	"strconv"

	"daybrief/internal/modkit/httpkit"
	perr "daybrief/internal/platform/errors"
	svc "daybrief/internal/services/api/admin/service"
)

// Register mounts the admin endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/overview", h.overview)
	httpkit.Get(r, "/orgs/{id}/usage", h.orgUsage)
	httpkit.Get(r, "/orgs/{id}/digests", h.orgDigests)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /admin/overview Admin adminOverview
// @Summary Org counts and trailing usage activity
// @Tags Admin
// @Produce json
// @Success 200 {object} domain.Overview "ok"
// @Router /admin/overview [get]
func (h *handlers) overview(r *stdhttp.Request) (any, error) {
	org, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Overview(r.Context(), org)
}

// swagger:route GET /admin/orgs/{id}/usage Admin adminOrgUsage
// @Summary Per-day usage buckets for one org, in its own zone
// @Tags Admin
// @Produce json
// @Param id path string true "Org id"
// @Param days query int false "Trailing day count (1..90, default 14)"
// @Success 200 {object} domain.OrgUsage "ok"
// @Router /admin/orgs/{id}/usage [get]
func (h *handlers) orgUsage(r *stdhttp.Request) (any, error) {
	caller, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}

	days := 0
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.InvalidArgf("days must be an integer")
		}
		days = n
	}
	return h.svc.OrgUsage(r.Context(), caller, httpkit.Param(r, "id"), days)
}

// swagger:route GET /admin/orgs/{id}/digests Admin adminOrgDigests
// @Summary Digest run history for one org, newest first
// @Tags Admin
// @Produce json
// @Param id path string true "Org id"
// @Param limit query int false "Max runs to return (default 50, max 200)"
// @Success 200 {object} domain.OrgDigests "ok"
// @Router /admin/orgs/{id}/digests [get]
func (h *handlers) orgDigests(r *stdhttp.Request) (any, error) {
	caller, err := httpkit.Org(r)
	if err != nil {
		return nil, err
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.InvalidArgf("limit must be an integer")
		}
		limit = n
	}
	return h.svc.OrgDigests(r.Context(), caller, httpkit.Param(r, "id"), limit)
}
