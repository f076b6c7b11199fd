// Package http provides http transport for inbox views
package http

import (
	stdhttp "net/http"
	"strconv"

	"daybrief/internal/modkit/httpkit"
	perr "daybrief/internal/platform/errors"
	"daybrief/internal/services/api/inbox/domain"
	svc "daybrief/internal/services/api/inbox/service"
)

// Register mounts the inbox endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/today", h.today)
	httpkit.Get(r, "/recent", h.recent)
}

type handlers struct{ svc svc.Service }

// query assembles caller identity plus the shared zone and days params.
// Negative days flow through so the window math can refuse them
func (h *handlers) query(r *stdhttp.Request) (domain.Query, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return domain.Query{}, err
	}
	org, err := httpkit.Org(r)
	if err != nil {
		return domain.Query{}, err
	}
	token, err := httpkit.Token(r)
	if err != nil {
		return domain.Query{}, err
	}

	q := domain.Query{UserID: user, OrgID: org, Token: token, Zone: r.URL.Query().Get("zone")}
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Query{}, perr.InvalidArgf("days must be an integer")
		}
		q.Days = n
	}
	return q, nil
}

// swagger:route GET /inbox/today Inbox inboxToday
// @Summary Messages received during the caller's current civil day
// @Tags Inbox
// @Produce json
// @Param zone query string false "Display zone override (IANA id)"
// @Success 200 {object} domain.DayView "ok"
// @Router /inbox/today [get]
func (h *handlers) today(r *stdhttp.Request) (any, error) {
	q, err := h.query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Today(r.Context(), q)
}

// swagger:route GET /inbox/recent Inbox inboxRecent
// @Summary Messages from the last N civil days through today
// @Tags Inbox
// @Produce json
// @Param days query int false "Day span (0..31, default 0)"
// @Param zone query string false "Display zone override (IANA id)"
// @Success 200 {object} domain.RangeView "ok"
// @Router /inbox/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	q, err := h.query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), q)
}
