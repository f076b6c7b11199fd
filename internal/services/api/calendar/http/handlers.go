// Package http provides http transport for calendar views
package http

import (
	stdhttp "net/http"
	"strconv"

	"daybrief/internal/modkit/httpkit"
	perr "daybrief/internal/platform/errors"
	phttp "daybrief/internal/platform/net/http"
	"daybrief/internal/services/api/calendar/domain"
	svc "daybrief/internal/services/api/calendar/service"
)

// Register mounts the calendar endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/today", h.today)
	httpkit.Get(r, "/upcoming", h.upcoming)
	r.Get("/export.ics", h.exportICS)
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

// swagger:route GET /calendar/today Calendar calendarToday
// @Summary Events for the caller's current civil day
// @Tags Calendar
// @Produce json
// @Param zone query string false "Display zone override (IANA id)"
// @Success 200 {object} domain.DayView "ok"
// @Router /calendar/today [get]
func (h *handlers) today(r *stdhttp.Request) (any, error) {
	q, err := h.query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Today(r.Context(), q)
}

// swagger:route GET /calendar/upcoming Calendar calendarUpcoming
// @Summary Events from today through N civil days ahead
// @Tags Calendar
// @Produce json
// @Param days query int false "Day span (0..31, default 0)"
// @Param zone query string false "Display zone override (IANA id)"
// @Success 200 {object} domain.RangeView "ok"
// @Router /calendar/upcoming [get]
func (h *handlers) upcoming(r *stdhttp.Request) (any, error) {
	q, err := h.query(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Upcoming(r.Context(), q)
}

// swagger:route GET /calendar/export.ics Calendar calendarExport
// @Summary The upcoming window as an iCalendar feed
// @Tags Calendar
// @Produce text/calendar
// @Param days query int false "Day span (0..31, default 0)"
// @Param zone query string false "Display zone override (IANA id)"
// @Success 200 {string} string "ics feed"
// @Router /calendar/export.ics [get]
func (h *handlers) exportICS(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q, err := h.query(r)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	feed, err := h.svc.ExportICS(r.Context(), q)
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="daybrief.ics"`)
	_, _ = w.Write([]byte(feed))
}
