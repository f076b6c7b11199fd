// Package http provides http transport for the assistant
package http

import (
	stdhttp "net/http"

	"daybrief/internal/modkit/httpkit"
	"daybrief/internal/services/api/assistant/domain"
	svc "daybrief/internal/services/api/assistant/service"
)

// Register mounts the assistant endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.BriefingInput](r, "/briefing", h.briefing)
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
	httpkit.PostJSON[domain.DraftInput](r, "/draft", h.draft)
}

type handlers struct{ svc svc.Service }

// ident extracts the caller identity placed by the auth middleware
func ident(r *stdhttp.Request) (domain.Ident, error) {
	user, err := httpkit.User(r)
	if err != nil {
		return domain.Ident{}, err
	}
	org, err := httpkit.Org(r)
	if err != nil {
		return domain.Ident{}, err
	}
	token, err := httpkit.Token(r)
	if err != nil {
		return domain.Ident{}, err
	}
	return domain.Ident{UserID: user, OrgID: org, Token: token}, nil
}

// swagger:route POST /assistant/briefing Assistant assistantBriefing
// @Summary Summarize the caller's day
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.BriefingInput true "Span and zone"
// @Success 200 {object} domain.Briefing "ok"
// @Router /assistant/briefing [post]
func (h *handlers) briefing(r *stdhttp.Request, in domain.BriefingInput) (any, error) {
	id, err := ident(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Briefing(r.Context(), id, in)
}

// swagger:route POST /assistant/query Assistant assistantQuery
// @Summary Answer a question over the caller's day context
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Question, span, zone"
// @Success 200 {object} domain.Answer "ok"
// @Router /assistant/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	id, err := ident(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Query(r.Context(), id, in)
}

// swagger:route POST /assistant/draft Assistant assistantDraft
// @Summary Draft a reply to one message for the caller to review
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body domain.DraftInput true "Message and instructions"
// @Success 200 {object} domain.DraftReply "ok"
// @Router /assistant/draft [post]
func (h *handlers) draft(r *stdhttp.Request, in domain.DraftInput) (any, error) {
	id, err := ident(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Draft(r.Context(), id, in)
}
