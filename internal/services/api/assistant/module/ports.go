package module

import (
	"context"

	astdom "daybrief/internal/services/api/assistant/domain"
	astsvc "daybrief/internal/services/api/assistant/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAssistantPort adapts the assistant service to the domain port interface
type adaptAssistantPort struct{ svc astsvc.Service }

// Briefing implements the domain ServicePort interface
func (a adaptAssistantPort) Briefing(
	ctx context.Context,
	id astdom.Ident,
	in astdom.BriefingInput,
) (astdom.Briefing, error) {
	return a.svc.Briefing(ctx, id, in)
}

// Query implements the domain ServicePort interface
func (a adaptAssistantPort) Query(ctx context.Context, id astdom.Ident, in astdom.QueryInput) (astdom.Answer, error) {
	return a.svc.Query(ctx, id, in)
}

// Draft implements the domain ServicePort interface
func (a adaptAssistantPort) Draft(ctx context.Context, id astdom.Ident, in astdom.DraftInput) (astdom.DraftReply, error) {
	return a.svc.Draft(ctx, id, in)
}
