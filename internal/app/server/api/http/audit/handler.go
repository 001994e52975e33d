package audit

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/audit"
)

type Handler struct {
	service    audit.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service audit.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.logsOp(), h.logs)
}

func (h *Handler) logs(ctx context.Context, _ *struct{}) (*logsOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	entries, err := h.service.List(ctx, u.ID)
	if err != nil {
		h.log.Error("list audit logs failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &logsOutput{Body: entriesFrom(entries)}, nil
}
