package search

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	itemAPI "passvault/internal/app/server/api/http/item"
	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/item"
)

type Handler struct {
	service    item.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service item.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.searchOp(), h.search)
}

func (h *Handler) search(ctx context.Context, input *searchInput) (*searchOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	metas, err := h.service.Search(ctx, u.ID, input.Q)
	if err != nil {
		h.log.Error("search failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &searchOutput{Body: itemAPI.MetaList(metas)}, nil
}
