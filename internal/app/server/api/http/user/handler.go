package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
)

type Handler struct {
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.meOp(), h.me)
}

func (h *Handler) me(ctx context.Context, _ *struct{}) (*meOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	return &meOutput{
		Body: Profile{
			ID:           u.ID,
			Email:        u.Email,
			CreatedAt:    u.CreatedAt,
			LastLogin:    u.LastLogin,
			TwoFAEnabled: u.TwoFAEnabled,
			MasterSalt:   u.MasterSalt,
		},
	}, nil
}
