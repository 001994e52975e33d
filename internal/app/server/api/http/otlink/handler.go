package otlink

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/otlink"
)

const (
	msgInvalidOrExpired = "OT link invalid or expired"
	msgNotFound         = "OT link not found"
)

// Handler serves one-time links. Fetch is public and gets its own middleware chain.
type Handler struct {
	service otlink.Servicer
	log     *slog.Logger
	private huma.Middlewares
	public  huma.Middlewares
}

func NewHandler(service otlink.Servicer, log *slog.Logger, private, public huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		log:     log,
		private: private,
		public:  public,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.fetchOp(), h.fetch)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*linkOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	singleUse := true
	if input.Body.SingleUse != nil {
		singleUse = *input.Body.SingleUse
	}

	link, err := h.service.Create(ctx, u.ID, otlink.Draft{
		EncryptedPayload: input.Body.EncryptedPayload,
		IV:               input.Body.IV,
		Salt:             input.Body.Salt,
		Expiry:           input.Body.Expiry,
		SingleUse:        singleUse,
	})
	if err != nil {
		if errors.Is(err, otlink.ErrInvalidData) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("create ot link failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &linkOutput{Body: linkFrom(link)}, nil
}

func (h *Handler) fetch(ctx context.Context, input *idInput) (*linkOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(msgInvalidOrExpired)
	}

	link, err := h.service.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, otlink.ErrNotFound) {
			return nil, huma.Error404NotFound(msgInvalidOrExpired)
		}
		h.log.Error("fetch ot link failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &linkOutput{Body: linkFrom(link)}, nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*struct{}, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(msgNotFound)
	}

	if err := h.service.Delete(ctx, u.ID, id); err != nil {
		if errors.Is(err, otlink.ErrNotFound) {
			return nil, huma.Error404NotFound(msgNotFound)
		}
		h.log.Error("delete ot link failed", slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("internal error")
	}

	return nil, nil
}
