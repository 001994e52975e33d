package item

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/item"
)

const msgNotFound = "Item not found"

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
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	metas, err := h.service.List(ctx, u.ID)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &listOutput{Body: MetaList(metas)}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*detailOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	it, err := h.service.Create(ctx, u.ID, item.Draft{
		TitleHMAC:     input.Body.TitleHMAC,
		EncryptedBlob: input.Body.EncryptedBlob,
		IV:            input.Body.IV,
		Salt:          input.Body.Salt,
		Version:       input.Body.Version,
		Tags:          input.Body.Tags,
	})
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &detailOutput{Body: detailFrom(it)}, nil
}

func (h *Handler) get(ctx context.Context, input *idInput) (*detailOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(msgNotFound)
	}

	it, err := h.service.Get(ctx, u.ID, id)
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &detailOutput{Body: detailFrom(it)}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*detailOutput, error) {
	u, ok := auth.GetUser(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, huma.Error404NotFound(msgNotFound)
	}

	it, err := h.service.Update(ctx, u.ID, id, input.Body.patch())
	if err != nil {
		return nil, h.toHTTPError(err)
	}

	return &detailOutput{Body: detailFrom(it)}, nil
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
		return nil, h.toHTTPError(err)
	}

	return nil, nil
}

func (h *Handler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, item.ErrNotFound):
		return huma.Error404NotFound(msgNotFound)
	case errors.Is(err, item.ErrInvalidData):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		h.log.Error("item request failed", slog.String("error", err.Error()))
		return huma.Error500InternalServerError("internal error")
	}
}
