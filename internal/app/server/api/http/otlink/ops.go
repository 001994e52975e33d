package otlink

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "ot-links-create",
		Method:        http.MethodPost,
		Path:          "/api/ot-links",
		Summary:       "Create one-time link",
		Tags:          []string{"ot-links"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.private,
	}
}

func (h *Handler) fetchOp() huma.Operation {
	return huma.Operation{
		OperationID: "ot-links-fetch",
		Method:      http.MethodGet,
		Path:        "/api/ot-links/{id}",
		Summary:     "Fetch one-time link",
		Description: "Public. Single-use links are consumed by the first successful fetch.",
		Tags:        []string{"ot-links"},
		Errors:      []int{http.StatusNotFound, http.StatusTooManyRequests},
		Middlewares: h.public,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "ot-links-delete",
		Method:        http.MethodDelete,
		Path:          "/api/ot-links/{id}",
		Summary:       "Delete one-time link",
		Tags:          []string{"ot-links"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
		Middlewares:   h.private,
	}
}
