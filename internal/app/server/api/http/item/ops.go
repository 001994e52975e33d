package item

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-list",
		Method:      http.MethodGet,
		Path:        "/api/items",
		Summary:     "List items",
		Description: "Returns metadata of the caller's items, newest first. Ciphertext is not included.",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   "items-create",
		Method:        http.MethodPost,
		Path:          "/api/items",
		Summary:       "Create item",
		Tags:          []string{"items"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-get",
		Method:      http.MethodGet,
		Path:        "/api/items/{id}",
		Summary:     "Get item",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-update",
		Method:      http.MethodPut,
		Path:        "/api/items/{id}",
		Summary:     "Update item",
		Description: "Partial update: only the supplied fields change.",
		Tags:        []string{"items"},
		Security:    []map[string][]string{{"bearer": {}}},
		Errors:      []int{http.StatusNotFound},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   "items-delete",
		Method:        http.MethodDelete,
		Path:          "/api/items/{id}",
		Summary:       "Delete item",
		Tags:          []string{"items"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
		Middlewares:   h.middleware,
	}
}
