package search

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) searchOp() huma.Operation {
	return huma.Operation{
		OperationID: "items-search",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Search items by title HMAC",
		Description: "Exact match against the client-computed title HMAC. The server never sees titles.",
		Tags:        []string{"search"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
