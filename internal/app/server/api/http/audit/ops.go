package audit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) logsOp() huma.Operation {
	return huma.Operation{
		OperationID: "audit-logs",
		Method:      http.MethodGet,
		Path:        "/api/audit/logs",
		Summary:     "Own audit log",
		Description: "The caller's most recent audit entries, newest first.",
		Tags:        []string{"audit"},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
