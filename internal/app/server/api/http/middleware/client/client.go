package client

import (
	"net"

	"github.com/danielgtaylor/huma/v2"

	"passvault/internal/domain/audit"
)

// Middleware puts the caller's IP and user agent into the request context
// so audit entries can be attributed.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		c := audit.Client{
			IP:        hostOnly(ctx.RemoteAddr()),
			UserAgent: ctx.Header("User-Agent"),
		}
		next(huma.WithContext(ctx, audit.WithClient(ctx.Context(), c)))
	}
}

func hostOnly(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
