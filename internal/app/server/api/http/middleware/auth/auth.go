package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	authService "passvault/internal/domain/auth"
	"passvault/internal/domain/user"
)

const bearerPrefix = "bearer "

type Auth struct {
	api     huma.API
	service authService.Servicer
	log     *slog.Logger
}

func New(api huma.API, service authService.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		service: service,
		log:     log.With(slog.String("component", "auth_middleware")),
	}
}

type contextKey string

const userKey contextKey = "user"

// Middleware rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := bearerToken(ctx.Header("Authorization"))
		if !ok {
			a.unauthorized(ctx)
			return
		}

		u, err := a.service.Resolve(ctx.Context(), token)
		if err != nil {
			a.log.Debug("token rejected", slog.String("path", ctx.URL().Path))
			a.unauthorized(ctx)
			return
		}

		next(huma.WithValue(ctx, userKey, u))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	if err := huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Could not validate credentials"); err != nil {
		a.log.Error("write unauthorized response", slog.String("error", err.Error()))
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// GetUser returns the authenticated caller.
func GetUser(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey).(*user.User)
	return u, ok && u != nil
}
