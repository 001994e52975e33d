// HTTP surface, all under /api:
//
//	POST   /api/auth/register     public, rate limited
//	POST   /api/auth/login        public, rate limited
//	POST   /api/auth/logout       public, rate limited
//	GET    /api/user/me           bearer
//	GET    /api/items             bearer
//	POST   /api/items             bearer
//	GET    /api/items/{id}        bearer
//	PUT    /api/items/{id}        bearer
//	DELETE /api/items/{id}        bearer
//	GET    /api/search?q=         bearer
//	POST   /api/ot-links          bearer
//	GET    /api/ot-links/{id}     public, rate limited
//	DELETE /api/ot-links/{id}     bearer
//	GET    /api/audit/logs        bearer
//	GET    /api/v1/health         public
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/audit"
	authAPI "passvault/internal/app/server/api/http/auth"
	healthAPI "passvault/internal/app/server/api/http/health"
	itemAPI "passvault/internal/app/server/api/http/item"
	"passvault/internal/app/server/api/http/middleware"
	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/app/server/api/http/middleware/client"
	"passvault/internal/app/server/api/http/middleware/logger"
	"passvault/internal/app/server/api/http/middleware/metrics"
	"passvault/internal/app/server/api/http/middleware/proxy"
	"passvault/internal/app/server/api/http/middleware/ratelimit"
	otlinkAPI "passvault/internal/app/server/api/http/otlink"
	searchAPI "passvault/internal/app/server/api/http/search"
	userAPI "passvault/internal/app/server/api/http/user"
	"passvault/internal/app/server/config"
	"passvault/internal/app/server/crypto"
	auditService "passvault/internal/domain/audit"
	authService "passvault/internal/domain/auth"
	"passvault/internal/domain/item"
	"passvault/internal/domain/otlink"
	"passvault/internal/domain/session"
	"passvault/internal/domain/user"
	"passvault/internal/infrastructure/storage"
)

const apiVersion = "0.1.0"

type Handlers struct {
	Health *healthAPI.Handler
	Auth   *authAPI.Handler
	User   *userAPI.Handler
	Item   *itemAPI.Handler
	Search *searchAPI.Handler
	OTLink *otlinkAPI.Handler
	Audit  *audit.Handler
}

// New builds the router with every operation registered through huma.
// Metrics are registered on reg and served at /metrics.
// Forwarding headers are honoured only from cfg.Server.TrustedProxies.
func New(cfg *config.Config, store storage.Storage, reg *prometheus.Registry, log *slog.Logger) *chi.Mux {
	trusted, err := proxy.ParsePrefixes(cfg.Server.TrustedProxies)
	if err != nil {
		log.Error("ignoring trusted proxies", slog.String("error", err.Error()))
		trusted = nil
	}

	mux := chi.NewMux()
	mux.Use(
		chimw.RequestID,
		proxy.TrustedRealIP(trusted),
		chimw.Recoverer,
		chimw.StripSlashes,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
	)

	humaConfig := huma.DefaultConfig(cfg.AppName, apiVersion)
	humaConfig.Info.Description = "Password vault backend. The server stores ciphertext only."
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}

	API := humachi.New(mux, humaConfig)

	h := handlers(API, cfg, store, reg, log)
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Item.SetupRoutes(API)
	h.Search.SetupRoutes(API)
	h.OTLink.SetupRoutes(API)
	h.Audit.SetupRoutes(API)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return mux
}

func handlers(API huma.API, cfg *config.Config, store storage.Storage, reg *prometheus.Registry, log *slog.Logger) *Handlers {
	auditSvc := auditService.NewService(store.Audit(), log)
	sessionSvc := session.NewService(cfg.Auth.Secret, cfg.Auth.AccessTokenTTL, log)
	userSvc := user.NewService(store.Users(), crypto.NewPasswordHasher(), user.NewCredentialValidator(), log)
	authSvc := authService.NewService(userSvc, sessionSvc, auditSvc, log)
	itemSvc := item.NewService(store.Items(), auditSvc, log)
	linkSvc := otlink.NewService(store.Links(), auditSvc, log)

	loggerMW := logger.New(log).Middleware()
	metricsMW := metrics.New(reg).Middleware()
	clientMW := client.Middleware()
	authMW := auth.New(API, authSvc, log).Middleware()
	limitMW := ratelimit.New(API, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, log).Middleware()
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW, metricsMW)
	healthHandler := healthAPI.NewHandler(store, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW, metricsMW, clientMW, limitMW)
	authHandler := authAPI.NewHandler(authSvc, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW, metricsMW, clientMW, authMW)
	private := middlewares.GetAllAndClear()

	middlewares.Add(loggerMW, metricsMW, clientMW, limitMW)
	public := middlewares.GetAllAndClear()

	return &Handlers{
		Health: healthHandler,
		Auth:   authHandler,
		User:   userAPI.NewHandler(log, private),
		Item:   itemAPI.NewHandler(itemSvc, log, private),
		Search: searchAPI.NewHandler(itemSvc, log, private),
		OTLink: otlinkAPI.NewHandler(linkSvc, log, private, public),
		Audit:  audit.NewHandler(auditSvc, log, private),
	}
}
