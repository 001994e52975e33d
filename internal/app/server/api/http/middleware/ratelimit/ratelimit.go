package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// idleTTL is how long an address keeps its bucket without traffic.
const idleTTL = 10 * time.Minute

// Limiter throttles requests per client address with a token bucket.
type Limiter struct {
	api huma.API
	log *slog.Logger

	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	now       func() time.Time
	entries   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New builds a limiter allowing rps requests per second per address with the given burst.
// A non-positive rps disables limiting.
func New(api huma.API, rps float64, burst int, log *slog.Logger) *Limiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		api:     api,
		log:     log.With(slog.String("component", "rate_limiter")),
		limit:   limit,
		burst:   burst,
		ttl:     idleTTL,
		now:     time.Now,
		entries: make(map[string]*bucket),
	}
}

func (l *Limiter) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientKey(ctx.RemoteAddr())
		if !l.allow(key) {
			l.log.Warn("rate limit exceeded",
				slog.String("ip", key),
				slog.String("path", ctx.URL().Path),
			)
			ctx.SetHeader("Retry-After", "1")
			if err := huma.WriteErr(l.api, ctx, http.StatusTooManyRequests, "Too many requests"); err != nil {
				l.log.Error("write rate limit response", slog.String("error", err.Error()))
			}
			return
		}
		next(ctx)
	}
}

func (l *Limiter) allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.entries[key]
	if b == nil {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = b
	}
	b.lastSeen = now

	// Idle buckets are swept at most once per ttl.
	if now.Sub(l.lastSweep) > l.ttl {
		for k, v := range l.entries {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}
	return b.lim.AllowN(now, 1)
}

func clientKey(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err == nil && host != "" {
		return host
	}
	return addr
}
