package client

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"passvault/internal/domain/audit"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		userAgent  string
		want       audit.Client
	}{
		{
			name:       "ipv4 with port",
			remoteAddr: "203.0.113.7:52100",
			userAgent:  "curl/8.5",
			want:       audit.Client{IP: "203.0.113.7", UserAgent: "curl/8.5"},
		},
		{
			name:       "ipv6 with port",
			remoteAddr: "[2001:db8::1]:443",
			want:       audit.Client{IP: "2001:db8::1"},
		},
		{
			name:       "bare ip from proxy header",
			remoteAddr: "198.51.100.2",
			userAgent:  "Mozilla/5.0",
			want:       audit.Client{IP: "198.51.100.2", UserAgent: "Mozilla/5.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/ot-links/x", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.userAgent != "" {
				req.Header.Set("User-Agent", tt.userAgent)
			} else {
				req.Header.Del("User-Agent")
			}
			ctx := humatest.NewContext(&huma.Operation{}, req, httptest.NewRecorder())

			var got audit.Client
			Middleware()(ctx, func(next huma.Context) {
				got = audit.ClientFrom(next.Context())
			})

			assert.Equal(t, tt.want, got)
		})
	}
}
