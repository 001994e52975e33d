package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	mw := m.Middleware()

	serve := func(status int) {
		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		ctx := humatest.NewContext(&huma.Operation{OperationID: "items-list"}, req, httptest.NewRecorder())
		mw(ctx, func(next huma.Context) { next.SetStatus(status) })
	}

	serve(http.StatusOK)
	serve(http.StatusOK)
	serve(http.StatusUnauthorized)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("items-list", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("items-list", "GET", "401")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) }, "second registration on the same registry must conflict")
}
