package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"archlens/internal/gateway/api"
	"archlens/internal/gateway/middleware"
)

// NewMux wires the API, the metrics endpoint and the middleware chain.
// A nil gatherer omits /metrics.
func NewMux(h *api.Handler, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	h.Register(mux)
	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return middleware.CORS(middleware.AccessLog(logger)(mux))
}
