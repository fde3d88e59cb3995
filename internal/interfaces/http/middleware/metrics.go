package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wikimol/wikimolgen/internal/infrastructure/monitoring/prometheus"
)

// Metrics returns middleware that records request counts, durations, and the
// in-flight gauge. The path label uses the chi route pattern rather than the
// raw URL so per-compound paths collapse into one series.
func Metrics(m *prometheus.AppMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			m.HTTPActiveRequests.WithLabelValues(r.Method).Inc()
			wrapped := newWrappedResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.HTTPActiveRequests.WithLabelValues(r.Method).Dec()
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			prometheus.RecordHTTPRequest(m, r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}
