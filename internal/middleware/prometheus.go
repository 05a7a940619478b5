package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanviarora/moodlog-backend/internal/metrics"
)

// Prometheus records request count and duration for each request, excluding
// the scrape endpoint itself. The path label is the chi route pattern, not
// the raw URL path, so unmatched scans cannot blow up label cardinality.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrap := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrap, r)

		// RoutePattern is only populated once routing has run.
		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		if pattern == "/metrics" {
			return
		}
		metrics.RecordRequest(r.Method, pattern, wrap.status, time.Since(start).Seconds())
	})
}
