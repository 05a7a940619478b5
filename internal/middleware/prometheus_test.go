package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tanviarora/moodlog-backend/internal/metrics"
)

func servePrometheus(t *testing.T, r chi.Router, path string) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
}

func TestPrometheus_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	servePrometheus(t, r, "/api/stats")

	got := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/api/stats", "200"))
	if got != 1 {
		t.Errorf("matched route counter: got %v, want 1", got)
	}
}

func TestPrometheus_UnmatchedPathsShareOneLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Prometheus)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// A scanner probing random paths must not create one series per path.
	servePrometheus(t, r, "/wp-admin")
	servePrometheus(t, r, "/.env")

	got := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "unmatched", "404"))
	if got != 2 {
		t.Errorf("unmatched counter: got %v, want 2", got)
	}
	if leak := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/wp-admin", "404")); leak != 0 {
		t.Errorf("raw-path series recorded: got %v, want 0", leak)
	}
}
