package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tanviarora/moodlog-backend/internal/handlers"
	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/services"
)

// Setup wires every route. Everything except register/login/health/metrics
// sits behind the session guard.
func Setup(r *chi.Mux, auth *handlers.AuthHandler, entries *handlers.EntryHandler, stats *handlers.AnalyticsHandler, sessions *services.SessionStore) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/register", auth.Register)
	r.Post("/api/login", auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions))

		r.Get("/api/logout", auth.Logout)
		r.Get("/api/me", auth.Me)

		r.Post("/analyze", entries.Analyze)
		r.Get("/history", entries.History)

		r.Get("/api/stats", stats.Stats)
		r.Get("/api/wordcloud", stats.WordCloud)
		r.Get("/api/calendar", stats.Calendar)
		r.Get("/api/day_stats", stats.DayStats)
		r.Get("/api/gamification", stats.Gamification)
	})
}
