package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tanviarora/moodlog-backend/internal/analytics"
	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/models"
	"github.com/tanviarora/moodlog-backend/internal/repo"
	"github.com/tanviarora/moodlog-backend/pkg/utils"
)

var errInvalidPeriod = errors.New("invalid month/year")

// AnalyticsHandler serves the read-side views over one user's entries.
// Now is injectable so streak tests can pin the clock.
type AnalyticsHandler struct {
	Entries *repo.EntryRepo
	Cipher  *utils.Cipher
	Now     func() time.Time
}

func (h *AnalyticsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Stats returns per-category entry counts for one month.
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	from, to, err := monthWindow(r)
	if err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	counts, err := h.Entries.CountByEmotion(r.Context(), userID, from, to)
	if err != nil {
		slog.Error("stats: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"positive": counts[models.EmotionPositive],
		"negative": counts[models.EmotionNegative],
		"neutral":  counts[models.EmotionNeutral],
		"period":   fmt.Sprintf("%04d-%02d", from.Year(), int(from.Month())),
	})
}

// WordCloud returns the 50 most frequent meaningful words across the user's
// whole history, as ordered [word, count] pairs.
func (h *AnalyticsHandler) WordCloud(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	contents, err := h.Entries.ContentsAsc(r.Context(), userID)
	if err != nil {
		slog.Error("wordcloud: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	texts := make([]string, 0, len(contents))
	for _, c := range contents {
		text, _ := h.Cipher.Open(c)
		texts = append(texts, text)
	}

	words := analytics.TopWords(texts)
	pairs := make([][2]interface{}, 0, len(words))
	for _, wc := range words {
		pairs = append(pairs, [2]interface{}{wc.Word, wc.Count})
	}

	writeJSON(w, http.StatusOK, pairs)
}

// Calendar returns the dominant emotion per calendar date for one month.
func (h *AnalyticsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	from, to, err := monthWindow(r)
	if err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows, err := h.Entries.EmotionsAsc(r.Context(), userID, from, to)
	if err != nil {
		slog.Error("calendar: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, analytics.DominantByDay(rows))
}

// DayStats returns per-category counts for a single date.
func (h *AnalyticsHandler) DayStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	day, err := time.ParseInLocation(analytics.DateFormat, r.URL.Query().Get("date"), time.Local)
	if err != nil {
		JSONError(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	counts, err := h.Entries.CountByEmotion(r.Context(), userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		slog.Error("day_stats: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"positive": counts[models.EmotionPositive],
		"negative": counts[models.EmotionNegative],
		"neutral":  counts[models.EmotionNeutral],
	})
}

// Gamification returns the current streak and unlocked badges.
// Both are recomputed from the full history on every call.
func (h *AnalyticsHandler) Gamification(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	rows, err := h.Entries.EmotionsDesc(r.Context(), userID)
	if err != nil {
		slog.Error("gamification: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak": analytics.Streak(rows, h.now()),
		"badges": analytics.Badges(rows),
	})
}
