package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tanviarora/moodlog-backend/internal/classifier"
	"github.com/tanviarora/moodlog-backend/internal/metrics"
	"github.com/tanviarora/moodlog-backend/internal/middleware"
	"github.com/tanviarora/moodlog-backend/internal/models"
	"github.com/tanviarora/moodlog-backend/internal/repo"
	"github.com/tanviarora/moodlog-backend/pkg/utils"
)

// HistoryDefaultLimit is how many entries history returns without a month filter.
const HistoryDefaultLimit = 20

// EntryHandler serves entry submission and history listing.
type EntryHandler struct {
	Entries    *repo.EntryRepo
	Classifier *classifier.Adapter
	Cipher     *utils.Cipher
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Emotion         string  `json:"emotion"`
	SpecificEmotion string  `json:"specific_emotion,omitempty"`
	Suggestion      string  `json:"suggestion"`
	Confidence      float64 `json:"confidence"`
}

type historyItem struct {
	Content    string    `json:"content"`
	Emotion    string    `json:"emotion"`
	Suggestion string    `json:"suggestion"`
	Timestamp  time.Time `json:"timestamp"`
}

// Analyze classifies the submitted text, persists one entry and returns the
// classification. A classified entry that fails to persist fails the whole
// request; silently dropping it would be data loss the client never sees.
func (h *EntryHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		JSONError(w, "no text provided", http.StatusBadRequest)
		return
	}

	result, err := h.Classifier.Classify(r.Context(), req.Text)
	if err != nil {
		slog.Error("analyze: classification failed", "error", err)
		JSONError(w, "emotion analysis is temporarily unavailable", http.StatusServiceUnavailable)
		return
	}
	metrics.RecordClassification(result.Category, string(result.Outcome))

	content, err := h.Cipher.Seal(req.Text)
	if err != nil {
		slog.Error("analyze: encrypt failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	entry := &models.Entry{
		UserID:          userID,
		Content:         content,
		Emotion:         result.Category,
		SpecificEmotion: result.SpecificEmotion,
		Suggestion:      result.Suggestion,
	}
	if _, err := h.Entries.Create(r.Context(), entry); err != nil {
		slog.Error("analyze: insert failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Emotion:         result.Category,
		SpecificEmotion: result.SpecificEmotion,
		Suggestion:      result.Suggestion,
		Confidence:      result.Confidence,
	})
}

// History lists the user's entries newest first: a month window when
// month/year are given, otherwise the last 20 entries.
func (h *EntryHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		JSONError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var entries []models.Entry
	var err error
	if r.URL.Query().Get("month") != "" || r.URL.Query().Get("year") != "" {
		from, to, perr := monthWindow(r)
		if perr != nil {
			JSONError(w, perr.Error(), http.StatusBadRequest)
			return
		}
		entries, err = h.Entries.ListWindow(r.Context(), userID, from, to)
	} else {
		entries, err = h.Entries.ListRecent(r.Context(), userID, HistoryDefaultLimit)
	}
	if err != nil {
		slog.Error("history: query failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		content, _ := h.Cipher.Open(e.Content)
		items = append(items, historyItem{
			Content:    content,
			Emotion:    e.Emotion,
			Suggestion: e.Suggestion,
			Timestamp:  e.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, items)
}

// monthWindow resolves month/year query params to a [from, to) window,
// defaulting each missing part to the server's current date.
func monthWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if s := r.URL.Query().Get("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return time.Time{}, time.Time{}, errInvalidPeriod
		}
		year = v
	}
	if s := r.URL.Query().Get("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			return time.Time{}, time.Time{}, errInvalidPeriod
		}
		month = v
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return from, from.AddDate(0, 1, 0), nil
}
