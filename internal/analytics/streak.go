package analytics

import (
	"time"

	"github.com/tanviarora/moodlog-backend/internal/models"
	"github.com/tanviarora/moodlog-backend/internal/repo"
)

// Badge is one unlocked achievement. Badges are recomputed on every call and
// never persisted; they are independent booleans, not mutually exclusive.
type Badge struct {
	Icon string `json:"icon"`
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// positivityRunLength is how many most-recent entries must all be positive
// for the Positivity Pro badge.
const positivityRunLength = 5

// truncateToDate reduces a timestamp to its wall-clock calendar date,
// normalized to UTC so dates compare equal regardless of the location the
// driver or the server clock attached. The streak walk is over calendar
// days, never over instants.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// distinctDates reduces newest-first rows to their distinct calendar dates,
// preserving the newest-first order. Multiple same-day entries count once.
func distinctDates(rows []repo.EmotionRow) []time.Time {
	var dates []time.Time
	for _, row := range rows {
		d := truncateToDate(row.CreatedAt)
		if len(dates) == 0 || !dates[len(dates)-1].Equal(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// Streak counts consecutive calendar days with at least one entry, ending
// today or yesterday. Rows must arrive newest first. The walk stops at the
// first gap; a most recent entry older than yesterday means streak zero.
func Streak(rows []repo.EmotionRow, today time.Time) int {
	dates := distinctDates(rows)
	if len(dates) == 0 {
		return 0
	}

	todayDate := truncateToDate(today)
	yesterday := todayDate.AddDate(0, 0, -1)
	if !dates[0].Equal(todayDate) && !dates[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	check := dates[0]
	for _, d := range dates[1:] {
		if !d.Equal(check.AddDate(0, 0, -1)) {
			break
		}
		streak++
		check = d
	}
	return streak
}

// Badges evaluates every badge over the full history. Rows must arrive
// newest first.
func Badges(rows []repo.EmotionRow) []Badge {
	badges := []Badge{}
	if len(rows) == 0 {
		return badges
	}

	badges = append(badges, Badge{Icon: "🌱", Name: "First Step", Desc: "Wrote your first journal entry"})

	if len(rows) >= 10 {
		badges = append(badges, Badge{Icon: "✍️", Name: "Journalist", Desc: "Wrote 10 journal entries"})
	}

	if len(rows) >= positivityRunLength {
		allPositive := true
		for _, row := range rows[:positivityRunLength] {
			if row.Emotion != models.EmotionPositive {
				allPositive = false
				break
			}
		}
		if allPositive {
			badges = append(badges, Badge{Icon: "☀️", Name: "Positivity Pro", Desc: "5 positive entries in a row"})
		}
	}

	for _, row := range rows {
		hour := row.CreatedAt.Hour()
		if hour >= 23 || hour < 4 {
			badges = append(badges, Badge{Icon: "🦉", Name: "Night Owl", Desc: "Journaled late at night"})
			break
		}
	}

	return badges
}
