package analytics

import "github.com/tanviarora/moodlog-backend/internal/repo"

// DateFormat is the calendar bucket key layout.
const DateFormat = "2006-01-02"

// DominantByDay buckets entries by calendar date (the timestamp truncated to
// its date, ignoring time-of-day) and picks the most frequent category per
// day. Rows must arrive in ascending (created_at, id) order; on a tie the
// category encountered first that day wins.
func DominantByDay(rows []repo.EmotionRow) map[string]string {
	type dayTally struct {
		counts map[string]int
		order  []string
	}
	days := make(map[string]*dayTally)

	for _, row := range rows {
		key := row.CreatedAt.Format(DateFormat)
		tally := days[key]
		if tally == nil {
			tally = &dayTally{counts: make(map[string]int)}
			days[key] = tally
		}
		if _, seen := tally.counts[row.Emotion]; !seen {
			tally.order = append(tally.order, row.Emotion)
		}
		tally.counts[row.Emotion]++
	}

	out := make(map[string]string, len(days))
	for key, tally := range days {
		dominant := tally.order[0]
		best := tally.counts[dominant]
		// strict > keeps the first-encountered category on ties
		for _, emotion := range tally.order[1:] {
			if tally.counts[emotion] > best {
				dominant = emotion
				best = tally.counts[emotion]
			}
		}
		out[key] = dominant
	}
	return out
}
