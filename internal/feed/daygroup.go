package feed

import (
	"time"

	"github.com/RugvedaRao/StudyLog/internal/forum"
)

// Row is one line of the rendered feed: either a day separator or a message.
type Row struct {
	Separator bool
	Label     string
	Message   forum.Message
}

// midnight normalizes t to the start of its local calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayLabel names the calendar day that ts falls on, relative to now:
// "Today", "Yesterday", or the absolute date for anything older.
func DayLabel(ts, now time.Time) string {
	day := midnight(ts)
	today := midnight(now)

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("2 Jan 2006")
	}
}

// Rows lays out the window newest-first and inserts a day separator before
// the first message of each calendar day encountered in render order. The
// separator keys off the actual day boundary, not list position, so it is
// correct for either traversal direction of the underlying window.
func Rows(window []forum.Message, now time.Time) []Row {
	rows := make([]Row, 0, len(window))

	var lastDay time.Time
	for i := len(window) - 1; i >= 0; i-- {
		msg := window[i]
		ts := time.UnixMilli(msg.CreatedAtMs)
		day := midnight(ts)

		if !day.Equal(lastDay) {
			rows = append(rows, Row{Separator: true, Label: DayLabel(ts, now)})
			lastDay = day
		}
		rows = append(rows, Row{Message: msg})
	}

	return rows
}
