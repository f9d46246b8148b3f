package feed

import (
	"testing"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/forum"
)

func msgAt(id string, ts time.Time) forum.Message {
	return forum.Message{ID: id, Name: "A", Text: id, CreatedAtMs: ts.UnixMilli()}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)

	cases := []struct {
		ts   time.Time
		want string
	}{
		{time.Date(2026, 8, 30, 0, 0, 1, 0, time.Local), "Today"},
		{time.Date(2026, 8, 29, 23, 59, 59, 0, time.Local), "Yesterday"},
		{time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local), "28 Aug 2026"},
		{time.Date(2026, 1, 2, 12, 0, 0, 0, time.Local), "2 Jan 2026"},
	}
	for _, c := range cases {
		if got := DayLabel(c.ts, now); got != c.want {
			t.Errorf("DayLabel(%v): expected %q, got %q", c.ts, c.want, got)
		}
	}
}

func TestRows_OneSeparatorPerDayNewestFirst(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.Local)

	// Ascending window spanning three calendar days.
	window := []forum.Message{
		msgAt("m1", time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)),
		msgAt("m2", time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)),
		msgAt("m3", time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)),
		msgAt("m4", time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)),
		msgAt("m5", time.Date(2026, 8, 30, 11, 0, 0, 0, time.Local)),
	}

	rows := Rows(window, now)

	var labels []string
	var ids []string
	for _, row := range rows {
		if row.Separator {
			labels = append(labels, row.Label)
		} else {
			ids = append(ids, row.Message.ID)
		}
	}

	wantLabels := []string{"Today", "Yesterday", "28 Aug 2026"}
	if len(labels) != len(wantLabels) {
		t.Fatalf("expected %d separators, got %d (%v)", len(wantLabels), len(labels), labels)
	}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Errorf("separator %d: expected %q, got %q", i, wantLabels[i], labels[i])
		}
	}

	wantIDs := []string{"m5", "m4", "m3", "m2", "m1"}
	for i := range wantIDs {
		if ids[i] != wantIDs[i] {
			t.Errorf("message %d: expected %s, got %s", i, wantIDs[i], ids[i])
		}
	}

	// First row must be the Today separator, before any message.
	if !rows[0].Separator || rows[0].Label != "Today" {
		t.Errorf("first row should be the Today separator, got %+v", rows[0])
	}
}

func TestRows_EmptyWindow(t *testing.T) {
	if rows := Rows(nil, time.Now()); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
