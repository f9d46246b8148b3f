package quotes

import (
	"testing"
	"time"
)

func TestOfTheDay_StableWithinDay(t *testing.T) {
	morning := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	night := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	if OfTheDay(morning) != OfTheDay(night) {
		t.Error("quote must not change within a UTC day")
	}
}

func TestOfTheDay_RotatesAtMidnightUTC(t *testing.T) {
	before := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	after := time.Date(2026, 8, 31, 0, 0, 1, 0, time.UTC)
	if OfTheDay(before) == OfTheDay(after) {
		t.Error("quote should rotate at midnight UTC")
	}
}

func TestOfTheDay_CyclesThroughAll(t *testing.T) {
	seen := make(map[string]struct{})
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for day := 0; day < len(quotes); day++ {
		seen[OfTheDay(start.AddDate(0, 0, day))] = struct{}{}
	}
	if len(seen) != len(quotes) {
		t.Errorf("expected all %d quotes across %d days, saw %d", len(quotes), len(quotes), len(seen))
	}
}
