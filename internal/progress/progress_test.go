package progress

import (
	"path/filepath"
	"testing"

	"github.com/RugvedaRao/StudyLog/internal/catalog"
	"github.com/RugvedaRao/StudyLog/internal/models"
	"github.com/RugvedaRao/StudyLog/internal/storage"
)

func setupTracker(t *testing.T) *Tracker {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return New(store)
}

func TestLoad_NormalizesToCatalog(t *testing.T) {
	tracker := setupTracker(t)
	state, err := tracker.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for _, subject := range catalog.Subjects() {
		flags, ok := state[subject]
		if !ok {
			t.Errorf("subject %s missing after normalize", subject)
			continue
		}
		if len(flags) != catalog.TopicCount(subject) {
			t.Errorf("subject %s: expected %d flags, got %d",
				subject, catalog.TopicCount(subject), len(flags))
		}
	}
}

func TestNormalize_PadsAndTrims(t *testing.T) {
	short := models.ChecklistState{"Accounting": {true}}
	state := Normalize(short)
	flags := state["Accounting"]
	if len(flags) != catalog.TopicCount("Accounting") {
		t.Fatalf("expected padding to %d, got %d", catalog.TopicCount("Accounting"), len(flags))
	}
	if !flags[0] || flags[1] {
		t.Error("padding must preserve existing flags and add false")
	}

	long := make([]bool, 100)
	state = Normalize(models.ChecklistState{"Accounting": long})
	if len(state["Accounting"]) != catalog.TopicCount("Accounting") {
		t.Error("oversized flag arrays must be trimmed to the catalog count")
	}

	// Unknown subjects are dropped.
	state = Normalize(models.ChecklistState{"Astronomy": {true}})
	if _, ok := state["Astronomy"]; ok {
		t.Error("unknown subjects must not survive normalization")
	}
}

func TestToggle_PersistsAndReloads(t *testing.T) {
	tracker := setupTracker(t)

	if err := tracker.Toggle("Accounting", 2, true); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	state, err := tracker.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !state["Accounting"][2] {
		t.Error("toggled topic not persisted")
	}

	if err := tracker.Toggle("Accounting", 2, false); err != nil {
		t.Fatalf("Toggle off failed: %v", err)
	}
	state, _ = tracker.Load()
	if state["Accounting"][2] {
		t.Error("untoggle not persisted")
	}
}

func TestToggle_RejectsBadInput(t *testing.T) {
	tracker := setupTracker(t)
	if err := tracker.Toggle("Astronomy", 0, true); err == nil {
		t.Error("expected error for unknown subject")
	}
	if err := tracker.Toggle("Accounting", -1, true); err == nil {
		t.Error("expected error for negative index")
	}
	if err := tracker.Toggle("Accounting", 999, true); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestMarkAllClearAll(t *testing.T) {
	tracker := setupTracker(t)

	if err := tracker.MarkAll("Business Laws"); err != nil {
		t.Fatalf("MarkAll failed: %v", err)
	}
	state, _ := tracker.Load()
	stats := StatsFor(state, "Business Laws")
	if stats.Done != stats.Total || stats.Pct != 100 {
		t.Errorf("expected full subject, got %+v", stats)
	}

	if err := tracker.ClearAll("Business Laws"); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	state, _ = tracker.Load()
	stats = StatsFor(state, "Business Laws")
	if stats.Done != 0 || stats.Pct != 0 {
		t.Errorf("expected cleared subject, got %+v", stats)
	}
}

func TestResetAll(t *testing.T) {
	tracker := setupTracker(t)
	if err := tracker.MarkAll("Accounting"); err != nil {
		t.Fatalf("MarkAll failed: %v", err)
	}
	if err := tracker.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}

	state, _ := tracker.Load()
	overall := Overall(state)
	if overall.Done != 0 {
		t.Errorf("expected zero done after reset, got %d", overall.Done)
	}
}

func TestStats_Rounding(t *testing.T) {
	state := Normalize(nil)
	// Business Laws has 7 topics; 5 done is 71.43%, rounded to 71.
	flags := state["Business Laws"]
	for i := 0; i < 5; i++ {
		flags[i] = true
	}
	stats := StatsFor(state, "Business Laws")
	if stats.Pct != 71 {
		t.Errorf("expected 71%%, got %d%%", stats.Pct)
	}
}

func TestOverall_EmptyIsZero(t *testing.T) {
	stats := Overall(models.ChecklistState{})
	if stats.Pct != 0 || stats.Done != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}
