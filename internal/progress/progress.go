package progress

import (
	"fmt"
	"math"

	"github.com/RugvedaRao/StudyLog/internal/catalog"
	"github.com/RugvedaRao/StudyLog/internal/models"
	"github.com/RugvedaRao/StudyLog/internal/storage"
)

type Stats struct {
	Done  int
	Total int
	Pct   int
}

// Tracker owns the per-topic checklist. Every mutation persists the whole
// state blob immediately.
type Tracker struct {
	store storage.Provider
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

// Load returns the checklist normalized against the catalog: every syllabus
// subject is present and every flag array has exactly the subject's topic
// count, padding with false. This self-heals state written by older versions.
func (t *Tracker) Load() (models.ChecklistState, error) {
	state, err := t.store.GetChecklist()
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}
	return Normalize(state), nil
}

func (t *Tracker) Toggle(subject string, topicIndex int, done bool) error {
	if !catalog.Valid(subject) {
		return fmt.Errorf("unknown subject: %s", subject)
	}
	if topicIndex < 0 || topicIndex >= catalog.TopicCount(subject) {
		return fmt.Errorf("topic index out of range for %s: %d", subject, topicIndex)
	}

	state, err := t.Load()
	if err != nil {
		return err
	}
	state[subject][topicIndex] = done
	return t.store.SaveChecklist(state)
}

func (t *Tracker) MarkAll(subject string) error {
	return t.fillSubject(subject, true)
}

func (t *Tracker) ClearAll(subject string) error {
	return t.fillSubject(subject, false)
}

func (t *Tracker) fillSubject(subject string, done bool) error {
	if !catalog.Valid(subject) {
		return fmt.Errorf("unknown subject: %s", subject)
	}

	state, err := t.Load()
	if err != nil {
		return err
	}
	for i := range state[subject] {
		state[subject][i] = done
	}
	return t.store.SaveChecklist(state)
}

// ResetAll clears completion for every subject.
func (t *Tracker) ResetAll() error {
	return t.store.SaveChecklist(Normalize(nil))
}

// Normalize pads or trims each subject's flag array to the catalog topic
// count. Unknown subjects are dropped, missing ones synthesized as all-false.
func Normalize(state models.ChecklistState) models.ChecklistState {
	out := models.ChecklistState{}
	for _, subject := range catalog.Subjects() {
		flags := make([]bool, catalog.TopicCount(subject))
		for i := range flags {
			if i < len(state[subject]) {
				flags[i] = state[subject][i]
			}
		}
		out[subject] = flags
	}
	return out
}

// StatsFor computes completion for one subject. Pct is 0 when the subject has
// no topics.
func StatsFor(state models.ChecklistState, subject string) Stats {
	flags := state[subject]
	done := 0
	for _, f := range flags {
		if f {
			done++
		}
	}
	return makeStats(done, len(flags))
}

// Overall sums completion across every syllabus subject.
func Overall(state models.ChecklistState) Stats {
	done, total := 0, 0
	for _, subject := range catalog.Subjects() {
		s := StatsFor(state, subject)
		done += s.Done
		total += s.Total
	}
	return makeStats(done, total)
}

func makeStats(done, total int) Stats {
	pct := 0
	if total > 0 {
		pct = int(math.Round(float64(done) / float64(total) * 100))
	}
	return Stats{Done: done, Total: total, Pct: pct}
}
