package tui

import (
	"bytes"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "studylog.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	return NewModel(store, forum.NewDiskStore(t.TempDir()), Options{Scope: forum.PublicScope})
}

func TestSwitchingAwayFromBoardDropsReplyTarget(t *testing.T) {
	m := newTestModel(t)
	m.state = StateBoard

	snap := forum.Snapshot{Messages: []forum.Message{
		{ID: "m1", Name: "Rahul", Text: "anyone done ch.4?", CreatedAtMs: 1000},
	}}
	m.boardModel.Apply(snap, false)

	// Esc leaves compose for browse, r pins the selected message as the
	// reply target.
	m.boardModel, _ = m.boardModel.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.boardModel, _ = m.boardModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if !m.boardModel.Replying() {
		t.Fatal("expected a pinned reply target before switching tabs")
	}

	m.setTab(StateHome)
	if m.boardModel.Replying() {
		t.Error("expected the reply target to clear on leaving the board")
	}
}

func TestNewMessageWhileBoardHiddenRingsBell(t *testing.T) {
	m := newTestModel(t)
	m.state = StateHome
	var bell bytes.Buffer
	m.bell = &bell

	backfill := forum.Snapshot{Messages: []forum.Message{
		{ID: "m1", Name: "Asha", Text: "morning", CreatedAtMs: 1000},
	}}
	nm, _ := m.Update(snapshotMsg{snap: backfill})
	m = nm.(Model)
	if m.toast != "" || bell.Len() != 0 {
		t.Fatal("initial backfill must not notify")
	}

	added := forum.Message{ID: "m2", Name: "Rahul", Text: "done with ch.4", CreatedAtMs: 2000}
	next := forum.Snapshot{
		Messages: append(backfill.Messages, added),
		Added:    []forum.Message{added},
	}
	nm, _ = m.Update(snapshotMsg{snap: next})
	m = nm.(Model)
	if m.toast == "" {
		t.Fatal("expected a toast for a message arriving off-screen")
	}
	if !bytes.Contains(bell.Bytes(), []byte("\a")) {
		t.Error("expected the terminal bell alongside the toast")
	}
}
