package tui

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/countdown"
	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/logger"
	"github.com/RugvedaRao/StudyLog/internal/models"
	"github.com/RugvedaRao/StudyLog/internal/quotes"
	"github.com/RugvedaRao/StudyLog/internal/timer"
	"github.com/RugvedaRao/StudyLog/internal/tui/components/board"
	"github.com/RugvedaRao/StudyLog/internal/tui/components/todolist"
)

type (
	tickMsg       time.Time
	subscribedMsg struct{ ch <-chan forum.Snapshot }
	subErrMsg     struct{ err error }
	snapshotMsg   struct{ snap forum.Snapshot }
	snapClosedMsg struct{}
	sendResultMsg struct {
		id  string
		err error
	}
	sendFailClearMsg struct{}
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.todoList.SetSize(msg.Width-4, msg.Height-6)
		m.boardModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		m.quote = quotes.OfTheDay(m.now)
		m.timer.Tick()
		if m.timer.State() == timer.StateAlarming && m.state != StateAlarm {
			m.previousState = m.state
			m.state = StateAlarm
		}
		return m, tickCmd()

	case subscribedMsg:
		m.snaps = msg.ch
		return m, waitForSnapshot(m.snaps)

	case subErrMsg:
		logger.Warn("Feed subscription failed", "error", msg.err)
		m.boardModel.SetOffline()
		return m, nil

	case snapshotMsg:
		hidden := m.state != StateBoard
		if n := m.boardModel.Apply(msg.snap, hidden); n != nil {
			m.toast = "New message from " + n.From + ": " + clip(n.Text, 60)
			io.WriteString(m.bell, "\a")
		}
		return m, waitForSnapshot(m.snaps)

	case snapClosedMsg:
		m.boardModel.SetOffline()
		return m, nil

	case board.SendMsg:
		return m, m.sendCmd(msg.Message)

	case sendResultMsg:
		if msg.err != nil {
			logger.Warn("Send failed", "id", msg.id, "error", msg.err)
			m.boardModel.SendFailed()
			return m, tea.Tick(constants.SendFailRevert, func(time.Time) tea.Msg {
				return sendFailClearMsg{}
			})
		}
		return m, nil

	case sendFailClearMsg:
		m.boardModel.ClearSendFailed()
		return m, nil

	case todolist.ChangedMsg:
		if err := m.store.SaveTodos(msg.Todos); err != nil {
			logger.Error("Saving to-dos failed", "error", err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	// Forms and focused inputs consume non-key messages too (cursor blinks).
	switch m.state {
	case StateProfileForm, StateExamForm:
		return m.updateForm(msg)
	case StateBoard:
		var cmd tea.Cmd
		m.boardModel, cmd = m.boardModel.Update(msg)
		return m, cmd
	case StateTodo:
		var cmd tea.Cmd
		m.todoList, cmd = m.todoList.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.subCancel()
		return m, tea.Quit
	}

	switch m.state {
	case StateProfileForm, StateExamForm:
		return m.updateForm(msg)
	case StateAlarm:
		m.timer.Acknowledge()
		m.state = m.previousState
		return m, nil
	case StateConfirmReset:
		switch msg.String() {
		case "y", "Y":
			if err := m.tracker.ResetAll(); err != nil {
				logger.Error("Progress reset failed", "error", err)
			}
			m.reloadChecklist()
		}
		m.state = StateSyllabus
		return m, nil
	}

	// Components with a focused text input get every key.
	if m.state == StateTodo && m.todoList.Adding() {
		var cmd tea.Cmd
		m.todoList, cmd = m.todoList.Update(msg)
		return m, cmd
	}
	if m.state == StateBoard && m.boardModel.Composing() {
		var cmd tea.Cmd
		m.boardModel, cmd = m.boardModel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.state < tabCount {
			m.setTab((m.state + 1) % tabCount)
			return m, nil
		}
	case key.Matches(msg, m.keys.ShiftTab):
		if m.state < tabCount {
			m.setTab((m.state - 1 + tabCount) % tabCount)
			return m, nil
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case StateHome:
		return m.updateHome(msg)
	case StateSyllabus:
		return m.updateSyllabus(msg)
	case StateTopics:
		return m.updateTopics(msg)
	case StateTodo:
		var cmd tea.Cmd
		m.todoList, cmd = m.todoList.Update(msg)
		return m, cmd
	case StateTimer:
		return m.updateTimer(msg)
	case StateBoard:
		var cmd tea.Cmd
		m.boardModel, cmd = m.boardModel.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setTab switches to a tab screen, clearing the unread toast when the board
// regains focus and any pinned reply target when it loses focus.
func (m *Model) setTab(state SessionState) {
	if m.state == StateBoard && state != StateBoard {
		m.boardModel.ClearReply()
	}
	m.state = state
	if state == StateBoard {
		m.toast = ""
	}
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ExamDate):
		m.examForm = &ExamFormModel{Date: countdown.FormatDDMMYYYY(m.examISO)}
		m.form = m.buildExamForm()
		m.previousState = StateHome
		m.state = StateExamForm
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Profile):
		m.profileForm = &ProfileFormModel{Name: m.profile.Name, Email: m.profile.Email}
		m.form = m.buildProfileForm()
		m.previousState = StateHome
		m.state = StateProfileForm
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Theme):
		if m.theme == models.ThemeDark {
			m.theme = models.ThemeLight
		} else {
			m.theme = models.ThemeDark
		}
		m.styles = NewStyles(m.theme)
		if err := m.store.SaveTheme(m.theme); err != nil {
			logger.Error("Saving theme failed", "error", err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateSyllabus(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	subjects := subjectCount()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.subjectIndex > 0 {
			m.subjectIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.subjectIndex < subjects-1 {
			m.subjectIndex++
		}
	case key.Matches(msg, m.keys.Enter):
		m.topicCursor = 0
		m.state = StateTopics
	case key.Matches(msg, m.keys.Reset):
		m.state = StateConfirmReset
	}
	return m, nil
}

func (m Model) updateTopics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	subject := subjectAt(m.subjectIndex)
	topics := m.checklist[subject]

	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateSyllabus
	case key.Matches(msg, m.keys.Up):
		if m.topicCursor > 0 {
			m.topicCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.topicCursor < len(topics)-1 {
			m.topicCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.topicCursor < len(topics) {
			done := !topics[m.topicCursor]
			if err := m.tracker.Toggle(subject, m.topicCursor, done); err != nil {
				logger.Error("Toggling topic failed", "error", err)
			}
			m.reloadChecklist()
		}
	case key.Matches(msg, m.keys.MarkAll):
		if err := m.tracker.MarkAll(subject); err != nil {
			logger.Error("Marking subject failed", "error", err)
		}
		m.reloadChecklist()
	case key.Matches(msg, m.keys.ClearAll):
		if err := m.tracker.ClearAll(subject); err != nil {
			logger.Error("Clearing subject failed", "error", err)
		}
		m.reloadChecklist()
	}
	return m, nil
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.timerMin < 180 {
			m.timerMin++
		}
	case "down", "j":
		if m.timerMin > 0 {
			m.timerMin--
		}
	case "right", "l":
		m.timerSec += 15
		if m.timerSec > 59 {
			m.timerSec = 0
		}
	case "left", "h":
		m.timerSec -= 15
		if m.timerSec < 0 {
			m.timerSec = 45
		}
	case "s", "enter":
		if err := m.timer.Start(m.timerMin, m.timerSec); err != nil {
			logger.Warn("Timer not started", "error", err)
		}
	case "p":
		m.timer.Pause()
	case "x":
		m.timer.Reset()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	// Esc abandons the form unless this is the first-run profile capture,
	// which must complete.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		if m.state == StateExamForm || m.profile.Name != "" {
			m.form = nil
			m.state = m.previousState
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case StateProfileForm:
		return m.completeProfileForm(cmd)
	case StateExamForm:
		return m.completeExamForm(cmd)
	}
	return m, cmd
}

func (m Model) completeProfileForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.profileForm.Name)
	if runes := []rune(name); len(runes) > constants.MaxNameLen {
		name = string(runes[:constants.MaxNameLen])
	}

	m.profile = models.Profile{
		Name:  name,
		Email: strings.TrimSpace(m.profileForm.Email),
	}
	if err := m.store.SaveProfile(m.profile); err != nil {
		logger.Error("Saving profile failed", "error", err)
	}
	m.boardModel.SetSelfName(m.profile.Name)

	m.form = nil
	m.state = m.previousState
	return m, tea.Batch(cmd, logProfileCmd(m.opts.WebhookURL, m.profile))
}

func (m Model) completeExamForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	iso, err := countdown.ParseDDMMYYYY(m.examForm.Date)
	if err == nil {
		m.examISO = iso
		if err := m.store.SaveExamDate(iso); err != nil {
			logger.Error("Saving exam date failed", "error", err)
		}
	}

	m.form = nil
	m.state = m.previousState
	return m, cmd
}

func (m *Model) reloadChecklist() {
	checklist, err := m.tracker.Load()
	if err != nil {
		logger.Error("Reloading checklist failed", "error", err)
		return
	}
	m.checklist = checklist
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
