package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/RugvedaRao/StudyLog/internal/catalog"
	"github.com/RugvedaRao/StudyLog/internal/countdown"
	"github.com/RugvedaRao/StudyLog/internal/progress"
	"github.com/RugvedaRao/StudyLog/internal/timer"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateHome:
		content = m.styles.Doc.Render(m.viewHome())
	case StateSyllabus:
		content = m.styles.Doc.Render(m.viewSyllabus())
	case StateTopics:
		content = m.styles.Doc.Render(m.viewTopics())
	case StateTodo:
		content = m.styles.Doc.Render(m.todoList.View())
	case StateTimer:
		content = m.styles.Doc.Render(m.viewTimer())
	case StateBoard:
		content = m.styles.Doc.Render(m.boardModel.View())
	case StateProfileForm, StateExamForm:
		content = m.styles.Doc.Render(m.form.View())
	case StateConfirmReset:
		content = m.viewConfirmReset()
	case StateAlarm:
		content = m.viewAlarm()
	}

	sections := []string{m.viewTabs()}
	if m.toast != "" && m.state != StateBoard {
		sections = append(sections, m.styles.Toast.Render(m.toast))
	}
	sections = append(sections, content, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	labels := []string{"Home", "Syllabus", "To-Do", "Timer", "Board"}
	if m.toast != "" {
		labels[StateBoard] += " •"
	}

	active := m.state
	if active >= tabCount {
		// Overlays highlight the tab they came from.
		switch m.state {
		case StateTopics, StateConfirmReset:
			active = StateSyllabus
		default:
			active = m.previousState
		}
	}

	var tabs []string
	for i, title := range labels {
		if active == SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHome() string {
	var b strings.Builder

	name := m.profile.Name
	if name == "" {
		name = "there"
	}
	b.WriteString(m.styles.Title.Render("Hi "+name+", keep going!") + "\n\n")

	if m.examISO == "" {
		b.WriteString(m.styles.Muted.Render("No exam date set. Press 'e' to set one.") + "\n")
	} else {
		remaining, err := countdown.Until(m.examISO, m.now)
		if err != nil {
			b.WriteString(m.styles.Danger.Render("Stored exam date is invalid. Press 'e' to fix it.") + "\n")
		} else {
			b.WriteString(m.styles.Muted.Render("Exam on "+countdown.FormatDDMMYYYY(m.examISO)+" at 09:00") + "\n")
			b.WriteString(m.styles.Countdown.Render(fmt.Sprintf("%d days  %02d:%02d:%02d",
				remaining.Days, remaining.Hours, remaining.Minutes, remaining.Seconds)) + "\n")
		}
	}

	b.WriteString("\n" + m.styles.Quote.Render("“"+m.quote+"”") + "\n\n")

	overall := progress.Overall(m.checklist)
	b.WriteString(m.styles.Title.Render("Syllabus progress") + "\n")
	b.WriteString(fmt.Sprintf("%s %3d%%  (%d/%d topics)\n\n",
		m.styles.Accent.Render(m.overallBar(24)), overall.Pct, overall.Done, overall.Total))

	for _, subject := range catalog.Subjects() {
		stats := progress.StatsFor(m.checklist, subject)
		b.WriteString(fmt.Sprintf("%s %3d%%  %s\n",
			renderBar(stats.Pct, 16), stats.Pct, m.styles.Muted.Render(subject)))
	}

	return b.String()
}

func (m Model) viewSyllabus() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Subjects") + "\n\n")

	for i, subject := range catalog.Subjects() {
		stats := progress.StatsFor(m.checklist, subject)
		cursor := "  "
		line := fmt.Sprintf("%s (%d/%d)", subject, stats.Done, stats.Total)
		if i == m.subjectIndex {
			cursor = m.styles.Accent.Render("> ")
			line = m.styles.Title.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n" + m.styles.Muted.Render("enter opens a subject, R resets all progress"))
	return b.String()
}

func (m Model) viewTopics() string {
	subject := subjectAt(m.subjectIndex)
	flags := m.checklist[subject]
	topics := catalog.Topics(subject)

	var b strings.Builder
	stats := progress.StatsFor(m.checklist, subject)
	b.WriteString(m.styles.Title.Render(subject) +
		m.styles.Muted.Render(fmt.Sprintf("  %d/%d done", stats.Done, stats.Total)) + "\n\n")

	for i, topic := range topics {
		box := "[ ]"
		if i < len(flags) && flags[i] {
			box = m.styles.Accent.Render("[x]")
		}
		cursor := "  "
		if i == m.topicCursor {
			cursor = m.styles.Accent.Render("> ")
			topic = m.styles.Title.Render(topic)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, topic))
	}

	return b.String()
}

func (m Model) viewTimer() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Focus timer") + "\n\n")

	switch m.timer.State() {
	case timer.StateIdle:
		b.WriteString(fmt.Sprintf("Duration: %s\n\n",
			m.styles.Countdown.Render(fmt.Sprintf("%02d:%02d", m.timerMin, m.timerSec))))
		b.WriteString(m.styles.Muted.Render("↑/↓ minutes, ←/→ seconds, s to start"))
	case timer.StateRunning:
		b.WriteString(m.styles.Countdown.Render(m.timer.Display()) + "\n\n")
		b.WriteString(m.styles.Muted.Render("p pause, x reset"))
	case timer.StatePaused:
		b.WriteString(m.styles.Countdown.Render(m.timer.Display()) +
			m.styles.Muted.Render("  (paused)") + "\n\n")
		b.WriteString(m.styles.Muted.Render("s resume, x reset"))
	case timer.StateAlarming:
		b.WriteString(m.styles.Danger.Render("Time's up!"))
	}

	return b.String()
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render("Reset all syllabus progress?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewAlarm() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Danger.Render("⏰ Time's up!"),
			"",
			m.styles.Muted.Render("Press any key to dismiss"),
		),
	)
}
