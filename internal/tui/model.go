package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/RugvedaRao/StudyLog/internal/catalog"
	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/countdown"
	"github.com/RugvedaRao/StudyLog/internal/feed"
	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/logger"
	"github.com/RugvedaRao/StudyLog/internal/models"
	"github.com/RugvedaRao/StudyLog/internal/progress"
	"github.com/RugvedaRao/StudyLog/internal/quotes"
	"github.com/RugvedaRao/StudyLog/internal/storage"
	"github.com/RugvedaRao/StudyLog/internal/timer"
	"github.com/RugvedaRao/StudyLog/internal/tui/components/board"
	"github.com/RugvedaRao/StudyLog/internal/tui/components/todolist"
	"github.com/RugvedaRao/StudyLog/internal/webhook"
)

type SessionState int

const (
	StateHome SessionState = iota
	StateSyllabus
	StateTodo
	StateTimer
	StateBoard
	StateTopics
	StateProfileForm
	StateExamForm
	StateConfirmReset
	StateAlarm
)

// tabCount covers the states reachable by tab cycling; the rest are overlays.
const tabCount = 5

type Options struct {
	Scope      string
	WebhookURL string
}

type ProfileFormModel struct {
	Name  string
	Email string
}

type ExamFormModel struct {
	Date string
}

type Model struct {
	store storage.Provider
	forum forum.Store
	opts  Options

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	styles        Styles
	theme         models.Theme
	quitting      bool
	width         int
	height        int

	profile   models.Profile
	tracker   *progress.Tracker
	checklist models.ChecklistState
	examISO   string
	quote     string
	now       time.Time

	subjectIndex int
	topicCursor  int

	todoList   todolist.Model
	boardModel board.Model

	timer    *timer.Timer
	timerMin int
	timerSec int

	form        *huh.Form
	profileForm *ProfileFormModel
	examForm    *ExamFormModel

	// toast is the pending message notification shown while the board is
	// off-screen. Cleared when the board regains focus.
	toast string

	limit     int
	bell      io.Writer
	subCtx    context.Context
	subCancel context.CancelFunc
	snaps     <-chan forum.Snapshot
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NewModel(store storage.Provider, forumStore forum.Store, opts Options) Model {
	now := time.Now()

	theme, err := store.GetTheme()
	if err != nil {
		theme = models.ThemeDark
	}

	profile, hasProfile, _ := store.GetProfile()
	examISO, _, _ := store.GetExamDate()
	todos, _ := store.GetTodos()

	tracker := progress.New(store)
	checklist, err := tracker.Load()
	if err != nil {
		checklist = progress.Normalize(nil)
	}

	limit := constants.ForumWindow
	if opts.Scope != forum.PublicScope {
		limit = constants.RoomWindow
	}

	bm := board.New(feed.Config{
		Scope:    opts.Scope,
		Limit:    limit,
		SelfName: profile.Name,
	}, 0, 0)

	subCtx, subCancel := context.WithCancel(context.Background())
	bell := timerBellWriter()

	m := Model{
		store:      store,
		forum:      forumStore,
		opts:       opts,
		state:      StateHome,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		styles:     NewStyles(theme),
		theme:      theme,
		profile:    profile,
		tracker:    tracker,
		checklist:  checklist,
		examISO:    examISO,
		quote:      quotes.OfTheDay(now),
		now:        now,
		todoList:   todolist.New(todos, 0, 0),
		boardModel: bm,
		timer:      timer.New(timer.NewBellBeeper(bell)),
		timerMin:   25,
		limit:      limit,
		bell:       bell,
		subCtx:     subCtx,
		subCancel:  subCancel,
	}

	// First run captures the profile before anything else.
	if !hasProfile {
		m.profileForm = &ProfileFormModel{}
		m.form = m.buildProfileForm()
		m.state = StateProfileForm
		m.previousState = StateHome
	}

	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.subscribeCmd(), m.boardModel.Init())
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHome:
		keys = append(keys, m.keys.ExamDate, m.keys.Profile, m.keys.Theme)
	case StateSyllabus:
		keys = append(keys, m.keys.Enter, m.keys.Reset)
	case StateTopics:
		keys = append(keys, m.keys.Toggle, m.keys.MarkAll, m.keys.ClearAll, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}

	var actions []key.Binding
	switch m.state {
	case StateHome:
		actions = []key.Binding{m.keys.ExamDate, m.keys.Profile, m.keys.Theme}
	case StateSyllabus:
		actions = []key.Binding{m.keys.Reset}
	case StateTopics:
		actions = []key.Binding{m.keys.Toggle, m.keys.MarkAll, m.keys.ClearAll}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) buildProfileForm() *huh.Form {
	f := m.profileForm
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				CharLimit(constants.MaxNameLen).
				Value(&f.Name).
				Validate(func(s string) error {
					if len(s) == 0 {
						return errEmptyName
					}
					return nil
				}),
			huh.NewInput().
				Title("Email").
				Value(&f.Email).
				Validate(func(s string) error {
					if !emailRe.MatchString(s) {
						return errBadEmail
					}
					return nil
				}),
		),
	)
}

func (m Model) buildExamForm() *huh.Form {
	f := m.examForm
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Exam date (DD-MM-YYYY)").
				Placeholder("15-05-2027").
				Value(&f.Date).
				Validate(func(s string) error {
					_, err := countdown.ParseDDMMYYYY(s)
					return err
				}),
		),
	)
}

// subscribeCmd opens the live feed subscription for the configured scope.
func (m Model) subscribeCmd() tea.Cmd {
	store, scope, limit, ctx := m.forum, m.opts.Scope, m.limit, m.subCtx
	return func() tea.Msg {
		if err := store.Connect(scope); err != nil {
			return subErrMsg{err: err}
		}
		ch, err := store.Subscribe(ctx, scope, limit)
		if err != nil {
			return subErrMsg{err: err}
		}
		return subscribedMsg{ch: ch}
	}
}

func waitForSnapshot(ch <-chan forum.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return snapClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) sendCmd(msg forum.Message) tea.Cmd {
	store, scope := m.forum, m.opts.Scope
	return func() tea.Msg {
		err := store.Append(scope, msg)
		return sendResultMsg{id: msg.ID, err: err}
	}
}

func logProfileCmd(url string, p models.Profile) tea.Cmd {
	if url == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webhook.New(url).LogProfile(ctx, p, ""); err != nil {
			logger.Warn("Profile log failed", "error", err)
		}
		return nil
	}
}

func (m Model) overallBar(width int) string {
	stats := progress.Overall(m.checklist)
	return renderBar(stats.Pct, width)
}

func renderBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func subjectCount() int {
	return len(catalog.Subjects())
}

func subjectAt(i int) string {
	subjects := catalog.Subjects()
	if i < 0 || i >= len(subjects) {
		return subjects[0]
	}
	return subjects[i]
}

var (
	errEmptyName = errors.New("name is required")
	errBadEmail  = errors.New("enter a valid email address")
)

// timerBellWriter returns the stream the alarm bell is written to. Stdout is
// owned by the renderer, so the bell goes to stderr.
func timerBellWriter() io.Writer {
	return os.Stderr
}
