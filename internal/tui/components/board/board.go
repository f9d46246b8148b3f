package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/feed"
	"github.com/RugvedaRao/StudyLog/internal/forum"
)

var (
	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	mentionHitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236"))

	statusLiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dropdownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	dropdownSelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Padding(0, 1)
)

// SendMsg asks the parent model to persist one outgoing message.
type SendMsg struct {
	Message forum.Message
}

type KeyMap struct {
	Send   key.Binding
	Cancel key.Binding
	Up     key.Binding
	Down   key.Binding
	Reply  key.Binding
	Accept key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/browse"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "reply"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete mention"),
		),
	}
}

// Model is the discussion board screen: the day-grouped feed, the composer
// with mention autocomplete, and the connection status line.
type Model struct {
	controller *feed.Controller
	keys       KeyMap

	input    textinput.Model
	viewport viewport.Model

	width  int
	height int

	// browse mode moves a cursor over messages to pick a reply target
	browse bool
	cursor int
	rows   []feed.Row

	candidates []string
	mentionSel int

	status     string // "Connecting", "Live", "Offline"
	sendFailed bool
	lastSent   string
}

func New(cfg feed.Config, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Message"
	ti.CharLimit = constants.MaxMessageLen
	ti.Focus()

	vp := viewport.New(width, height)

	return Model{
		controller: feed.NewController(cfg),
		keys:       DefaultKeyMap(),
		input:      ti,
		viewport:   vp,
		status:     "Connecting",
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := height - 5 // header, reply line, input, hint
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 4
	m.render()
}

func (m *Model) SetSelfName(name string) {
	m.controller.SetSelfName(name)
}

// Apply ingests one snapshot delivery and re-renders. hidden reports whether
// the board screen is currently off-screen.
func (m *Model) Apply(snap forum.Snapshot, hidden bool) *feed.Notification {
	if snap.Err != nil {
		m.status = "Offline"
		return nil
	}
	m.status = "Live"
	n := m.controller.Apply(snap, hidden)
	m.render()
	return n
}

func (m *Model) SetOffline() {
	m.status = "Offline"
}

// SendFailed restores the composer to its pre-send contents and flags the
// failure in the status line until cleared.
func (m *Model) SendFailed() {
	m.sendFailed = true
	if m.input.Value() == "" {
		m.input.SetValue(m.lastSent)
		m.input.CursorEnd()
	}
	m.render()
}

func (m *Model) ClearSendFailed() {
	m.sendFailed = false
}

// Composing reports whether the text input has focus. While composing the
// board consumes all keys, including tab, for mention completion.
func (m Model) Composing() bool {
	return !m.browse
}

// Replying reports whether a reply target is pinned under the compose line.
func (m Model) Replying() bool {
	return m.controller.Reply() != nil
}

// ClearReply drops the pinned reply target. Switching away from the board
// abandons an in-progress reply rather than letting it silently attach to
// the next message sent after coming back.
func (m *Model) ClearReply() {
	if m.controller.Reply() == nil {
		return
	}
	m.controller.ClearReply()
	m.render()
}

// Reset drops the feed state ahead of a fresh subscription.
func (m *Model) Reset() {
	m.controller.Reset()
	m.status = "Connecting"
	m.rows = nil
	m.cursor = 0
	m.render()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.browse {
		return m.updateBrowse(keyMsg)
	}
	return m.updateCompose(keyMsg)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	msgRows := m.messageRows()

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.browse = false
		m.input.Focus()
		m.render()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.render()
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(msgRows)-1 {
			m.cursor++
		}
		m.render()
	case key.Matches(msg, m.keys.Reply):
		if m.cursor < len(msgRows) {
			m.controller.SetReply(msgRows[m.cursor])
		}
		m.browse = false
		m.input.Focus()
		m.render()
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updateCompose(msg tea.KeyMsg) (Model, tea.Cmd) {
	dropdownOpen := len(m.candidates) > 0

	switch {
	case key.Matches(msg, m.keys.Cancel):
		switch {
		case dropdownOpen:
			m.candidates = nil
		case m.controller.Reply() != nil:
			m.controller.ClearReply()
		default:
			m.browse = true
			m.cursor = 0
			m.input.Blur()
		}
		m.render()
		return m, nil

	case key.Matches(msg, m.keys.Up) && dropdownOpen:
		if m.mentionSel > 0 {
			m.mentionSel--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down) && dropdownOpen:
		if m.mentionSel < len(m.candidates)-1 {
			m.mentionSel++
		}
		return m, nil

	case key.Matches(msg, m.keys.Accept) && dropdownOpen:
		m.completeMention()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if dropdownOpen {
			m.completeMention()
			return m, nil
		}
		out, ok := m.controller.BuildOutgoing(m.input.Value(), time.Now())
		if !ok {
			return m, nil
		}
		m.lastSent = m.input.Value()
		m.input.SetValue("")
		m.sendFailed = false
		m.render()
		return m, func() tea.Msg { return SendMsg{Message: out} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refreshCandidates()
	return m, cmd
}

func (m *Model) completeMention() {
	if m.mentionSel >= len(m.candidates) {
		return
	}
	text, caret := feed.Complete(m.input.Value(), m.input.Position(), m.candidates[m.mentionSel])
	m.input.SetValue(text)
	m.input.SetCursor(caret)
	m.candidates = nil
	m.mentionSel = 0
}

func (m *Model) refreshCandidates() {
	query, _, ok := feed.QueryAt(m.input.Value(), m.input.Position())
	if !ok {
		m.candidates = nil
		m.mentionSel = 0
		return
	}
	m.candidates = feed.Candidates(m.controller.Members(), query)
	if m.mentionSel >= len(m.candidates) {
		m.mentionSel = 0
	}
}

// messageRows returns just the message entries of the current layout,
// newest first, index-aligned with the browse cursor.
func (m Model) messageRows() []forum.Message {
	var out []forum.Message
	for _, row := range m.rows {
		if !row.Separator {
			out = append(out, row.Message)
		}
	}
	return out
}

func (m *Model) render() {
	m.rows = m.controller.Rows(time.Now())

	self := strings.ToLower(strings.ReplaceAll(m.controller.SelfName(), " ", ""))

	var b strings.Builder
	msgIdx := 0
	for _, row := range m.rows {
		if row.Separator {
			b.WriteString(separatorStyle.Render("── "+row.Label+" ──") + "\n")
			continue
		}

		line := m.renderMessage(row.Message, self)
		if m.browse && msgIdx == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
		msgIdx++
	}

	if len(m.rows) == 0 {
		b.WriteString(separatorStyle.Render("No messages yet. Say hello!"))
	}

	m.viewport.SetContent(b.String())
	if m.browse {
		// Keep the selection visible; 3 rendered lines per message is the
		// common case.
		m.viewport.SetYOffset(m.cursor * 3)
	} else {
		m.viewport.GotoTop()
	}
}

func (m Model) renderMessage(msg forum.Message, self string) string {
	ts := time.UnixMilli(msg.CreatedAtMs).Format("15:04")
	header := authorStyle.Render(msg.Name) + " " + timeStyle.Render(ts)
	if msg.Pending {
		header += " " + pendingStyle.Render("(sending)")
	}

	var b strings.Builder
	b.WriteString(header + "\n")
	if msg.ReplyTo != nil {
		b.WriteString(replyStyle.Render("  ↳ "+msg.ReplyTo.Name+": "+msg.ReplyTo.Text) + "\n")
	}

	text := "  " + msg.Text
	if self != "" && mentionsSelf(msg.Mentions, self) {
		text = mentionHitStyle.Render(text)
	}
	b.WriteString(text)
	return b.String()
}

func mentionsSelf(mentions []string, self string) bool {
	for _, handle := range mentions {
		if handle == self {
			return true
		}
	}
	return false
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewStatus() + "\n")
	b.WriteString(m.viewport.View() + "\n")

	if reply := m.controller.Reply(); reply != nil {
		b.WriteString(replyStyle.Render("Replying to "+reply.Name+": "+reply.Text) +
			timeStyle.Render("  (esc to cancel)") + "\n")
	}

	if len(m.candidates) > 0 {
		b.WriteString(m.viewDropdown() + "\n")
	}

	b.WriteString(m.input.View() + "\n")

	if m.browse {
		b.WriteString(timeStyle.Render("browse: ↑/↓ select, r reply, esc back"))
	} else {
		b.WriteString(timeStyle.Render("enter send, esc browse/cancel"))
	}

	return b.String()
}

func (m Model) viewStatus() string {
	var status string
	switch m.status {
	case "Live":
		status = statusLiveStyle.Render("● Live")
	case "Offline":
		status = statusDownStyle.Render("● Offline")
	default:
		status = timeStyle.Render("● Connecting")
	}

	if m.sendFailed {
		status += "  " + statusDownStyle.Render("Send failed")
	}

	scope := "Public board"
	if m.controller.Scope() != forum.PublicScope {
		scope = fmt.Sprintf("Room %s", m.controller.Scope())
	}

	return authorStyle.Render(scope) + "  " + status
}

func (m Model) viewDropdown() string {
	items := make([]string, len(m.candidates))
	for i, name := range m.candidates {
		if i == m.mentionSel {
			items[i] = dropdownSelStyle.Render(name)
		} else {
			items[i] = dropdownStyle.Render(name)
		}
	}
	return strings.Join(items, " ")
}
