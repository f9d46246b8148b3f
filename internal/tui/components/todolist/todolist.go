package todolist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ChangedMsg carries the full to-do slice after any mutation so the parent
// can persist it.
type ChangedMsg struct {
	Todos []string
}

type Item struct {
	Text string
}

func (i Item) Title() string       { return i.Text }
func (i Item) Description() string { return "" }
func (i Item) FilterValue() string { return i.Text }

type KeyMap struct {
	Add    key.Binding
	Delete key.Binding
	Cancel key.Binding
	Accept key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
	}
}

type Model struct {
	list   list.Model
	input  textinput.Model
	keys   KeyMap
	adding bool
}

func New(todos []string, width, height int) Model {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = Item{Text: t}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	l := list.New(items, delegate, width, height)
	l.Title = "To-Do"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	ti := textinput.New()
	ti.Placeholder = "New task"
	ti.CharLimit = 200

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Delete}
	}

	return Model{list: l, input: ti, keys: keys}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Todos() []string {
	items := m.list.Items()
	todos := make([]string, len(items))
	for i, it := range items {
		todos[i] = it.(Item).Text
	}
	return todos
}

func (m *Model) SetTodos(todos []string) {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = Item{Text: t}
	}
	m.list.SetItems(items)
}

// Adding reports whether the inline add input currently has focus, so the
// parent can route keys here instead of acting on globals.
func (m Model) Adding() bool { return m.adding }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.adding {
		if isKey {
			switch {
			case key.Matches(keyMsg, m.keys.Cancel):
				m.adding = false
				m.input.SetValue("")
				m.input.Blur()
				return m, nil
			case key.Matches(keyMsg, m.keys.Accept):
				text := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.SetValue("")
				m.input.Blur()
				if text == "" {
					return m, nil
				}
				items := append(m.list.Items(), Item{Text: text})
				m.list.SetItems(items)
				todos := m.Todos()
				return m, func() tea.Msg { return ChangedMsg{Todos: todos} }
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if isKey && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(keyMsg, m.keys.Add):
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(keyMsg, m.keys.Delete):
			idx := m.list.Index()
			items := m.list.Items()
			if idx >= 0 && idx < len(items) {
				m.list.RemoveItem(idx)
				todos := m.Todos()
				return m, func() tea.Msg { return ChangedMsg{Todos: todos} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.adding {
		return m.input.View() + "\n\n" + m.list.View()
	}
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing to do yet.\n  Press 'a' to add a task."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
	m.input.Width = width - 4
}
