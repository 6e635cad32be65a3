package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/layout"
	"github.com/muurk/macropad/internal/router"
)

// Submitter queues a button activation. *engine.Dispatcher implements it.
type Submitter interface {
	Submit(b layout.Button) error
}

// Loader reloads the layout; it returns the layout and the path it came
// from.
type Loader func() (*layout.Layout, string, error)

// Messages
type pageChangedMsg struct{}
type exitMsg struct{}
type layoutLoadedMsg struct {
	path string
	err  error
}

// keyMap defines key bindings for the runtime screen
type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	Activate key.Binding
	Direct   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Direct, k.NextPage, k.PrevPage, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Activate, k.Direct},
		{k.NextPage, k.PrevPage, k.Reload},
		{k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Direct: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "press nth"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab", "pgdown", "n"),
			key.WithHelp("tab/n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "pgup", "p"),
			key.WithHelp("shift+tab/p", "prev page"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// AppModel is the runtime host: it shows the active page and turns key
// presses into button activations.
type AppModel struct {
	router *router.Router
	submit Submitter
	load   Loader
	watch  *watcher

	Snapshot *router.Snapshot
	Cursor   int
	Status   string
	Err      error
	Exited   bool

	// UI state
	Width  int
	Height int
	Help   help.Model
	Keys   keyMap
}

// NewAppModel creates the runtime model. load may be nil to disable reload.
// Close must be called once the program has finished.
func NewAppModel(r *router.Router, submit Submitter, load Loader) AppModel {
	return AppModel{
		router:   r,
		submit:   submit,
		load:     load,
		watch:    newWatcher(r),
		Snapshot: r.Current(),
		Help:     help.New(),
		Keys:     newKeyMap(),
	}
}

// Close detaches the model from the router.
func (m AppModel) Close() {
	m.watch.stop()
}

// Init starts listening for router notifications
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.watch.nextChange, m.watch.nextExit)
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case pageChangedMsg:
		prev := m.Snapshot
		m.Snapshot = m.router.Current()
		if prev == nil || prev.Layout != m.Snapshot.Layout || prev.Index != m.Snapshot.Index {
			m.Cursor = 0
		}
		return m, m.watch.nextChange

	case exitMsg:
		m.Exited = true
		return m, tea.Quit

	case layoutLoadedMsg:
		if msg.err != nil {
			m.Err = msg.err
			m.Status = ""
		} else {
			m.Err = nil
			m.Status = "reloaded " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.buttonCount()

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll

	case key.Matches(msg, m.Keys.Left):
		if m.Cursor > 0 {
			m.Cursor--
		}

	case key.Matches(msg, m.Keys.Right):
		if m.Cursor < count-1 {
			m.Cursor++
		}

	case key.Matches(msg, m.Keys.Up):
		if m.Cursor-m.columns() >= 0 {
			m.Cursor -= m.columns()
		}

	case key.Matches(msg, m.Keys.Down):
		if m.Cursor+m.columns() < count {
			m.Cursor += m.columns()
		}

	case key.Matches(msg, m.Keys.Activate):
		m = m.activate(m.Cursor)

	case key.Matches(msg, m.Keys.Direct) && len(msg.Runes) == 1:
		n := int(msg.Runes[0] - '0')
		if n == 0 {
			n = 10
		}
		m = m.activate(n - 1)

	case key.Matches(msg, m.Keys.NextPage):
		m = m.command(action.CommandNextPage)

	case key.Matches(msg, m.Keys.PrevPage):
		m = m.command(action.CommandPreviousPage)

	case key.Matches(msg, m.Keys.Reload):
		if m.load == nil {
			m.Status = "reload unavailable"
			return m, nil
		}
		m.Status = "reloading..."
		return m, m.reload()
	}
	return m, nil
}

// activate queues button i of the active page.
func (m AppModel) activate(i int) AppModel {
	if m.Snapshot == nil || m.Snapshot.Page == nil || i < 0 || i >= len(m.Snapshot.Page.Buttons) {
		return m
	}
	m.Cursor = i
	b := m.Snapshot.Page.Buttons[i]
	if err := m.submit.Submit(b); err != nil {
		m.Err = err
		m.Status = ""
		return m
	}
	m.Err = nil
	m.Status = fmt.Sprintf("%s %s", b.Text, action.Describe(action.Parse(b)))
	return m
}

// command queues a router command through the same path as a button.
func (m AppModel) command(value string) AppModel {
	b := layout.Button{Text: value, Action: layout.ActionRunCommand, Value: value}
	if err := m.submit.Submit(b); err != nil {
		m.Err = err
	}
	return m
}

// reload runs the loader off the UI goroutine and installs the result.
func (m AppModel) reload() tea.Cmd {
	load, r := m.load, m.router
	return func() tea.Msg {
		l, path, err := load()
		if err != nil {
			return layoutLoadedMsg{err: err}
		}
		r.SetActiveLayout(l)
		return layoutLoadedMsg{path: path}
	}
}

func (m AppModel) buttonCount() int {
	if m.Snapshot == nil || m.Snapshot.Page == nil {
		return 0
	}
	return len(m.Snapshot.Page.Buttons)
}

// columns is the number of tiles per row at the current width.
func (m AppModel) columns() int {
	width := m.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	n := (width - 6) / TileWidth
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the active page
func (m AppModel) View() string {
	if m.Exited {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.renderTiles())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())

	name := ""
	if m.Snapshot != nil && m.Snapshot.Layout != nil {
		name = m.Snapshot.Layout.Name
	}
	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), name, m.Width, m.Height)
}

func (m AppModel) renderTabs() string {
	if m.Snapshot == nil || m.Snapshot.PageCount() == 0 {
		return WarningStyle.Render("⚠ layout has no pages")
	}
	tabs := make([]string, 0, m.Snapshot.PageCount())
	for i, p := range m.Snapshot.Layout.Pages {
		label := fmt.Sprintf("%d %s", i+1, p.Name)
		if i == m.Snapshot.Index {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) renderTiles() string {
	if m.buttonCount() == 0 {
		return SubtitleStyle.Render("(no buttons on this page)") + "\n"
	}

	cols := m.columns()
	var rows []string
	var row []string
	for i, btn := range m.Snapshot.Page.Buttons {
		row = append(row, tileStyle(btn.Color, btn.TextColor, btn.IsBold, i == m.Cursor).Render(btn.Text))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m AppModel) renderDetail() string {
	var lines []string
	if m.Cursor < m.buttonCount() {
		btn := m.Snapshot.Page.Buttons[m.Cursor]
		lines = append(lines, TitleStyle.Render(fmt.Sprintf("%d. %s", m.Cursor+1, btn.Text))+
			"  "+SubtitleStyle.Render(action.Describe(action.Parse(btn))))
	}
	switch {
	case m.Err != nil:
		lines = append(lines, ErrorStatusStyle.Render("✗ "+m.Err.Error()))
	case m.Status != "":
		lines = append(lines, StatusStyle.Render("✓ "+m.Status))
	}
	return strings.Join(lines, "\n")
}
