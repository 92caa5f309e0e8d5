package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/syncux/toolkit"
	"github.com/drake/syncux/ui/style"
)

const (
	frameChrome  = 8  // Border plus horizontal padding
	verticalRest = 12 // Header, buttons, status and help lines
)

// Model is the Bubble Tea model of the simulated device screen.
type Model struct {
	styles   style.Styles
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	spinner  spinner.Model

	view   screenView
	tune   string
	notice string

	width    int
	height   int
	gestures chan<- gesture
	quitting bool
}

// NewModel creates a model that reports user gestures on gestures.
func NewModel(gestures chan<- gesture) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		styles:   style.DefaultStyles(),
		keys:     defaultKeys(),
		help:     help.New(),
		viewport: viewport.New(60, 12),
		spinner:  sp,
		gestures: gestures,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-frameChrome, 20)
		m.viewport.Height = max(msg.Height-verticalRest, 3)
		m.help.Width = msg.Width
		m.render()
		return m, nil

	case ScreenMsg:
		m.view = screenView(msg)
		m.notice = ""
		m.render()
		m.viewport.GotoTop()
		return m, nil

	case refreshMsg:
		m.render()
		return m, nil

	case TuneMsg:
		m.tune = string(msg)
		return m, nil

	case copiedMsg:
		if msg.Err != nil {
			m.notice = "copy failed: " + msg.Err.Error()
		} else {
			m.notice = "address copied"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Exit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.view.Kind {
	case viewHome:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.emit(toolkit.Quit)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			idx := toggleIndex(msg.String())
			if idx < len(m.view.Switches) {
				m.view.Switches[idx].On = !m.view.Switches[idx].On
				m.render()
				m.emit(toolkit.Toggle(idx))
			}
			return m, nil
		}

	case viewDecision, viewAddress:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.emit(toolkit.Confirm)
			return m, nil
		case key.Matches(msg, m.keys.Reject):
			m.emit(toolkit.Reject)
			return m, nil
		case m.view.Kind == viewAddress && key.Matches(msg, m.keys.Copy):
			return m, copyAddress(m.view.Address)
		}

	case viewBanner:
		if key.Matches(msg, m.keys.Confirm) || key.Matches(msg, m.keys.Reject) {
			m.emit(toolkit.Dismiss)
			return m, nil
		}
	}

	// Anything else scrolls
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// emit hands a gesture to the toolkit without ever blocking the UI.
func (m Model) emit(r toolkit.Response) {
	select {
	case m.gestures <- gesture{Gen: m.view.Gen, Response: r}:
	default:
	}
}

func (m *Model) render() {
	m.viewport.SetContent(renderBody(m.view, m.styles, m.viewport.Width))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.view.Kind {
	case viewNone:
		body = m.styles.Muted.Render("starting…")
	case viewSpinner:
		body = m.spinner.View() + " " + m.view.Title
	default:
		body = m.viewport.View()
	}

	parts := []string{}
	if m.view.Header != "" {
		parts = append(parts, m.styles.Header.Render(m.view.Header), "")
	}
	parts = append(parts, body)
	if buttons := renderButtons(m.view, m.styles); buttons != "" {
		parts = append(parts, "", buttons)
	}
	frame := m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))

	var status []string
	if m.tune != "" {
		status = append(status, "♪ "+m.tune)
	}
	if m.notice != "" {
		status = append(status, m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		frame,
		m.styles.StatusBar.Render(strings.Join(status, "  ")),
		m.help.View(screenKeys{keyMap: m.keys, kind: m.view.Kind}),
	)
}

func toggleIndex(k string) int {
	if k == "0" {
		return 9
	}
	return int(k[0] - '1')
}

func copyAddress(addr string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{Err: clipboard.WriteAll(addr)}
	}
}
