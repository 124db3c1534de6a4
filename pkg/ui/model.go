package ui

import (
	"fmt"
	"os"
	"strings"

	"amdchat/pkg/chat"
	"amdchat/pkg/commands"
	"amdchat/pkg/format"
	"amdchat/pkg/ui/styles"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

const (
	windowTitle    = "Chat with AMD Support"
	footerLabel    = "Enter Send | PgUp/PgDn Scroll | /help for commands"
	inputHeight    = 3
	chromeHeight   = 4 // title + separator + footer + status bar
	scrollPageSize = 10
)

// sessionEventMsg carries one session event onto the UI goroutine.
type sessionEventMsg struct {
	event chat.Event
}

// sessionClosedMsg is sent once the session's event channel is closed.
type sessionClosedMsg struct{}

// Model is the bubbletea chat window.
type Model struct {
	session    *chat.Session
	display    *chat.DisplayLog
	transcript *TranscriptView
	input      textarea.Model
	dispatcher *commands.Dispatcher

	statusBar *StatusBarView
	lastReply string

	// clipboard receives OSC52 sequences; nil means stdout
	clipboard func(string)

	width  int
	height int
	ready  bool
}

// NewModel creates the chat window over session. model is shown in the status bar.
func NewModel(session *chat.Session, display *chat.DisplayLog, model string) *Model {
	input := textarea.New()
	input.Placeholder = "Type your message..."
	input.ShowLineNumbers = false
	input.SetHeight(inputHeight)
	input.Focus()

	statusBar := NewStatusBarView()
	statusBar.SetStatus(chat.StatusReady, false)
	statusBar.SetModel(model)

	return &Model{
		session:    session,
		display:    display,
		transcript: NewTranscriptView(),
		input:      input,
		dispatcher: commands.NewDispatcher(),
		statusBar:  statusBar,
	}
}

// Init starts listening for session events.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.session.Events())
}

// waitForEvent blocks on the session channel and hands the next event to
// Update, which re-arms it. This is the only path from the exchange
// goroutine to UI state.
func waitForEvent(events <-chan chat.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return sessionClosedMsg{}
		}
		return sessionEventMsg{event: ev}
	}
}

// Update handles messages and updates model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case sessionEventMsg:
		chat.Deliver(msg.event, m)
		return m, waitForEvent(m.session.Events())

	case sessionClosedMsg:
		return m, nil

	case tea.PasteMsg:
		m.input.InsertString(msg.Content)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		return m, tea.Quit
	case "enter":
		return m, m.submit()
	case "pgup":
		m.transcript.ScrollUp(scrollPageSize)
		return m, nil
	case "pgdown":
		m.transcript.ScrollDown(scrollPageSize)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}

	if unescaped, ok := commands.Unescape(text); ok {
		text = unescaped
	} else if m.dispatcher.IsCommand(text) {
		m.input.Reset()
		return m.runCommand(text)
	}

	if err := m.session.Submit(text); err != nil {
		// The input is kept so the user can retry once the reply arrives.
		m.info(err.Error())
		return nil
	}

	m.input.Reset()
	m.appendLine(lineUser, chat.UserPrefix+text)
	return nil
}

// OnAssistantReply renders a reply delivered by the session.
func (m *Model) OnAssistantReply(html string) {
	text := format.PlainText(html)
	m.lastReply = text
	m.appendLine(lineAssistant, chat.AssistantPrefix+text)
}

// OnStatusChanged updates the status bar.
func (m *Model) OnStatusChanged(status string) {
	m.statusBar.SetStatus(status, status == chat.StatusFailed)
}

// OnError shows a failed send.
func (m *Model) OnError(message string) {
	m.appendLine(lineError, chat.ErrorPrefix+message)
}

func (m *Model) appendLine(kind lineKind, line string) {
	m.display.Append(line)
	m.transcript.add(kind, line)
}

func (m *Model) info(text string) {
	// Command feedback is shown but not exported.
	m.transcript.add(lineInfo, text)
}

func (m *Model) copyToClipboard(text string) tea.Cmd {
	write := m.clipboard
	if write == nil {
		write = func(seq string) { _, _ = fmt.Fprint(os.Stdout, seq) }
	}
	return func() tea.Msg {
		write(osc52.New(text).String())
		return nil
	}
}

func (m *Model) resize() {
	width := m.width
	if width < 1 {
		width = 1
	}
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)

	transcriptHeight := m.height - inputHeight - chromeHeight
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}
	m.transcript.SetSize(width, transcriptHeight)
}

// View renders the window.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	if !m.ready {
		return "Loading..."
	}

	width := m.width
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(truncateToWidth(windowTitle, width)),
		m.transcript.View(),
		styles.SeparatorStyle.Render(strings.Repeat("─", width)),
		m.input.View(),
		styles.FooterStyle.Render(truncateToWidth(footerLabel, width)),
		m.statusBar.Render(),
	)
}
