// Package tui is the Bubble Tea front end for a seat at a remote table: a
// table pane, a scrolling event log and a command line.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pokerrooms/internal/client"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/server"
)

const (
	logPane = iota
	inputPane
)

// Lines kept in the event log
const maxLogLines = 500

// serverMsg carries one message from the connection into Update
type serverMsg struct {
	msg *server.Message
}

// disconnectedMsg reports that the connection's message stream ended
type disconnectedMsg struct{}

// Model is the Bubble Tea model for one player's view of a room
type Model struct {
	conn    Conn
	session Session
	logger  *log.Logger

	logViewport viewport.Model
	input       textinput.Model
	focusedPane int

	gameLog  []string
	state    *game.Snapshot
	quitting bool

	width  int
	height int
}

// NewModel creates the model. The caller is expected to have asked to join
// session.Room already; the table pane fills in once the server answers.
func NewModel(conn Conn, session Session, logger *log.Logger) *Model {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))

	m := &Model{
		conn:        conn,
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		focusedPane: inputPane,
	}
	m.addLog(headerStyle.Render(" Texas Hold'em "))
	m.addLog(helpText)
	return m
}

// Init starts the cursor blinking and the server listener
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// listen waits for the next server message
func (m *Model) listen() tea.Cmd {
	messages := m.conn.Messages()
	return func() tea.Msg {
		msg, ok := <-messages
		if !ok {
			return disconnectedMsg{}
		}
		return serverMsg{msg: msg}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case serverMsg:
		m.handleServerMessage(msg.msg)
		cmds = append(cmds, m.listen())

	case disconnectedMsg:
		m.addLog(errorStyle.Render("Disconnected from server"))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == logPane {
				m.focusedPane = inputPane
				m.input.Focus()
			} else {
				m.focusedPane = logPane
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == inputPane {
				line := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				if m.submit(line) {
					m.quitting = true
					return m, tea.Quit
				}
			}
		case "home":
			if m.focusedPane == logPane {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == logPane {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == inputPane {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.logViewport, cmd = m.logViewport.Update(msg)
	}
	cmds = append(cmds, cmd)

	m.layout()
	return m, tea.Batch(cmds...)
}

// submit runs one command line and reports whether the user asked to quit
func (m *Model) submit(line string) bool {
	if line == "" {
		return false
	}

	cmd, err := parseCommand(line, m.session)
	if err != nil {
		m.addLog(errorStyle.Render(err.Error()))
		return false
	}

	switch cmd.name {
	case "quit":
		return true
	case "help":
		m.addLog(helpText)
		return false
	}

	m.logger.Debug("Sending command", "command", cmd.name)
	if err := cmd.run(m.conn); err != nil {
		m.logger.Warn("Command failed", "command", cmd.name, "error", err)
		m.addLog(errorStyle.Render(err.Error()))
	}
	return false
}

func (m *Model) handleServerMessage(msg *server.Message) {
	m.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case server.MessageTypeJoinedRoom:
		if d, err := client.Decode[server.JoinedRoomData](msg); err == nil {
			m.session.Room = d.RoomID
			m.state = &d.State
		}
	case server.MessageTypeUpdateGame:
		if s, err := client.Decode[game.Snapshot](msg); err == nil {
			m.state = &s
		}
	case server.MessageTypePlayerLeft:
		if d, err := client.Decode[server.PlayerLeftData](msg); err == nil && d.PlayerID == m.conn.PlayerID() {
			m.state = nil
		}
	}

	if line := describe(msg, m.conn.PlayerID()); line != "" {
		m.addLog(line)
	}
}

// addLog appends lines to the event log and follows the tail
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, strings.Split(entry, "\n")...)
	if over := len(m.gameLog) - maxLogLines; over > 0 {
		m.gameLog = m.gameLog[over:]
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

func (m *Model) myTurn() bool {
	if m.state == nil {
		return false
	}
	p, ok := m.state.CurrentPlayer()
	return ok && p.ID == m.conn.PlayerID()
}

// layout sizes the log viewport to whatever the table and input panes leave
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	if m.myTurn() {
		m.input.Placeholder = "fold, check, call, raise 40, allin"
	} else {
		m.input.Placeholder = "start, bot, help, quit"
	}

	tableHeight := lipgloss.Height(m.renderTable()) + 2
	inputHeight := lipgloss.Height(m.renderInput()) + 2

	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = max(m.height-tableHeight-inputHeight-2, 1)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	width := max(m.width-2, 1)
	logStyle, inputStyle := paneStyle, focusedPaneStyle
	if m.focusedPane == logPane {
		logStyle, inputStyle = focusedPaneStyle, paneStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		paneStyle.Width(width).Render(m.renderTable()),
		logStyle.Width(width).Render(m.logViewport.View()),
		inputStyle.Width(width).Render(m.renderInput()),
	)
}

func (m *Model) renderTable() string {
	if m.state == nil {
		return infoStyle.Render("Not seated. Type join to take a seat.")
	}
	return strings.TrimRight(formatTable(*m.state, m.conn.PlayerID()), "\n")
}

func (m *Model) renderInput() string {
	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == logPane {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn page, Home/End, Tab to input"
	}
	return m.input.View() + "\n" + infoStyle.Render(help)
}
