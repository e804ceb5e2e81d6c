package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Meow-nya-nya-nya/chat-game/pkg/chat"
	"github.com/Meow-nya-nya-nya/chat-game/pkg/game"
)

const PlaceHolderText = "Type a command... (help for a list)"

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	gameState    *game.GameState
	viewport     viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool
	lastResponse string
	notice       string
}

type commandResponseMsg struct {
	response *chat.CommandResponse
	err      error
}

type gameStateMsg struct {
	gameState *game.GameState
	err       error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	responseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, gs *game.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render("> ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	vp := viewport.New(50, 20)
	vp.MouseWheelEnabled = true

	return ConsoleUI{
		config:    cfg,
		client:    client,
		gameState: gs,
		textarea:  ta,
		viewport:  vp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = m.width - 4
		m.viewport.Height = m.height - 5
		m.textarea.SetWidth(m.width - 6)

		m.writeContent()
		if !m.ready {
			m.ready = true
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlY:
			if m.lastResponse != "" {
				if err := clipboard.WriteAll(m.lastResponse); err == nil {
					m.notice = "Last response copied to clipboard."
				} else {
					m.notice = "Clipboard unavailable."
				}
				m.writeContent()
			}
			return m, nil

		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.notice = ""

			m.gameState.History = append(m.gameState.History,
				game.HistoryEntry{Type: game.EntryCommand, Content: "> " + input})
			m.writeContent()

			return m, m.sendCommand(input)
		}

	case commandResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.gameState.History = append(m.gameState.History,
				game.HistoryEntry{Type: game.EntryResponse, Content: "Error: " + msg.err.Error()})
		} else {
			m.lastResponse = msg.response.Response
			m.gameState.History = append(m.gameState.History,
				game.HistoryEntry{Type: game.EntryResponse, Content: msg.response.Response})
			m.gameState.Location = msg.response.Location
		}
		m.writeContent()
		return m, m.refreshGameState()

	case gameStateMsg:
		if msg.err == nil && msg.gameState != nil {
			// Server-side history is authoritative; clear commands take
			// effect here.
			m.gameState = msg.gameState
			m.writeContent()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	var footer string
	if m.loading {
		footer = loadingStyle.Render("Thinking...")
	} else {
		footer = m.textarea.View()
	}

	header := titleStyle.Render("AI CHAT GAME") + "  " +
		promptStyle.Render(fmt.Sprintf("session %s", shortID(m.gameState)))

	return fmt.Sprintf("%s\n%s\n%s\n%s",
		header,
		m.viewport.View(),
		separatorStyle.Render(strings.Repeat("─", max(1, m.width-2))),
		footer)
}

func shortID(gs *game.GameState) string {
	id := gs.ID.String()
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// writeContent reformats the whole transcript for the current viewport width.
func (m *ConsoleUI) writeContent() {
	width := m.viewport.Width - 2
	if width < 10 {
		width = 10
	}

	var content strings.Builder
	for _, entry := range m.gameState.History {
		wrapped := wordwrap.String(entry.Content, width)
		switch entry.Type {
		case game.EntryCommand:
			content.WriteString(commandStyle.Render(wrapped) + "\n")
		case game.EntrySystem:
			content.WriteString(responseStyle.Render(wrapped) + "\n\n")
		default:
			content.WriteString(responseStyle.Render(wrapped) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(loadingStyle.Render("...") + "\n")
	}
	if m.notice != "" {
		content.WriteString(errorStyle.Render(m.notice) + "\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m ConsoleUI) sendCommand(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendCommand(m.client, m.config.APIBaseURL, m.gameState.ID, input)
		return commandResponseMsg{response: resp, err: err}
	}
}

func (m ConsoleUI) refreshGameState() tea.Cmd {
	return func() tea.Msg {
		gs, err := getGameState(m.client, m.config.APIBaseURL, m.gameState.ID)
		return gameStateMsg{gameState: gs, err: err}
	}
}
