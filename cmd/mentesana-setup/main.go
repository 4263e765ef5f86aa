package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"mentesana-server/confs"
	"mentesana-server/db"
)

const envFile = ".env"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepSelectingEngine step = iota
	stepEnteringLocation
	stepEnteringSecret
	stepEnteringPort
	stepInitializing
	stepComplete
)

var engines = []string{confs.EngineSQLite, confs.EnginePostgres}

// answers are the values collected by the wizard.
type answers struct {
	engine   string
	location string // SQLite file or Postgres URL
	secret   string
	port     string
}

// envMap turns the answers into the variables read by the server.
func (a answers) envMap() map[string]string {
	env := map[string]string{
		"DB_ENGINE":  a.engine,
		"JWT_SECRET": a.secret,
		"PORT":       a.port,
	}
	if env["JWT_SECRET"] == "" {
		env["JWT_SECRET"] = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if env["PORT"] == "" {
		env["PORT"] = "3000"
	}
	switch a.engine {
	case confs.EngineSQLite:
		env["SQLITE_PATH"] = a.location
		if env["SQLITE_PATH"] == "" {
			env["SQLITE_PATH"] = "database.db"
		}
	case confs.EnginePostgres:
		env["DB_URL"] = a.location
	}
	return env
}

type model struct {
	step         step
	cursor       int
	answers      answers
	currentInput string
	message      string
	quitting     bool
}

type initDoneMsg struct{ engine db.Engine }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{step: stepSelectingEngine}
}

func (m model) Init() tea.Cmd {
	return nil
}

// writeAndInit stores the .env file and creates the schema with it.
func writeAndInit(a answers) tea.Cmd {
	return func() tea.Msg {
		env := a.envMap()
		if err := godotenv.Write(env, envFile); err != nil {
			return errMsg{fmt.Errorf("write %s: %w", envFile, err)}
		}
		for k, v := range env {
			os.Setenv(k, v)
		}

		cfg, err := confs.Parse()
		if err != nil {
			return errMsg{err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		database, err := db.Connect(ctx, cfg)
		if err != nil {
			return errMsg{err}
		}
		defer database.Close()
		return initDoneMsg{engine: database.Engine()}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.step == stepSelectingEngine && m.cursor > 0 {
				m.cursor--
			} else if m.step != stepSelectingEngine {
				m.currentInput += msg.String()
			}

		case "down", "j":
			if m.step == stepSelectingEngine && m.cursor < len(engines)-1 {
				m.cursor++
			} else if m.step != stepSelectingEngine {
				m.currentInput += msg.String()
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "enter":
			switch m.step {
			case stepSelectingEngine:
				m.answers.engine = engines[m.cursor]
				m.step = stepEnteringLocation

			case stepEnteringLocation:
				if m.answers.engine == confs.EnginePostgres && m.currentInput == "" {
					m.message = errorStyle.Render("A connection URL is required")
					return m, nil
				}
				m.answers.location = m.currentInput
				m.currentInput = ""
				m.message = ""
				m.step = stepEnteringSecret

			case stepEnteringSecret:
				m.answers.secret = m.currentInput
				m.currentInput = ""
				m.step = stepEnteringPort

			case stepEnteringPort:
				m.answers.port = m.currentInput
				m.currentInput = ""
				m.step = stepInitializing
				m.message = "Writing " + envFile + " and creating tables..."
				return m, writeAndInit(m.answers)

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}

		default:
			if m.step == stepSelectingEngine && msg.String() == "q" {
				m.quitting = true
				return m, tea.Quit
			}
			if m.step >= stepEnteringLocation && m.step <= stepEnteringPort {
				m.currentInput += msg.String()
			}
		}

	case initDoneMsg:
		m.step = stepComplete
		m.message = successStyle.Render(fmt.Sprintf("✓ %s database ready, settings saved to %s", msg.engine, envFile))

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = stepSelectingEngine
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Mente Sana setup\n\n"))

	switch m.step {
	case stepSelectingEngine:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Select a database engine:\n\n"))
		for i, e := range engines {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(e)))
		}
		s.WriteString("\nUse ↑/↓, Enter to choose, q to quit\n")

	case stepEnteringLocation:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		if m.answers.engine == confs.EngineSQLite {
			s.WriteString(promptStyle.Render("Database file (empty for database.db):\n"))
		} else {
			s.WriteString(promptStyle.Render("Postgres connection URL:\n"))
		}
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringSecret:
		s.WriteString(promptStyle.Render("Token secret (empty to generate one):\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPort:
		s.WriteString(promptStyle.Render("HTTP port (empty for 3000):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepInitializing:
		s.WriteString(m.message + "\n")

	case stepComplete:
		s.WriteString(m.message + "\n")
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
