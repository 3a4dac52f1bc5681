package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusMsg carries one monitor poll observation into the view.
type StatusMsg struct {
	Running []string
	Elapsed time.Duration
}

// DoneMsg ends the view when the match reaches a terminal state.
type DoneMsg struct {
	Err error
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	unitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// progressModel is the bubbletea model for the match progress view.
type progressModel struct {
	game    string
	spinner spinner.Model
	running []string
	elapsed time.Duration
	done    bool
	aborted bool
	err     error
}

func newProgressModel(game string) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return progressModel{
		game:    game,
		spinner: s,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		}

	case StatusMsg:
		m.running = msg.Running
		m.elapsed = msg.Elapsed
		return m, nil

	case DoneMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Match " + m.game))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %d units running | %s elapsed\n",
		m.spinner.View(), len(m.running), m.elapsed.Round(time.Second)))

	for _, unit := range m.running {
		sb.WriteString(unitStyle.Render("  " + unit))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render("[ctrl+c] Abort"))

	return sb.String()
}

// Progress is a live match progress view driven by monitor polls.
type Progress struct {
	program *tea.Program
}

// NewProgress creates a progress view for the named match.
func NewProgress(game string) *Progress {
	return &Progress{
		program: tea.NewProgram(newProgressModel(game)),
	}
}

// StatusFunc adapts the view to the monitor's status callback. The
// callback is safe to invoke from the monitoring goroutine.
func (p *Progress) StatusFunc() func(running []string, elapsed time.Duration) {
	return func(running []string, elapsed time.Duration) {
		p.program.Send(StatusMsg{
			Running: append([]string(nil), running...),
			Elapsed: elapsed,
		})
	}
}

// Done ends the view.
func (p *Progress) Done(err error) {
	p.program.Send(DoneMsg{Err: err})
}

// Run blocks until the view ends and reports whether the user aborted.
func (p *Progress) Run() (aborted bool, err error) {
	final, err := p.program.Run()
	if err != nil {
		return false, err
	}
	return final.(progressModel).aborted, nil
}
