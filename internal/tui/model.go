// Package tui implements the interactive confirmation screen for live
// runs, using Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/reapkit/git-reap/internal/gitcmd"
	"github.com/reapkit/git-reap/internal/types"
)

var (
	docStyle        = lipgloss.NewStyle().Margin(1, 2)
	headingStyle    = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	confirmStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	spinnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	branchMetaStyle = lipgloss.NewStyle().Faint(true)
)

// ViewState tracks which screen the TUI is showing.
type ViewState int

const (
	// StateSelecting lets the user toggle which deletable branches to remove.
	StateSelecting ViewState = iota
	// StateConfirming asks for a final yes/no.
	StateConfirming
	// StateDeleting shows a spinner while deletions run.
	StateDeleting
	// StateResults shows per-branch outcomes.
	StateResults
)

// outcomesMsg carries deletion outcomes back into the update loop.
type outcomesMsg struct {
	outcomes []types.DeleteOutcome
}

// Model is the Bubble Tea model for the confirmation screen. Only
// branches the scan already classified as deletable are offered; the
// TUI can narrow that set but never widen it.
type Model struct {
	Ctx       context.Context
	Branches  []types.BranchRecord
	Selected  map[int]bool
	Cursor    int
	ViewState ViewState
	Outcomes  []types.DeleteOutcome
	Quit      bool // user backed out without deleting
	Spinner   spinner.Model
}

// InitialModel builds the starting model with every deletable branch
// pre-selected.
func InitialModel(ctx context.Context, deletable []types.BranchRecord) Model {
	s := spinner.New()
	s.Style = spinnerStyle
	s.Spinner = spinner.Dot

	selected := make(map[int]bool, len(deletable))
	for i := range deletable {
		selected[i] = true
	}

	return Model{
		Ctx:       ctx,
		Branches:  deletable,
		Selected:  selected,
		ViewState: StateSelecting,
		Spinner:   s,
	}
}

// Init starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

// SelectedNames returns the currently selected branch names in display order.
func (m Model) SelectedNames() []string {
	names := make([]string, 0, len(m.Branches))
	for i, branch := range m.Branches {
		if m.Selected[i] {
			names = append(names, branch.Name)
		}
	}
	return names
}

func performDeleteCmd(ctx context.Context, names []string) tea.Cmd {
	return func() tea.Msg {
		return outcomesMsg{outcomes: gitcmd.DeleteBranches(ctx, names, false)}
	}
}

// Update handles messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case outcomesMsg:
		m.Outcomes = msg.outcomes
		m.ViewState = StateResults
		return m, nil

	case spinner.TickMsg:
		if m.ViewState == StateDeleting {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.Quit = true
			return m, tea.Quit
		}
		switch m.ViewState {
		case StateSelecting:
			return m.updateSelecting(msg)
		case StateConfirming:
			return m.updateConfirming(msg)
		case StateDeleting:
			return m, nil // no input while deleting
		case StateResults:
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) updateSelecting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.Quit = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Branches)-1 {
			m.Cursor++
		}
	case " ":
		m.Selected[m.Cursor] = !m.Selected[m.Cursor]
	case "a":
		for i := range m.Branches {
			m.Selected[i] = true
		}
	case "n":
		for i := range m.Branches {
			m.Selected[i] = false
		}
	case "enter":
		if len(m.SelectedNames()) == 0 {
			m.Quit = true
			return m, tea.Quit
		}
		m.ViewState = StateConfirming
	}
	return m, nil
}

func (m Model) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.ViewState = StateDeleting
		return m, tea.Batch(m.Spinner.Tick, performDeleteCmd(m.Ctx, m.SelectedNames()))
	case "n", "N", "q", "esc":
		m.ViewState = StateSelecting
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder

	switch m.ViewState {
	case StateSelecting:
		b.WriteString(headingStyle.Render("Stale merged branches"))
		b.WriteString("\n")
		for i, branch := range m.Branches {
			cursor := "  "
			if m.Cursor == i {
				cursor = cursorStyle.Render("> ")
			}
			checkbox := "[ ]"
			line := fmt.Sprintf("%s %s", checkbox, branch.Name)
			if m.Selected[i] {
				checkbox = "[x]"
				line = selectedStyle.Render(fmt.Sprintf("%s %s", checkbox, branch.Name))
			}
			meta := branchMetaStyle.Render(
				fmt.Sprintf("  %s, %d days old", branch.CommitID, branch.AgeDays))
			b.WriteString(cursor + line + meta + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(
			"space: toggle • a: all • n: none • enter: continue • q: quit without deleting"))

	case StateConfirming:
		names := m.SelectedNames()
		b.WriteString(confirmStyle.Render(
			fmt.Sprintf("Force-delete %d branch(es)?", len(names))))
		b.WriteString("\n\n")
		for _, name := range names {
			b.WriteString("  - " + name + "\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("y: delete • n: back"))

	case StateDeleting:
		b.WriteString(m.Spinner.View())
		b.WriteString(" Deleting branches...")

	case StateResults:
		b.WriteString(headingStyle.Render("Results"))
		b.WriteString("\n")
		for _, outcome := range m.Outcomes {
			if outcome.Success {
				b.WriteString(successStyle.Render("  ✓ "+outcome.BranchName) + "\n")
			} else {
				b.WriteString(errorStyle.Render(
					fmt.Sprintf("  ✗ %s: %s", outcome.BranchName, outcome.Message)) + "\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press any key to exit"))
	}

	return docStyle.Render(b.String())
}
