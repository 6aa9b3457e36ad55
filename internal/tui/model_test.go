package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/reapkit/git-reap/internal/types"
)

func deletableFixture() []types.BranchRecord {
	return []types.BranchRecord{
		{Name: "feature-x", CommitID: "abc1234", IsMerged: true, AgeDays: 40},
		{Name: "old-hotfix", CommitID: "def5678", IsMerged: true, AgeDays: 31},
	}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialModel_AllPreSelected(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	if m.ViewState != StateSelecting {
		t.Errorf("Expected StateSelecting, got %v", m.ViewState)
	}
	names := m.SelectedNames()
	if len(names) != 2 {
		t.Errorf("Expected every branch pre-selected, got %v", names)
	}
}

func TestUpdate_ToggleSelection(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	updated, _ := m.Update(keyMsg(" "))
	m = updated.(Model)

	names := m.SelectedNames()
	if len(names) != 1 || names[0] != "old-hotfix" {
		t.Errorf("Expected only old-hotfix selected after toggle, got %v", names)
	}

	// "a" reselects everything, "n" clears.
	updated, _ = m.Update(keyMsg("a"))
	m = updated.(Model)
	if len(m.SelectedNames()) != 2 {
		t.Errorf("Expected all selected after 'a', got %v", m.SelectedNames())
	}
	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	if len(m.SelectedNames()) != 0 {
		t.Errorf("Expected none selected after 'n', got %v", m.SelectedNames())
	}
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	updated, _ := m.Update(keyMsg("j"))
	m = updated.(Model)
	if m.Cursor != 1 {
		t.Errorf("Expected cursor 1 after down, got %d", m.Cursor)
	}
	// Clamped at the end of the list.
	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	if m.Cursor != 1 {
		t.Errorf("Expected cursor clamped at 1, got %d", m.Cursor)
	}
	updated, _ = m.Update(keyMsg("k"))
	m = updated.(Model)
	if m.Cursor != 0 {
		t.Errorf("Expected cursor 0 after up, got %d", m.Cursor)
	}
}

func TestUpdate_EnterMovesToConfirm(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	updated, _ := m.Update(keyMsg("enter"))
	m = updated.(Model)
	if m.ViewState != StateConfirming {
		t.Errorf("Expected StateConfirming, got %v", m.ViewState)
	}

	// Backing out returns to selection without deleting anything.
	updated, _ = m.Update(keyMsg("n"))
	m = updated.(Model)
	if m.ViewState != StateSelecting {
		t.Errorf("Expected StateSelecting after backing out, got %v", m.ViewState)
	}
}

func TestUpdate_EnterWithNothingSelectedQuits(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)
	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if !m.Quit {
		t.Error("Expected Quit to be set when confirming an empty selection")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}

func TestUpdate_QuitLeavesNoOutcomes(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	updated, _ := m.Update(keyMsg("q"))
	m = updated.(Model)

	if !m.Quit {
		t.Error("Expected Quit after 'q'")
	}
	if len(m.Outcomes) != 0 {
		t.Errorf("Expected no outcomes after quitting, got %v", m.Outcomes)
	}
}

func TestUpdate_OutcomesMsgShowsResults(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())
	m.ViewState = StateDeleting

	outcomes := []types.DeleteOutcome{
		{BranchName: "feature-x", Success: true, Message: "deleted"},
	}
	updated, _ := m.Update(outcomesMsg{outcomes: outcomes})
	m = updated.(Model)

	if m.ViewState != StateResults {
		t.Errorf("Expected StateResults, got %v", m.ViewState)
	}
	if len(m.Outcomes) != 1 || m.Outcomes[0].BranchName != "feature-x" {
		t.Errorf("Expected outcomes to be stored, got %v", m.Outcomes)
	}
}

func TestView_RendersEachState(t *testing.T) {
	m := InitialModel(context.Background(), deletableFixture())

	for _, state := range []ViewState{StateSelecting, StateConfirming, StateDeleting, StateResults} {
		m.ViewState = state
		if m.View() == "" {
			t.Errorf("Expected non-empty view for state %v", state)
		}
	}
}
