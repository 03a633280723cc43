package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitchkit/fitch/internal/script"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := New(script.NewSession())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeCommand(t *testing.T, m Model, cmd string) Model {
	t.Helper()
	m.input.SetValue(cmd)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestModelStartsWithoutGoal(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "No goal yet")
}

func TestModelExecutesCommands(t *testing.T) {
	m := newTestModel(t)

	m = typeCommand(t, m, "goal A")
	assert.Empty(t, m.lastErr)
	assert.Equal(t, "goal: A", m.lastEcho)
	assert.Contains(t, m.View(), "Goal:")

	m = typeCommand(t, m, "premise A")
	require.NotNil(t, m.session.Proof())
	assert.True(t, m.session.Proof().IsComplete())
	assert.Contains(t, m.View(), "Complete ✓")
}

func TestModelShowsErrors(t *testing.T) {
	m := newTestModel(t)
	m = typeCommand(t, m, "reit 3")
	assert.Equal(t, "no goal declared", m.lastErr)
	assert.Contains(t, m.View(), "no goal declared")

	// The next good command clears the error line.
	m = typeCommand(t, m, "goal B")
	assert.Empty(t, m.lastErr)
}

func TestModelQuitPaths(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t)
		updated, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd, "key %v", key)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, updated.(Model).View())
	}

	m := newTestModel(t)
	m.input.SetValue("quit")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m = typeCommand(t, m, "help")
	assert.Contains(t, m.View(), "orintro <formula>, <line>")

	m = typeCommand(t, m, "help")
	assert.NotContains(t, m.View(), "orintro <formula>, <line>")
}

func TestModelHistoryRecall(t *testing.T) {
	m := newTestModel(t)
	m = typeCommand(t, m, "goal A & B")
	m = typeCommand(t, m, "premise A")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}

	updated, _ := m.Update(up)
	m = updated.(Model)
	assert.Equal(t, "premise A", m.input.Value())

	updated, _ = m.Update(up)
	m = updated.(Model)
	assert.Equal(t, "goal A & B", m.input.Value())

	// Past the oldest entry it stays put.
	updated, _ = m.Update(up)
	m = updated.(Model)
	assert.Equal(t, "goal A & B", m.input.Value())

	updated, _ = m.Update(down)
	m = updated.(Model)
	assert.Equal(t, "premise A", m.input.Value())

	updated, _ = m.Update(down)
	m = updated.(Model)
	assert.Empty(t, m.input.Value())
}

func TestModelResizeBeforeAndAfterReady(t *testing.T) {
	m := New(script.NewSession())
	assert.Contains(t, m.View(), "Loading")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	assert.True(t, m.ready)

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = updated.(Model)
	assert.Equal(t, 60, m.viewport.Width)
}
