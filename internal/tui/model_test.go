package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/waymark/internal/app"
	"github.com/colonyops/waymark/internal/core/config"
	"github.com/colonyops/waymark/internal/core/machine"
)

func newTestModel(t *testing.T, seed ...string) (*Model, *app.App) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Seed = seed
	a := app.New(&cfg)
	return New(a), a
}

// deliver feeds a synthetic transition for the given state into the model.
func deliver(m *Model, a *app.App, state machine.State) {
	m.applyTransition(machine.Transition{
		To:      state,
		Tags:    state.Tags(),
		Context: a.Machine.Context(),
	})
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_rendersViewByTag(t *testing.T) {
	m, a := newTestModel(t, "Write docs")

	tests := []struct {
		state machine.State
		want  string
	}{
		{state: machine.StateTodos, want: "Write docs"},
		{state: machine.StateNew, want: "new todo"},
		{state: machine.StateTodoError, want: "does not exist"},
		{state: machine.StateNotFound, want: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			deliver(m, a, tt.state)
			assert.Contains(t, m.View(), tt.want)
		})
	}
}

func TestModel_idleRendersNothingYet(t *testing.T) {
	m, _ := newTestModel(t, "Write docs")

	assert.Contains(t, m.View(), "waiting for navigation")
	assert.NotContains(t, m.View(), "Write docs")
}

func TestModel_detailViewShowsSelectedTodo(t *testing.T) {
	m, a := newTestModel(t, "Ship it")
	a.Machine.Dispatch(machine.NavigateTodo{ID: 1})

	deliver(m, a, machine.StateTodoValid)

	view := m.View()
	assert.Contains(t, view, "todo #1")
	assert.Contains(t, view, "Ship it")
	assert.Contains(t, view, "pending")
}

func TestModel_listKeysDispatchUserIntents(t *testing.T) {
	m, a := newTestModel(t, "One", "Two")
	a.Machine.Dispatch(machine.NavigateTodos{})
	deliver(m, a, machine.StateTodos)

	// Toggle the first todo.
	m.Update(keyMsg(" "))
	item, ok := a.Machine.Context().List.Find(1)
	require.True(t, ok)
	assert.True(t, item.Completed)

	// Remove the second todo.
	m.Update(keyMsg("j"))
	m.Update(keyMsg("d"))
	assert.Equal(t, 1, a.Machine.Context().List.Len())
}

func TestModel_openNavigatesThroughHistory(t *testing.T) {
	m, a := newTestModel(t, "One")
	a.Machine.Dispatch(machine.NavigateTodos{})
	deliver(m, a, machine.StateTodos)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "/todo/1", a.History.Path(), "open must go through the address bar")
}

func TestModel_formRejectsEmptySubmission(t *testing.T) {
	m, a := newTestModel(t)
	a.Machine.Dispatch(machine.NavigateNewTodo{})
	deliver(m, a, machine.StateNew)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, machine.StateNew, a.Machine.State())
	assert.Contains(t, m.View(), "must not be empty")
}

func TestModel_formSubmissionAddsTodo(t *testing.T) {
	m, a := newTestModel(t)
	a.Machine.Dispatch(machine.NavigateNewTodo{})
	deliver(m, a, machine.StateNew)

	for _, r := range "Bar" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, machine.StateTodos, a.Machine.State())
	items := a.Machine.Context().List.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Bar", items[0].Content)
}

func TestModel_cursorClampsAfterRemoval(t *testing.T) {
	m, a := newTestModel(t, "One", "Two")
	a.Machine.Dispatch(machine.NavigateTodos{})
	deliver(m, a, machine.StateTodos)

	m.Update(keyMsg("j"))
	m.Update(keyMsg("d")) // remove the last item while pointing at it
	deliver(m, a, machine.StateTodos)

	item, ok := m.cursorItem()
	require.True(t, ok)
	assert.Equal(t, 1, item.ID)
}

func TestPrimaryTag(t *testing.T) {
	assert.Equal(t, machine.Tag(""), primaryTag(nil))
	assert.Equal(t, machine.TagTodos, primaryTag([]machine.Tag{machine.TagTodos}))
}
