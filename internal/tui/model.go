// Package tui is the view dispatcher: a Bubble Tea program that
// renders whichever view the state machine's classification tags call
// for, and feeds user intents back into the machine as events.
//
// The TUI renders from (tags, context) snapshots only, never from the
// URL. Navigation intents (opening a todo, the form, typed paths,
// back/forward) go through the history, exercising the same inbound
// router path a browser address bar would.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/waymark/internal/app"
	"github.com/colonyops/waymark/internal/core/eventbus"
	"github.com/colonyops/waymark/internal/core/logging"
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/core/route"
	"github.com/colonyops/waymark/internal/core/todo"
)

// transitionMsg delivers a machine transition into the Bubble Tea loop.
type transitionMsg struct {
	tr machine.Transition
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Toggle  key.Binding
	Remove  key.Binding
	New     key.Binding
	List    key.Binding
	Goto    key.Binding
	Back    key.Binding
	Forward key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k")),
		Down:    key.NewBinding(key.WithKeys("down", "j")),
		Open:    key.NewBinding(key.WithKeys("enter")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "t")),
		Remove:  key.NewBinding(key.WithKeys("d", "x")),
		New:     key.NewBinding(key.WithKeys("n")),
		List:    key.NewBinding(key.WithKeys("esc")),
		Goto:    key.NewBinding(key.WithKeys(":", "g")),
		Back:    key.NewBinding(key.WithKeys("[", "left")),
		Forward: key.NewBinding(key.WithKeys("]", "right")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// Model is the main Bubble Tea model.
type Model struct {
	app    *app.App
	keys   keyMap
	log    zerolog.Logger
	render *renderer

	transitions <-chan machine.Transition

	// Latest machine snapshot; everything rendered derives from it.
	tags machine.Tag
	mctx todo.Context

	cursor    int
	input     textinput.Model // new-todo form
	prompt    textinput.Model // address bar prompt
	prompting bool
	flash     string
	width     int
	height    int
	quitting  bool
}

// New creates the TUI model and subscribes it to machine transitions.
func New(a *app.App) *Model {
	ch := make(chan machine.Transition, 16)
	a.Machine.OnTransition(func(tr machine.Transition) {
		select {
		case ch <- tr:
		default:
		}
	})

	input := textinput.New()
	input.Placeholder = "what needs doing?"
	input.CharLimit = 256

	prompt := textinput.New()
	prompt.Prompt = "go to: "
	prompt.Placeholder = "/todos"

	// Seed from the machine's current state: the initial navigation
	// may already have happened by the time the program starts.
	m := &Model{
		app:         a,
		keys:        defaultKeyMap(),
		log:         logging.Component("tui"),
		render:      newRenderer(a.Config.TUI.Theme),
		transitions: ch,
		tags:        primaryTag(a.Machine.Tags()),
		mctx:        a.Machine.Context(),
		input:       input,
		prompt:      prompt,
	}
	if m.tags == machine.TagNewTodo {
		m.input.Focus()
	}
	return m
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, a *app.App) error {
	m := New(a)

	a.Bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	defer a.Bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Init begins listening for machine transitions.
func (m *Model) Init() tea.Cmd {
	return m.waitForTransition()
}

func (m *Model) waitForTransition() tea.Cmd {
	return func() tea.Msg {
		tr, ok := <-m.transitions
		if !ok {
			return nil
		}
		return transitionMsg{tr: tr}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.render.resize(msg.Width)
		return m, nil

	case transitionMsg:
		m.applyTransition(msg.tr)
		return m, m.waitForTransition()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) applyTransition(tr machine.Transition) {
	m.tags = primaryTag(tr.Tags)
	m.mctx = tr.Context
	m.flash = ""
	m.clampCursor()

	if m.tags == machine.TagNewTodo {
		m.input.Reset()
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The address prompt captures everything except its own exit keys.
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	// The form view owns the keyboard; only esc and quit pass through.
	if m.tags == machine.TagNewTodo {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Goto):
		m.prompting = true
		m.prompt.Reset()
		m.prompt.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.app.History.Back()
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		m.app.History.Forward()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.navigate(route.NewTodo())
		return m, nil

	case key.Matches(msg, m.keys.List):
		m.navigate(route.Todos())
		return m, nil
	}

	switch m.tags {
	case machine.TagTodos:
		return m.handleListKey(msg)
	case machine.TagTodo:
		return m.handleDetailKey(msg)
	}

	return m, nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.mctx.List.Items()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.cursorItem(); ok {
			m.app.Machine.Dispatch(machine.ToggleTodo{ID: item.ID})
		}
	case key.Matches(msg, m.keys.Remove):
		if item, ok := m.cursorItem(); ok {
			m.app.Machine.Dispatch(machine.RemoveTodo{ID: item.ID})
		}
	case key.Matches(msg, m.keys.Open):
		if item, ok := m.cursorItem(); ok {
			m.navigate(route.Todo(item.ID))
		}
	}

	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.mctx.Selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.app.Machine.Dispatch(machine.ToggleTodo{ID: item.ID})
	case key.Matches(msg, m.keys.Remove):
		m.app.Machine.Dispatch(machine.RemoveTodo{ID: item.ID})
	}

	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.navigate(route.Todos())
		return m, nil

	case "enter":
		content := m.input.Value()
		if content == "" {
			// The guard would reject it anyway; surface why.
			m.flash = "content must not be empty"
			return m, nil
		}
		m.app.Machine.Dispatch(machine.AddTodo{Content: content})
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.prompting = false
		return m, nil

	case "enter":
		path := m.prompt.Value()
		m.prompting = false
		if path != "" {
			m.app.History.Navigate(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// navigate routes a semantic intent through the history so the change
// arrives at the machine via the router, like any address-bar edit.
func (m *Model) navigate(r route.Route) {
	path, err := route.Format(r)
	if err != nil {
		m.log.Error().Err(err).Msg("unnavigable route")
		return
	}
	m.app.History.Navigate(path)
}

func (m *Model) cursorItem() (todo.Todo, bool) {
	items := m.mctx.List.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return todo.Todo{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	if n := m.mctx.List.Len(); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// primaryTag picks the rendering tag. States carry at most one tag
// today; the first wins if that ever changes.
func primaryTag(tags []machine.Tag) machine.Tag {
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}
