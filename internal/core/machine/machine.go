// Package machine implements the application state machine: the legal
// states, the transition function driven by navigation and user intent
// events, and the push protocol that keeps the router service informed
// of state changes.
package machine

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/waymark/internal/core/route"
	"github.com/colonyops/waymark/internal/core/todo"
)

// State identifies the active machine state. Guard evaluation for
// todo navigation is internal to a single Dispatch call; there is no
// externally observable "validating" state.
type State int

const (
	// StateIdle is the initial state, before any navigation event.
	StateIdle State = iota
	// StateTodos is the list view.
	StateTodos
	// StateTodoValid is the detail view with a valid selection.
	StateTodoValid
	// StateTodoError is the detail view for a nonexistent id.
	StateTodoError
	// StateNew is the creation form.
	StateNew
	// StateNotFound is the unroutable-path state.
	StateNotFound
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTodos:
		return "todos"
	case StateTodoValid:
		return "todo-valid"
	case StateTodoError:
		return "todo-error"
	case StateNew:
		return "new"
	case StateNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Tag is the classification label the rendering layer keys on. Tags
// decouple presentation from state names and from URLs.
type Tag string

const (
	TagTodos       Tag = "todos"
	TagTodo        Tag = "todo"
	TagInvalidTodo Tag = "invalid-todo"
	TagNewTodo     Tag = "new-todo"
	TagNotFound    Tag = "not-found"
)

// Tags returns the classification tags for the state. Idle carries no
// tag; nothing is rendered before the first navigation event.
func (s State) Tags() []Tag {
	switch s {
	case StateTodos:
		return []Tag{TagTodos}
	case StateTodoValid:
		return []Tag{TagTodo}
	case StateTodoError:
		return []Tag{TagInvalidTodo}
	case StateNew:
		return []Tag{TagNewTodo}
	case StateNotFound:
		return []Tag{TagNotFound}
	default:
		return nil
	}
}

// Pusher receives push updates when a state entry requires the visible
// URL to change. The call is synchronous: the URL write completes
// before Dispatch notifies any transition listener.
type Pusher interface {
	Push(route.Route)
}

// Effects describes the side effects computed by a single transition.
type Effects struct {
	// Push, when set, is the URL update to emit on state entry.
	Push *route.Route
	// Created, Removed, and Toggled carry the todo affected by a
	// context mutation, if any.
	Created *todo.Todo
	Removed *todo.Todo
	Toggled *todo.Todo
	// Rejected is the unroutable path from a RouteNotFound event.
	Rejected string
	// Handled reports whether the event produced a transition or a
	// context mutation. Suppressed and guarded-out events leave it false.
	Handled bool
}

// Transition is delivered to listeners after every handled event.
type Transition struct {
	From    State
	To      State
	Tags    []Tag
	Event   Event
	Context todo.Context
	Effects Effects
}

// Machine owns the application context and serializes event handling.
// All methods are safe for concurrent use; Dispatch is the single
// mutual-exclusion boundary required by the event-loop model.
type Machine struct {
	mu        sync.Mutex
	state     State
	ctx       todo.Context
	pusher    Pusher
	listeners []func(Transition)
	log       zerolog.Logger

	// notifyMu serializes listener notification in transition order.
	// It is acquired before mu is released, so a second Dispatch cannot
	// deliver its transition ahead of an earlier one.
	notifyMu sync.Mutex
}

// Options configures a Machine.
type Options struct {
	// Seed pre-populates the todo list, one todo per content string.
	Seed   []string
	Logger zerolog.Logger
}

// New creates a machine in the idle state.
func New(opts Options) *Machine {
	return &Machine{
		state: StateIdle,
		ctx:   todo.Context{List: todo.NewList(opts.Seed...)},
		log:   opts.Logger,
	}
}

// AttachPusher sets the push target. The router service registers
// itself here after construction; a nil pusher drops pushes.
func (m *Machine) AttachPusher(p Pusher) {
	m.mu.Lock()
	m.pusher = p
	m.mu.Unlock()
}

// OnTransition registers a listener notified after every handled
// event, once the push (if any) has been written. Listeners must not
// call Dispatch reentrantly from the callback.
func (m *Machine) OnTransition(fn func(Transition)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// State returns the active state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Tags returns the classification tags of the active state.
func (m *Machine) Tags() []Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Tags()
}

// Context returns a read-only copy of the application context.
func (m *Machine) Context() todo.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx.Clone()
}

// Dispatch runs one event to completion: transition, context
// mutation, push emission, listener notification. Unhandled events
// (guard failures, events foreign to the active state, suppressed
// re-entries) change nothing and notify nobody.
func (m *Machine) Dispatch(ev Event) {
	m.mu.Lock()

	from := m.state
	next, eff := step(m.state, &m.ctx, ev)

	if !eff.Handled {
		m.mu.Unlock()
		m.log.Debug().
			Str("state", from.String()).
			Str("event", Name(ev)).
			Msg("event ignored")
		return
	}

	m.state = next

	if eff.Push != nil && m.pusher != nil {
		m.pusher.Push(*eff.Push)
	}

	tr := Transition{
		From:    from,
		To:      next,
		Tags:    next.Tags(),
		Event:   ev,
		Context: m.ctx.Clone(),
		Effects: eff,
	}
	listeners := make([]func(Transition), len(m.listeners))
	copy(listeners, m.listeners)
	m.notifyMu.Lock()
	m.mu.Unlock()

	m.log.Debug().
		Str("from", from.String()).
		Str("to", next.String()).
		Str("event", Name(ev)).
		Msg("transition")

	for _, fn := range listeners {
		fn(tr)
	}
	m.notifyMu.Unlock()
}

// step is the pure transition core: given the active state, the
// context, and the triggering event, it computes the next state and
// the effects to apply. Guards read the triggering event directly,
// never ambient last-event state. Context mutations happen here so a
// single Dispatch observes transient evaluation (the validating step)
// as one atomic move.
func step(s State, ctx *todo.Context, ev Event) (State, Effects) {
	switch ev := ev.(type) {
	case NavigateTodos:
		push := route.Todos()
		return StateTodos, Effects{Push: &push, Handled: true}

	case NavigateNewTodo:
		push := route.NewTodo()
		return StateNew, Effects{Push: &push, Handled: true}

	case NavigateTodo:
		// Self-navigation to the already selected todo is suppressed,
		// breaking the push -> navigate -> push cycle.
		if s == StateTodoValid && ctx.SelectedID == ev.ID {
			return s, Effects{}
		}
		// Guard: the requested id must exist. Evaluated against this
		// event's id, not whatever was dispatched last.
		if _, ok := ctx.List.Find(ev.ID); !ok {
			return StateTodoError, Effects{Handled: true}
		}
		ctx.SelectedID = ev.ID
		push := route.Todo(ev.ID)
		return StateTodoValid, Effects{Push: &push, Handled: true}

	case RouteNotFound:
		return StateNotFound, Effects{Rejected: ev.Path, Handled: true}

	case AddTodo:
		if s != StateNew {
			return s, Effects{}
		}
		// Guard: content must be non-empty; rejected events leave the
		// form state and the list untouched.
		if len(ev.Content) == 0 {
			return s, Effects{}
		}
		item := ctx.List.Add(ev.Content)
		push := route.Todos()
		return StateTodos, Effects{Push: &push, Created: &item, Handled: true}

	case RemoveTodo:
		if s != StateTodos && s != StateTodoValid {
			return s, Effects{}
		}
		item, ok := ctx.List.Remove(ev.ID)
		if !ok {
			return s, Effects{}
		}
		if ctx.SelectedID == ev.ID {
			ctx.SelectedID = 0
		}
		if s == StateTodoValid {
			// The detail view cannot outlive its subject.
			push := route.Todos()
			return StateTodos, Effects{Push: &push, Removed: &item, Handled: true}
		}
		return s, Effects{Removed: &item, Handled: true}

	case ToggleTodo:
		if s != StateTodos && s != StateTodoValid {
			return s, Effects{}
		}
		item, ok := ctx.List.Toggle(ev.ID)
		if !ok {
			return s, Effects{}
		}
		return s, Effects{Toggled: &item, Handled: true}

	default:
		return s, Effects{}
	}
}
