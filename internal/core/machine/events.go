package machine

// Event is the closed set of events the machine consumes. Navigation
// events originate from the router service; user intents originate
// from the view dispatcher. Events are immutable values consumed
// exactly once by a single Dispatch call.
type Event interface {
	event()
}

// NavigateTodos requests the list view. Emitted for `/` and `/todos`.
type NavigateTodos struct{}

// NavigateNewTodo requests the creation form. Emitted for `/todo/new`.
type NavigateNewTodo struct{}

// NavigateTodo requests the detail view for a specific todo id.
type NavigateTodo struct {
	ID int
}

// RouteNotFound reports a path outside the known route grammar.
type RouteNotFound struct {
	Path string
}

// AddTodo asks the machine to append a new todo. Accepted only in the
// creation form state and only when Content is non-empty.
type AddTodo struct {
	Content string
}

// RemoveTodo asks the machine to delete the todo with the given id.
// A no-op when no such id exists.
type RemoveTodo struct {
	ID int
}

// ToggleTodo asks the machine to flip the completed flag on the todo
// with the given id. A no-op when no such id exists.
type ToggleTodo struct {
	ID int
}

func (NavigateTodos) event()   {}
func (NavigateNewTodo) event() {}
func (NavigateTodo) event()    {}
func (RouteNotFound) event()   {}
func (AddTodo) event()         {}
func (RemoveTodo) event()      {}
func (ToggleTodo) event()      {}

// Name returns a stable lowercase identifier for logging.
func Name(ev Event) string {
	switch ev.(type) {
	case NavigateTodos:
		return "navigate-todos"
	case NavigateNewTodo:
		return "navigate-new-todo"
	case NavigateTodo:
		return "navigate-todo"
	case RouteNotFound:
		return "route-not-found"
	case AddTodo:
		return "add-todo"
	case RemoveTodo:
		return "remove-todo"
	case ToggleTodo:
		return "toggle-todo"
	default:
		return "unknown"
	}
}
