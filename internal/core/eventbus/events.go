package eventbus

import (
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/core/todo"
)

// MachineTransitionedPayload is emitted after every handled machine event.
type MachineTransitionedPayload struct {
	From  machine.State
	To    machine.State
	Tags  []machine.Tag
	Event string
}

// RoutePushedPayload is emitted when the router writes a push update
// to the address bar.
type RoutePushedPayload struct {
	Path string
}

// RouteRejectedPayload is emitted when an inbound path matches no route.
type RouteRejectedPayload struct {
	Path string
}

// TodoCreatedPayload is emitted when a new todo is created.
type TodoCreatedPayload struct {
	Item *todo.Todo
}

// TodoRemovedPayload is emitted when a todo is removed.
type TodoRemovedPayload struct {
	Item *todo.Todo
}

// TodoToggledPayload is emitted when a todo's completed flag flips.
type TodoToggledPayload struct {
	Item *todo.Todo
}

// TUIStartedPayload is emitted when the TUI starts.
type TUIStartedPayload struct{}

// TUIStoppedPayload is emitted when the TUI stops.
type TUIStoppedPayload struct{}
