// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within waymark.
//
// The bus carries observability and fan-out traffic. The ordering
// critical paths (machine push emission, transition notification) are
// synchronous calls and do not run through the bus.
package eventbus

import (
	"context"
	"sync"
)

// Event identifies an event type on the bus.
type Event string

// All event types, sorted A-Z.
const (
	EventMachineTransitioned Event = "machine.transitioned"
	EventRoutePushed         Event = "route.pushed"
	EventRouteRejected       Event = "route.rejected"
	EventTodoCreated         Event = "todo.created"
	EventTodoRemoved         Event = "todo.removed"
	EventTodoToggled         Event = "todo.toggled"
	EventTuiStarted          Event = "tui.started"
	EventTuiStopped          Event = "tui.stopped"
)

// envelope pairs an event with its payload for in-flight buffering.
type envelope struct {
	event   Event
	payload any
}

// EventBus is a buffered, typed publish/subscribe bus. Publishing
// never blocks: events are dropped (with the OnDrop hook fired) when
// the buffer is full. Delivery happens on the Start goroutine.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start runs the delivery loop until ctx is cancelled. Subscriber
// panics are recovered and reported through the OnPanic hook.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.deliver(env)
		}
	}
}

func (bus *EventBus) deliver(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

// subscribe registers a raw handler. Used by the typed Subscribe* methods.
func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

// PublishMachineTransitioned publishes a machine.transitioned event.
func (bus *EventBus) PublishMachineTransitioned(p MachineTransitionedPayload) {
	bus.send(EventMachineTransitioned, p)
}

// SubscribeMachineTransitioned registers a handler for machine.transitioned events.
func (bus *EventBus) SubscribeMachineTransitioned(fn func(MachineTransitionedPayload)) {
	bus.subscribe(EventMachineTransitioned, func(v any) {
		if p, ok := v.(MachineTransitionedPayload); ok {
			fn(p)
		}
	})
}

// PublishRoutePushed publishes a route.pushed event.
func (bus *EventBus) PublishRoutePushed(p RoutePushedPayload) {
	bus.send(EventRoutePushed, p)
}

// SubscribeRoutePushed registers a handler for route.pushed events.
func (bus *EventBus) SubscribeRoutePushed(fn func(RoutePushedPayload)) {
	bus.subscribe(EventRoutePushed, func(v any) {
		if p, ok := v.(RoutePushedPayload); ok {
			fn(p)
		}
	})
}

// PublishRouteRejected publishes a route.rejected event.
func (bus *EventBus) PublishRouteRejected(p RouteRejectedPayload) {
	bus.send(EventRouteRejected, p)
}

// SubscribeRouteRejected registers a handler for route.rejected events.
func (bus *EventBus) SubscribeRouteRejected(fn func(RouteRejectedPayload)) {
	bus.subscribe(EventRouteRejected, func(v any) {
		if p, ok := v.(RouteRejectedPayload); ok {
			fn(p)
		}
	})
}

// PublishTodoCreated publishes a todo.created event.
func (bus *EventBus) PublishTodoCreated(p TodoCreatedPayload) {
	bus.send(EventTodoCreated, p)
}

// SubscribeTodoCreated registers a handler for todo.created events.
func (bus *EventBus) SubscribeTodoCreated(fn func(TodoCreatedPayload)) {
	bus.subscribe(EventTodoCreated, func(v any) {
		if p, ok := v.(TodoCreatedPayload); ok {
			fn(p)
		}
	})
}

// PublishTodoRemoved publishes a todo.removed event.
func (bus *EventBus) PublishTodoRemoved(p TodoRemovedPayload) {
	bus.send(EventTodoRemoved, p)
}

// SubscribeTodoRemoved registers a handler for todo.removed events.
func (bus *EventBus) SubscribeTodoRemoved(fn func(TodoRemovedPayload)) {
	bus.subscribe(EventTodoRemoved, func(v any) {
		if p, ok := v.(TodoRemovedPayload); ok {
			fn(p)
		}
	})
}

// PublishTodoToggled publishes a todo.toggled event.
func (bus *EventBus) PublishTodoToggled(p TodoToggledPayload) {
	bus.send(EventTodoToggled, p)
}

// SubscribeTodoToggled registers a handler for todo.toggled events.
func (bus *EventBus) SubscribeTodoToggled(fn func(TodoToggledPayload)) {
	bus.subscribe(EventTodoToggled, func(v any) {
		if p, ok := v.(TodoToggledPayload); ok {
			fn(p)
		}
	})
}

// PublishTuiStarted publishes a tui.started event.
func (bus *EventBus) PublishTuiStarted(p TUIStartedPayload) {
	bus.send(EventTuiStarted, p)
}

// SubscribeTuiStarted registers a handler for tui.started events.
func (bus *EventBus) SubscribeTuiStarted(fn func(TUIStartedPayload)) {
	bus.subscribe(EventTuiStarted, func(v any) {
		if p, ok := v.(TUIStartedPayload); ok {
			fn(p)
		}
	})
}

// PublishTuiStopped publishes a tui.stopped event.
func (bus *EventBus) PublishTuiStopped(p TUIStoppedPayload) {
	bus.send(EventTuiStopped, p)
}

// SubscribeTuiStopped registers a handler for tui.stopped events.
func (bus *EventBus) SubscribeTuiStopped(fn func(TUIStoppedPayload)) {
	bus.subscribe(EventTuiStopped, func(v any) {
		if p, ok := v.(TUIStoppedPayload); ok {
			fn(p)
		}
	})
}
