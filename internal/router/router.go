// Package router implements the router service: the bidirectional
// bridge between the navigation history and the state machine.
//
// The two directions are independent by construction and can never
// feed each other. Inbound, history changes are parsed and dispatched
// into the machine as navigation events. Outbound, push updates from
// the machine are written with History.Replace, which produces no
// history change, so the inbound listener never observes them.
package router

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/colonyops/waymark/internal/browser"
	"github.com/colonyops/waymark/internal/core/eventbus"
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/core/route"
)

// Dispatcher is the machine-side contract the router drives.
type Dispatcher interface {
	Dispatch(machine.Event)
}

// Router translates history changes into navigation events and push
// updates into history writes. It implements machine.Pusher.
type Router struct {
	history *browser.History
	machine Dispatcher
	bus     *eventbus.EventBus
	changes <-chan browser.Change
	log     zerolog.Logger
}

// New creates a router and subscribes it to the history. The
// subscription is taken here so that navigations occurring between
// construction and Run are not lost.
func New(h *browser.History, d Dispatcher, bus *eventbus.EventBus, log zerolog.Logger) *Router {
	return &Router{
		history: h,
		machine: d,
		bus:     bus,
		changes: h.Subscribe(),
		log:     log,
	}
}

// Run consumes history changes until ctx is cancelled or the history
// is closed. Each change dispatches exactly one navigation event.
func (r *Router) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case change, ok := <-r.changes:
			if !ok {
				return nil
			}
			r.Handle(change)
		}
	}
}

// Handle processes one history change synchronously. Run uses it for
// live changes; headless drivers call it directly after stepping the
// history themselves.
func (r *Router) Handle(change browser.Change) {
	r.log.Debug().
		Str("path", change.Path).
		Str("origin", change.Origin.String()).
		Msg("inbound navigation")

	rt := route.Parse(change.Path)
	switch rt.Kind {
	case route.KindTodos:
		r.machine.Dispatch(machine.NavigateTodos{})
	case route.KindNewTodo:
		r.machine.Dispatch(machine.NavigateNewTodo{})
	case route.KindTodo:
		r.machine.Dispatch(machine.NavigateTodo{ID: rt.ID})
	default:
		if r.bus != nil {
			r.bus.PublishRouteRejected(eventbus.RouteRejectedPayload{Path: change.Path})
		}
		r.machine.Dispatch(machine.RouteNotFound{Path: change.Path})
	}
}

// Push writes a push update to the history. The write is idempotent:
// when the visible path already matches, nothing happens at all.
func (r *Router) Push(rt route.Route) {
	path, err := route.Format(rt)
	if err != nil {
		r.log.Error().Err(err).Msg("unpushable route")
		return
	}

	if r.history.Path() == path {
		r.log.Debug().Str("path", path).Msg("push suppressed: url already current")
		return
	}

	r.history.Replace(path)
	r.log.Debug().Str("path", path).Msg("url rewritten")

	if r.bus != nil {
		r.bus.PublishRoutePushed(eventbus.RoutePushedPayload{Path: path})
	}
}
