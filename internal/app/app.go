// Package app composes the waymark components: configuration, event
// bus, navigation history, router service, and state machine.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/waymark/internal/browser"
	"github.com/colonyops/waymark/internal/core/config"
	"github.com/colonyops/waymark/internal/core/eventbus"
	"github.com/colonyops/waymark/internal/core/logging"
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/router"
)

// App owns the composed application. Construction wires everything;
// Run starts the background loops.
type App struct {
	Config  *config.Config
	Bus     *eventbus.EventBus
	History *browser.History
	Machine *machine.Machine
	Router  *router.Router

	log    zerolog.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New wires an application from configuration. The machine starts
// idle; nothing is rendered or pushed until Start navigates to the
// configured start path.
func New(cfg *config.Config) *App {
	bus := eventbus.New(64)
	eventbus.RegisterDebugLogger(bus, logging.Component("eventbus"))

	hist := browser.New(cfg.StartPath, cfg.History.Limit)

	m := machine.New(machine.Options{
		Seed:   cfg.Seed,
		Logger: logging.Component("machine"),
	})

	r := router.New(hist, m, bus, logging.Component("router"))
	m.AttachPusher(r)

	a := &App{
		Config:  cfg,
		Bus:     bus,
		History: hist,
		Machine: m,
		Router:  r,
		log:     logging.Component("app"),
	}

	// Mirror machine activity onto the bus for observers.
	m.OnTransition(a.publishTransition)

	return a
}

// Start runs the bus pump and the router's inbound loop, then routes
// the seeded start entry. The history already holds that entry, so it
// is handed to the router directly rather than navigated a second
// time; the stack opens with a single entry and the first transition
// completes before Start returns.
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.Bus.Start(ctx)
	}()
	go func() {
		defer a.wg.Done()
		_ = a.Router.Run(ctx)
	}()

	a.Router.Handle(browser.Change{Path: a.Config.StartPath, Origin: browser.OriginUser})
	a.log.Info().Str("path", a.Config.StartPath).Msg("application started")
}

// Stop tears down the router listener and bus pump and waits for them.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	a.History.Close()
	a.wg.Wait()
	a.log.Info().Msg("application stopped")
}

func (a *App) publishTransition(tr machine.Transition) {
	a.Bus.PublishMachineTransitioned(eventbus.MachineTransitionedPayload{
		From:  tr.From,
		To:    tr.To,
		Tags:  tr.Tags,
		Event: machine.Name(tr.Event),
	})

	eff := tr.Effects
	switch {
	case eff.Created != nil:
		a.Bus.PublishTodoCreated(eventbus.TodoCreatedPayload{Item: eff.Created})
	case eff.Removed != nil:
		a.Bus.PublishTodoRemoved(eventbus.TodoRemovedPayload{Item: eff.Removed})
	case eff.Toggled != nil:
		a.Bus.PublishTodoToggled(eventbus.TodoToggledPayload{Item: eff.Toggled})
	}
}
