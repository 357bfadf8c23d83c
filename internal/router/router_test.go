package router_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/waymark/internal/browser"
	"github.com/colonyops/waymark/internal/core/eventbus"
	"github.com/colonyops/waymark/internal/core/eventbus/testbus"
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/router"
)

// harness wires a real history, machine, and router, mirroring the
// application composition.
type harness struct {
	history     *browser.History
	machine     *machine.Machine
	transitions atomic.Int64
}

func newHarness(t *testing.T, bus *eventbus.EventBus, seed ...string) *harness {
	t.Helper()

	h := &harness{
		history: browser.New("/todos", 0),
		machine: machine.New(machine.Options{Seed: seed}),
	}
	h.machine.OnTransition(func(machine.Transition) {
		h.transitions.Add(1)
	})

	r := router.New(h.history, h.machine, bus, zerolog.Nop())
	h.machine.AttachPusher(r)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = r.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return h
}

func (h *harness) waitState(t *testing.T, want machine.State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.machine.State() == want
	}, time.Second, time.Millisecond)
}

// settle waits for the transition count to stop moving. Used to prove
// the absence of feedback: a push that re-fired the inbound listener
// would keep producing transitions.
func (h *harness) settle(t *testing.T) int64 {
	t.Helper()
	var last int64
	require.Eventually(t, func() bool {
		n := h.transitions.Load()
		if n == last {
			return true
		}
		last = n
		return false
	}, time.Second, 10*time.Millisecond)
	return last
}

func TestRouter_inboundNavigation(t *testing.T) {
	h := newHarness(t, nil, "Foo")

	h.history.Navigate("/todo/1")
	h.waitState(t, machine.StateTodoValid)

	assert.Equal(t, 1, h.machine.Context().SelectedID)
	assert.Equal(t, "/todo/1", h.history.Path(), "a matching url is not rewritten")
}

func TestRouter_roundTripDoesNotLoop(t *testing.T) {
	h := newHarness(t, nil, "Foo")

	h.history.Navigate("/todos")
	h.waitState(t, machine.StateTodos)

	n := h.settle(t)
	assert.Equal(t, int64(1), n, "one navigation must produce exactly one transition")
	assert.Equal(t, "/todos", h.history.Path())
}

func TestRouter_pushRewritesURLWithoutInboundEcho(t *testing.T) {
	h := newHarness(t, nil, "Foo")

	h.history.Navigate("/todo/new")
	h.waitState(t, machine.StateNew)
	before := h.settle(t)

	// The accepted form submission transitions to the list state and
	// pushes /todos; the rewrite must not come back as navigation.
	h.machine.Dispatch(machine.AddTodo{Content: "Bar"})
	h.waitState(t, machine.StateTodos)

	assert.Equal(t, "/todos", h.history.Path())
	assert.Equal(t, before+1, h.settle(t))
}

func TestRouter_unroutablePathYieldsNotFound(t *testing.T) {
	tb := testbus.New(t)
	h := newHarness(t, tb.EventBus)

	h.history.Navigate("/completely/bogus")
	h.waitState(t, machine.StateNotFound)

	assert.Equal(t, []machine.Tag{machine.TagNotFound}, h.machine.Tags())
	assert.Equal(t, "/completely/bogus", h.history.Path(), "unroutable paths stay visible")
	tb.AssertPublished(t, eventbus.EventRouteRejected)
}

func TestRouter_invalidTodoKeepsURLAndSelection(t *testing.T) {
	h := newHarness(t, nil, "Foo")

	h.history.Navigate("/todo/1")
	h.waitState(t, machine.StateTodoValid)

	h.history.Navigate("/todo/99")
	h.waitState(t, machine.StateTodoError)

	assert.Equal(t, "/todo/99", h.history.Path())
	assert.Equal(t, 1, h.machine.Context().SelectedID)
}

func TestRouter_backForwardResynchronizes(t *testing.T) {
	h := newHarness(t, nil, "Foo")

	h.history.Navigate("/todos")
	h.waitState(t, machine.StateTodos)
	h.history.Navigate("/todo/1")
	h.waitState(t, machine.StateTodoValid)

	require.True(t, h.history.Back())
	h.waitState(t, machine.StateTodos)

	require.True(t, h.history.Forward())
	h.waitState(t, machine.StateTodoValid)
}

func TestRouter_pushPublishesRoutePushed(t *testing.T) {
	tb := testbus.New(t)
	h := newHarness(t, tb.EventBus, "Foo")

	h.history.Navigate("/todo/new")
	h.waitState(t, machine.StateNew)
	h.machine.Dispatch(machine.AddTodo{Content: "Bar"})

	tb.AssertPublished(t, eventbus.EventRoutePushed)
}
