package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/waymark/internal/app"
	"github.com/colonyops/waymark/internal/browser"
	"github.com/colonyops/waymark/internal/core/machine"
	"github.com/colonyops/waymark/internal/core/todo"
	"github.com/colonyops/waymark/pkg/iojson"
)

// EventSpec is one scripted event in a dispatch run.
type EventSpec struct {
	// Type is one of: navigate, back, forward, add, toggle, remove.
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
	ID      int    `json:"id,omitempty"`
}

// DispatchResult is the machine snapshot printed after a dispatch run.
type DispatchResult struct {
	State      string      `json:"state"`
	Tags       []string    `json:"tags"`
	Path       string      `json:"path"`
	Todos      []todo.Todo `json:"todos"`
	SelectedID int         `json:"selected_id,omitempty"`
}

// DispatchCmd applies a scripted event sequence headlessly and prints
// the resulting state. Useful for debugging transition behavior and
// for scripting against the core without a terminal.
type DispatchCmd struct {
	flags  *Flags
	reader iojson.FileReader[[]EventSpec]
}

// NewDispatchCmd creates a new dispatch command.
func NewDispatchCmd(flags *Flags) *DispatchCmd {
	return &DispatchCmd{flags: flags}
}

// Register adds the dispatch command to the application.
func (cmd *DispatchCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "dispatch",
		Usage:     "Apply a scripted event sequence and print the resulting state",
		UsageText: "waymark dispatch [-f events.json] < events.json",
		Description: `Reads a JSON array of events, applies them in order against a fresh
application (seeded from config), and prints the final state as JSON.

Event format:
  [
    {"type": "navigate", "path": "/todo/new"},
    {"type": "add", "content": "Ship the release"},
    {"type": "toggle", "id": 1},
    {"type": "back"}
  ]`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})
	return root
}

func (cmd *DispatchCmd) run(_ context.Context, _ *cli.Command) error {
	events, err := cmd.reader.Read()
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	a := app.New(cmd.flags.Config)

	// Headless: step the history ourselves and hand each change to the
	// router synchronously instead of running the inbound loop.
	navigate := func(path string, origin browser.Origin) {
		a.Router.Handle(browser.Change{Path: path, Origin: origin})
	}
	navigate(a.Config.StartPath, browser.OriginUser)

	for i, ev := range events {
		switch ev.Type {
		case "navigate":
			a.History.Navigate(ev.Path)
			navigate(ev.Path, browser.OriginUser)
		case "back":
			if a.History.Back() {
				navigate(a.History.Path(), browser.OriginTraversal)
			}
		case "forward":
			if a.History.Forward() {
				navigate(a.History.Path(), browser.OriginTraversal)
			}
		case "add":
			a.Machine.Dispatch(machine.AddTodo{Content: ev.Content})
		case "toggle":
			a.Machine.Dispatch(machine.ToggleTodo{ID: ev.ID})
		case "remove":
			a.Machine.Dispatch(machine.RemoveTodo{ID: ev.ID})
		default:
			return fmt.Errorf("events[%d]: unknown event type %q", i, ev.Type)
		}
	}

	mctx := a.Machine.Context()
	tags := a.Machine.Tags()
	tagNames := make([]string, 0, len(tags))
	for _, t := range tags {
		tagNames = append(tagNames, string(t))
	}

	return iojson.Write(DispatchResult{
		State:      a.Machine.State().String(),
		Tags:       tagNames,
		Path:       a.History.Path(),
		Todos:      mctx.List.Items(),
		SelectedID: mctx.SelectedID,
	})
}
