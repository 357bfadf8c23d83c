package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/waymark/internal/app"
	"github.com/colonyops/waymark/internal/tui"
)

// TUICmd implements the interactive todo browser.
type TUICmd struct {
	flags *Flags
}

// NewTUICmd creates a new tui command.
func NewTUICmd(flags *Flags) *TUICmd {
	return &TUICmd{flags: flags}
}

// Register adds the tui command to the application and makes it the
// default action.
func (cmd *TUICmd) Register(root *cli.Command) *cli.Command {
	root.Action = cmd.run
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive todo browser",
		Description: `Opens the todo list with an address bar kept in sync with the
active view. Typed paths, back/forward, and in-view actions all drive
the same state machine.`,
		Action: cmd.run,
	})
	return root
}

func (cmd *TUICmd) run(ctx context.Context, _ *cli.Command) error {
	a := app.New(cmd.flags.Config)
	a.Start(ctx)
	defer a.Stop()

	return tui.Run(ctx, a)
}
