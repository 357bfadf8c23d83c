package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/waymark/internal/core/route"
	"github.com/colonyops/waymark/pkg/iojson"
)

// RoutesCmd prints the route table or resolves paths against it.
type RoutesCmd struct {
	flags *Flags
}

// NewRoutesCmd creates a new routes command.
func NewRoutesCmd(flags *Flags) *RoutesCmd {
	return &RoutesCmd{flags: flags}
}

// Register adds the routes command to the application.
func (cmd *RoutesCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "routes",
		Usage:     "Show the route table or resolve paths",
		UsageText: "waymark routes [path ...]",
		Description: `With no arguments, prints the route table. With path arguments,
resolves each path and prints the matching route as JSON.

Examples:
  waymark routes
  waymark routes /todo/7 /bogus`,
		Action: cmd.run,
	})
	return root
}

type resolvedRoute struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	ID   int    `json:"id,omitempty"`
}

func (cmd *RoutesCmd) run(_ context.Context, c *cli.Command) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		fmt.Println("/                 todos")
		fmt.Println("/todos            todos")
		fmt.Println("/todo/new         new-todo")
		fmt.Println("/todo/:id         todo")
		fmt.Println("anything else     not-found")
		return nil
	}

	out := make([]resolvedRoute, 0, len(paths))
	for _, p := range paths {
		rt := route.Parse(p)
		out = append(out, resolvedRoute{
			Path: p,
			Kind: rt.Kind.String(),
			ID:   rt.ID,
		})
	}

	return iojson.Write(out)
}
