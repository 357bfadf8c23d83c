// Package route defines the URL grammar shared by the router service
// and the state machine: the forward mapping from paths to semantic
// routes, and the reverse mapping used for push updates.
package route

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a parsed or pushed route.
type Kind int

const (
	// KindTodos is the list view route (`/` or `/todos`).
	KindTodos Kind = iota
	// KindNewTodo is the creation form route (`/todo/new`).
	KindNewTodo
	// KindTodo is the detail view route (`/todo/{id}`).
	KindTodo
	// KindNotFound is any path outside the known grammar.
	KindNotFound
)

// String returns the lowercase name of the route kind.
func (k Kind) String() string {
	switch k {
	case KindTodos:
		return "todos"
	case KindNewTodo:
		return "new-todo"
	case KindTodo:
		return "todo"
	default:
		return "not-found"
	}
}

// Route is a semantic route. ID is meaningful only for KindTodo.
type Route struct {
	Kind Kind
	ID   int
}

// Todos returns the list view route.
func Todos() Route { return Route{Kind: KindTodos} }

// NewTodo returns the creation form route.
func NewTodo() Route { return Route{Kind: KindNewTodo} }

// Todo returns the detail route for the given id.
func Todo(id int) Route { return Route{Kind: KindTodo, ID: id} }

// Parse maps a path onto a Route. Matching is case-sensitive and
// path-only. Unparseable paths yield KindNotFound, never an error.
func Parse(path string) Route {
	switch path {
	case "/", "/todos":
		return Route{Kind: KindTodos}
	case "/todo/new":
		return Route{Kind: KindNewTodo}
	}

	if rest, ok := strings.CutPrefix(path, "/todo/"); ok {
		id, err := strconv.Atoi(rest)
		if err == nil {
			return Route{Kind: KindTodo, ID: id}
		}
	}

	return Route{Kind: KindNotFound}
}

// Format is the reverse mapping from a route to its canonical path.
// KindNotFound has no path representation.
func Format(r Route) (string, error) {
	switch r.Kind {
	case KindTodos:
		return "/todos", nil
	case KindNewTodo:
		return "/todo/new", nil
	case KindTodo:
		return "/todo/" + strconv.Itoa(r.ID), nil
	default:
		return "", fmt.Errorf("route kind %q has no path", r.Kind)
	}
}
