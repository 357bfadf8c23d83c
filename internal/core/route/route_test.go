package route_test

import (
	"testing"

	"github.com/colonyops/waymark/internal/core/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want route.Route
	}{
		{path: "/", want: route.Todos()},
		{path: "/todos", want: route.Todos()},
		{path: "/todo/new", want: route.NewTodo()},
		{path: "/todo/1", want: route.Todo(1)},
		{path: "/todo/42", want: route.Todo(42)},
		{path: "/todo/-3", want: route.Todo(-3)},
		{path: "", want: route.Route{Kind: route.KindNotFound}},
		{path: "/nope", want: route.Route{Kind: route.KindNotFound}},
		{path: "/todos/", want: route.Route{Kind: route.KindNotFound}},
		{path: "/todo/", want: route.Route{Kind: route.KindNotFound}},
		{path: "/todo/abc", want: route.Route{Kind: route.KindNotFound}},
		{path: "/todo/1/edit", want: route.Route{Kind: route.KindNotFound}},
		{path: "/Todos", want: route.Route{Kind: route.KindNotFound}},
		{path: "/TODO/new", want: route.Route{Kind: route.KindNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, route.Parse(tt.path))
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   route.Route
		want string
	}{
		{name: "todos", in: route.Todos(), want: "/todos"},
		{name: "new todo", in: route.NewTodo(), want: "/todo/new"},
		{name: "todo by id", in: route.Todo(7), want: "/todo/7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := route.Format(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_notFoundHasNoPath(t *testing.T) {
	_, err := route.Format(route.Route{Kind: route.KindNotFound})
	require.Error(t, err)
}

func TestParseFormat_roundTrip(t *testing.T) {
	for _, r := range []route.Route{route.Todos(), route.NewTodo(), route.Todo(3)} {
		path, err := route.Format(r)
		require.NoError(t, err)
		assert.Equal(t, r, route.Parse(path))
	}
}
