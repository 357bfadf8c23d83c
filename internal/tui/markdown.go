package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// renderer renders todo content as markdown in the detail view. It is
// rebuilt on terminal resize to keep word wrapping correct.
type renderer struct {
	theme string
	wrap  int
	gr    *glamour.TermRenderer
}

func newRenderer(theme string) *renderer {
	r := &renderer{theme: theme, wrap: defaultWrap}
	r.rebuild()
	return r
}

func (r *renderer) resize(width int) {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	if wrap == r.wrap {
		return
	}
	r.wrap = wrap
	r.rebuild()
}

func (r *renderer) rebuild() {
	gr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.theme),
		glamour.WithWordWrap(r.wrap),
	)
	if err != nil {
		r.gr = nil
		return
	}
	r.gr = gr
}

// markdown renders content, falling back to the raw text when the
// renderer is unavailable or fails.
func (r *renderer) markdown(content string) string {
	if r.gr == nil {
		return content
	}
	out, err := r.gr.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
