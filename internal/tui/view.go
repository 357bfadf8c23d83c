package tui

import (
	"fmt"
	"strings"

	"github.com/colonyops/waymark/internal/core/machine"
)

// View renders the active view from the latest machine snapshot.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.tags {
	case machine.TagTodos:
		b.WriteString(m.renderList())
	case machine.TagTodo:
		b.WriteString(m.renderDetail())
	case machine.TagNewTodo:
		b.WriteString(m.renderForm())
	case machine.TagInvalidTodo:
		b.WriteString(m.renderInvalid())
	case machine.TagNotFound:
		b.WriteString(m.renderNotFound())
	default:
		b.WriteString(subtleStyle.Render("waiting for navigation..."))
	}

	if m.flash != "" {
		b.WriteString("\n\n")
		b.WriteString(flashStyle.Render(m.flash))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader draws the title and the address bar. The path shown is
// the history's, which the router keeps aligned with the machine.
func (m *Model) renderHeader() string {
	bar := addressStyle.Render(m.app.History.Path())
	if m.prompting {
		bar = m.prompt.View()
	}
	return titleStyle.Render("waymark") + "  " + bar
}

func (m *Model) renderList() string {
	items := m.mctx.List.Items()
	if len(items) == 0 {
		return subtleStyle.Render("nothing to do — press n to add a todo")
	}

	var b strings.Builder
	for i, item := range items {
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}

		line := fmt.Sprintf("%s %3d  %s", check, item.ID, item.Content)
		if item.Completed {
			line = doneStyle.Render(line)
		}
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderDetail() string {
	item, ok := m.mctx.Selected()
	if !ok {
		// The machine guarantees a valid selection under this tag.
		return subtleStyle.Render("no todo selected")
	}

	status := "pending"
	if item.Completed {
		status = "completed"
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("todo #%d", item.ID)))
	b.WriteString("  ")
	b.WriteString(statusStyle(item.Completed).Render(status))
	b.WriteString("\n\n")
	b.WriteString(m.render.markdown(item.Content))
	return b.String()
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("new todo"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) renderInvalid() string {
	return errorStyle.Render("that todo does not exist") + "\n\n" +
		subtleStyle.Render("press esc to return to the list")
}

func (m *Model) renderNotFound() string {
	return errorStyle.Render("page not found: "+m.app.History.Path()) + "\n\n" +
		subtleStyle.Render("press esc to return to the list")
}

func (m *Model) renderFooter() string {
	var help string
	switch {
	case m.prompting:
		help = "enter go • esc cancel"
	case m.tags == machine.TagNewTodo:
		help = "enter add • esc cancel"
	case m.tags == machine.TagTodo:
		help = "space toggle • d delete • esc list • [ ] history • q quit"
	default:
		help = "enter open • space toggle • d delete • n new • g go to • [ ] history • q quit"
	}
	return subtleStyle.Render(help)
}
