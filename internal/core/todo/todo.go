// Package todo defines the todo item domain model and the ordered
// collection owned by the state machine context.
package todo

// Todo represents a single todo item.
type Todo struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
}

// List is an ordered collection of todos with unique positive ids.
// Insertion order is preserved; ids are allocated monotonically and
// never reused, even after removal.
type List struct {
	items []Todo

	// nextID is the high-water allocation counter. It only ever grows,
	// so removing the highest-id todo never makes that id reusable.
	nextID int
}

// NewList creates a list pre-populated with one todo per content string.
// Empty contents are skipped.
func NewList(contents ...string) List {
	var l List
	for _, c := range contents {
		if c == "" {
			continue
		}
		l.Add(c)
	}
	return l
}

// Add appends a todo with a freshly allocated id and returns it.
// The new id is strictly greater than every id the list has ever
// allocated: 1 + max over the list's lifetime, starting at 1.
func (l *List) Add(content string) Todo {
	if l.nextID < 1 {
		l.nextID = 1
	}
	item := Todo{ID: l.nextID, Content: content}
	l.nextID++
	l.items = append(l.items, item)
	return item
}

// Remove deletes the todo with the given id. It returns the removed
// todo and true, or a zero todo and false if no such id exists.
func (l *List) Remove(id int) (Todo, bool) {
	for i, t := range l.items {
		if t.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return t, true
		}
	}
	return Todo{}, false
}

// Toggle flips the completed flag on the todo with the given id.
// It returns the updated todo and true, or false if no such id exists.
func (l *List) Toggle(id int) (Todo, bool) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Completed = !l.items[i].Completed
			return l.items[i], true
		}
	}
	return Todo{}, false
}

// Find returns the todo with the given id.
func (l List) Find(id int) (Todo, bool) {
	for _, t := range l.items {
		if t.ID == id {
			return t, true
		}
	}
	return Todo{}, false
}

// Len returns the number of todos in the list.
func (l List) Len() int {
	return len(l.items)
}

// Items returns a copy of the todos in insertion order.
func (l List) Items() []Todo {
	out := make([]Todo, len(l.items))
	copy(out, l.items)
	return out
}

// Context is the application context owned by the state machine: the
// todo list plus the currently selected todo, referenced by id.
// SelectedID is zero when nothing is selected; ids are always positive.
type Context struct {
	List       List
	SelectedID int
}

// Selected resolves the selected todo against the list. It returns
// false when nothing is selected or the id is no longer present.
func (c Context) Selected() (Todo, bool) {
	if c.SelectedID == 0 {
		return Todo{}, false
	}
	return c.List.Find(c.SelectedID)
}

// Clone returns a deep copy of the context for read-only consumers.
// The allocation counter is carried so a clone allocates the same ids
// the original would.
func (c *Context) Clone() Context {
	return Context{
		List:       List{items: c.List.Items(), nextID: c.List.nextID},
		SelectedID: c.SelectedID,
	}
}
