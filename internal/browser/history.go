// Package browser provides an in-memory navigation history with
// browser semantics: user navigation, back/forward traversal, and
// programmatic replacement of the current entry.
//
// The distinction between user-driven and programmatic changes is the
// contract the router service depends on: Navigate, Back, and Forward
// notify subscribers; Replace never does. A push update written via
// Replace therefore cannot re-enter the inbound navigation path.
package browser

import "sync"

// Origin classifies how a history change came about.
type Origin int

const (
	// OriginUser is a fresh navigation (typed path, followed link).
	OriginUser Origin = iota
	// OriginTraversal is back/forward movement through existing entries.
	OriginTraversal
)

// String returns the lowercase name of the origin.
func (o Origin) String() string {
	if o == OriginTraversal {
		return "traversal"
	}
	return "user"
}

// Change describes one observable history change.
type Change struct {
	Path   string
	Origin Origin
}

// History is an in-memory entry stack with a cursor. All methods are
// safe for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []string
	cursor  int
	limit   int
	subs    []chan Change
	closed  bool
}

// New creates a history positioned at the given start path. A limit
// of zero means unbounded.
func New(start string, limit int) *History {
	return &History{
		entries: []string{start},
		limit:   limit,
	}
}

// Path returns the current path.
func (h *History) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor]
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribe returns a buffered channel of history changes. Changes
// are dropped for subscribers that fall behind. The channel is closed
// by Close.
func (h *History) Subscribe() <-chan Change {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan Change, 16)
	h.subs = append(h.subs, ch)
	return ch
}

// Navigate pushes a new entry, discarding any forward entries, and
// notifies subscribers with OriginUser.
func (h *History) Navigate(path string) {
	h.mu.Lock()
	h.entries = append(h.entries[:h.cursor+1], path)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	h.cursor = len(h.entries) - 1
	h.notifyLocked(Change{Path: path, Origin: OriginUser})
	h.mu.Unlock()
}

// Back moves the cursor one entry back and notifies subscribers with
// OriginTraversal. Returns false at the oldest entry.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	h.notifyLocked(Change{Path: h.entries[h.cursor], Origin: OriginTraversal})
	return true
}

// Forward moves the cursor one entry forward and notifies subscribers
// with OriginTraversal. Returns false at the newest entry.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cursor == len(h.entries)-1 {
		return false
	}
	h.cursor++
	h.notifyLocked(Change{Path: h.entries[h.cursor], Origin: OriginTraversal})
	return true
}

// Replace overwrites the current entry without notifying subscribers.
// This is the programmatic write used for push updates.
func (h *History) Replace(path string) {
	h.mu.Lock()
	h.entries[h.cursor] = path
	h.mu.Unlock()
}

// Close closes all subscriber channels. Further changes notify nobody.
func (h *History) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, ch := range h.subs {
		close(ch)
	}
	h.subs = nil
}

func (h *History) notifyLocked(c Change) {
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
