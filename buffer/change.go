package buffer

// EventKind identifies a content mutation.
type EventKind uint8

const (
	Inserted EventKind = iota + 1
	Removed
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "insert"
	case Removed:
		return "remove"
	default:
		return "unknown"
	}
}

// Event describes one applied mutation.
type Event struct {
	Kind   EventKind
	Offset int
	Length int
	// Text is the inserted or removed text.
	Text string
	// Line is the line containing Offset before the mutation.
	Line int
	// LinesDelta is the change in line count (negative on removal).
	LinesDelta int
}

// Listener observes content mutations, including those replayed by undo
// and redo.
type Listener interface {
	BufferChanged(ev Event)
}

type ListenerFunc func(ev Event)

func (f ListenerFunc) BufferChanged(ev Event) { f(ev) }

type listenerEntry struct {
	id int
	l  Listener
}

// AddListener registers l and returns a function that unregisters it.
func (b *Buffer) AddListener(l Listener) (remove func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Buffer) notify(ev Event) {
	for _, e := range b.listeners {
		e.l.BufferChanged(ev)
	}
}
