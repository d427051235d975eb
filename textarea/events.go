package textarea

// CaretEvent reports a selection change. Offsets are runes.
type CaretEvent struct {
	OldCaret, OldMark int
	Caret, Mark       int
}

type CaretListener interface {
	CaretChanged(ev CaretEvent)
}

type CaretListenerFunc func(ev CaretEvent)

func (f CaretListenerFunc) CaretChanged(ev CaretEvent) { f(ev) }

type caretEntry struct {
	id int
	l  CaretListener
}

// AddCaretListener registers l and returns a function that removes it.
func (a *Area) AddCaretListener(l CaretListener) (remove func()) {
	a.nextListenerID++
	id := a.nextListenerID
	a.caretListeners = append(a.caretListeners, caretEntry{id: id, l: l})
	return func() {
		for i, e := range a.caretListeners {
			if e.id == id {
				a.caretListeners = append(a.caretListeners[:i:i], a.caretListeners[i+1:]...)
				return
			}
		}
	}
}

func (a *Area) fireCaret(ev CaretEvent) {
	for _, e := range a.caretListeners {
		e.l.CaretChanged(ev)
	}
}
