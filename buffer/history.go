package buffer

// Edit is one undoable step.
type Edit interface {
	Undo()
	Redo()
	// Significant edits are the unit of Undo/Redo; insignificant ones ride
	// along with the nearest significant edit.
	Significant() bool
	// Absorb merges next into the receiver and reports whether it did.
	Absorb(next Edit) bool
}

type historyState struct {
	undo []Edit
	redo []Edit

	open      []*compoundEdit
	replaying bool
}

// AddEdit records e. Edits added while undo or redo is replaying are
// dropped; edits added inside a compound become part of it.
func (b *Buffer) AddEdit(e Edit) {
	h := &b.hist
	if h.replaying || e == nil {
		return
	}
	if n := len(h.open); n > 0 {
		h.open[n-1].add(e)
		return
	}

	h.redo = nil
	if n := len(h.undo); n > 0 && h.undo[n-1].Absorb(e) {
		return
	}

	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}
	h.undo = append(h.undo, e)
	if len(h.undo) > limit {
		h.undo = h.undo[len(h.undo)-limit:]
	}
}

// BeginCompound opens a compound edit. Compounds nest; only the outermost
// one is recorded.
func (b *Buffer) BeginCompound() {
	b.hist.open = append(b.hist.open, &compoundEdit{})
}

func (b *Buffer) EndCompound() {
	h := &b.hist
	n := len(h.open)
	if n == 0 {
		return
	}
	c := h.open[n-1]
	h.open = h.open[:n-1]

	switch len(c.edits) {
	case 0:
	case 1:
		b.AddEdit(c.edits[0])
	default:
		b.AddEdit(c)
	}
}

// Compound runs fn inside a compound edit.
func (b *Buffer) Compound(fn func() error) error {
	b.BeginCompound()
	defer b.EndCompound()
	return fn()
}

// InCompound reports whether a compound edit is open.
func (b *Buffer) InCompound() bool { return len(b.hist.open) > 0 }

// Replaying reports whether undo or redo is running.
func (b *Buffer) Replaying() bool { return b.hist.replaying }

func (b *Buffer) CanUndo() bool { return lastSignificant(b.hist.undo) >= 0 }

func (b *Buffer) CanRedo() bool { return lastSignificant(b.hist.redo) >= 0 }

// Undo reverts edits down to and including the most recent significant one.
func (b *Buffer) Undo() bool {
	h := &b.hist
	if h.replaying || len(h.open) > 0 {
		return false
	}
	i := lastSignificant(h.undo)
	if i < 0 {
		return false
	}

	h.replaying = true
	defer func() { h.replaying = false }()

	for j := len(h.undo) - 1; j >= i; j-- {
		e := h.undo[j]
		e.Undo()
		h.redo = append(h.redo, e)
	}
	h.undo = h.undo[:i]
	return true
}

// Redo reapplies edits up to and including the next significant one.
func (b *Buffer) Redo() bool {
	h := &b.hist
	if h.replaying || len(h.open) > 0 {
		return false
	}
	i := lastSignificant(h.redo)
	if i < 0 {
		return false
	}

	h.replaying = true
	defer func() { h.replaying = false }()

	for j := len(h.redo) - 1; j >= i; j-- {
		e := h.redo[j]
		e.Redo()
		h.undo = append(h.undo, e)
	}
	h.redo = h.redo[:i]
	return true
}

// DiscardEdits clears both history stacks.
func (b *Buffer) DiscardEdits() {
	b.hist.undo = nil
	b.hist.redo = nil
}

func lastSignificant(edits []Edit) int {
	for i := len(edits) - 1; i >= 0; i-- {
		if edits[i].Significant() {
			return i
		}
	}
	return -1
}

type compoundEdit struct {
	edits []Edit
}

func (c *compoundEdit) add(e Edit) {
	if n := len(c.edits); n > 0 && c.edits[n-1].Absorb(e) {
		return
	}
	c.edits = append(c.edits, e)
}

func (c *compoundEdit) Undo() {
	for i := len(c.edits) - 1; i >= 0; i-- {
		c.edits[i].Undo()
	}
}

func (c *compoundEdit) Redo() {
	for _, e := range c.edits {
		e.Redo()
	}
}

func (c *compoundEdit) Significant() bool {
	for _, e := range c.edits {
		if e.Significant() {
			return true
		}
	}
	return false
}

func (c *compoundEdit) Absorb(Edit) bool { return false }
