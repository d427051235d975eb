package buffer

import (
	"fmt"
	"slices"
)

// Insert inserts s at off.
func (b *Buffer) Insert(off int, s string) error {
	if off < 0 || off > len(b.text) {
		return fmt.Errorf("insert at %d of %d: %w", off, len(b.text), ErrOutOfRange)
	}
	if s == "" {
		return nil
	}
	b.insert(off, []rune(s))
	return nil
}

// Remove deletes n runes starting at off.
func (b *Buffer) Remove(off, n int) error {
	if off < 0 || n < 0 || off+n > len(b.text) {
		return fmt.Errorf("remove [%d,%d) of %d: %w", off, off+n, len(b.text), ErrOutOfRange)
	}
	if n == 0 {
		return nil
	}
	b.remove(off, n)
	return nil
}

// Replace deletes n runes at off and inserts s there, as one compound edit.
func (b *Buffer) Replace(off, n int, s string) error {
	if off < 0 || n < 0 || off+n > len(b.text) {
		return fmt.Errorf("replace [%d,%d) of %d: %w", off, off+n, len(b.text), ErrOutOfRange)
	}
	b.BeginCompound()
	defer b.EndCompound()
	if n > 0 {
		b.remove(off, n)
	}
	if s != "" {
		b.insert(off, []rune(s))
	}
	return nil
}

// Listeners run before the edit is recorded so that edits they add (caret
// moves) undo after the text edit.
func (b *Buffer) insert(off int, ins []rune) {
	line := b.lineOf(off)
	b.text = slices.Insert(b.text, off, ins...)
	delta := b.reindexInsert(line, off, ins)
	b.version++

	ev := Event{Kind: Inserted, Offset: off, Length: len(ins), Text: string(ins), Line: line, LinesDelta: delta}
	b.notify(ev)
	b.AddEdit(&textEdit{b: b, ev: ev})
}

func (b *Buffer) remove(off, n int) {
	line := b.lineOf(off)
	removed := string(b.text[off : off+n])
	b.text = slices.Delete(b.text, off, off+n)
	delta := b.reindexRemove(off, n)
	b.version++

	ev := Event{Kind: Removed, Offset: off, Length: n, Text: removed, Line: line, LinesDelta: -delta}
	b.notify(ev)
	b.AddEdit(&textEdit{b: b, ev: ev})
}

type textEdit struct {
	b  *Buffer
	ev Event
}

func (e *textEdit) Undo() {
	if e.ev.Kind == Inserted {
		e.b.remove(e.ev.Offset, e.ev.Length)
		return
	}
	e.b.insert(e.ev.Offset, []rune(e.ev.Text))
}

func (e *textEdit) Redo() {
	if e.ev.Kind == Inserted {
		e.b.insert(e.ev.Offset, []rune(e.ev.Text))
		return
	}
	e.b.remove(e.ev.Offset, e.ev.Length)
}

func (e *textEdit) Significant() bool { return true }

func (e *textEdit) Absorb(Edit) bool { return false }
