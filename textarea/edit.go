package textarea

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/codearea/buffer"
)

// bufferChanged keeps the selection, highlight entries, the span cache and
// the first visible line in step with a mutation, including those replayed
// by undo.
func (a *Area) bufferChanged(ev buffer.Event) {
	switch {
	case ev.LinesDelta == 0:
		a.mapper.Invalidate(ev.Line)
	case ev.Line < a.firstLine:
		a.mapper.InvalidateAll()
		a.firstLine = max(0, a.firstLine+ev.LinesDelta)
	default:
		a.mapper.InvalidateAll()
	}

	a.highlights.shift(ev)

	start, end := a.selStart, a.selEnd
	switch ev.Kind {
	case buffer.Inserted:
		start, end = shiftInsert(start, end, ev.Offset, ev.Length)
	case buffer.Removed:
		start, end = shiftRemove(start, end, ev.Offset, ev.Length)
	}
	if a.biasLeft {
		start, end = end, start
	}
	_ = a.Select(start, end)
}

// shiftInsert moves selection bounds over n runes inserted at off. A
// collapsed selection at off moves along; a non-empty selection grows only
// at its end.
func shiftInsert(start, end, off, n int) (int, int) {
	if start > off || (start == end && start == off) {
		start += n
	}
	if end >= off {
		end += n
	}
	return start, end
}

// shiftRemove moves bounds after the removed range back by n and collapses
// bounds inside it onto off.
func shiftRemove(start, end, off, n int) (int, int) {
	shift := func(v int) int {
		switch {
		case v <= off:
			return v
		case v > off+n:
			return v - n
		default:
			return off
		}
	}
	return shift(start), shift(end)
}

func (a *Area) checkEditable(op string) error {
	if !a.editable {
		return fmt.Errorf("%s: %w", op, ErrReadOnly)
	}
	return nil
}

// InsertText inserts s at off as one undo step.
func (a *Area) InsertText(off int, s string) error {
	if err := a.checkEditable("insert"); err != nil {
		return err
	}
	return a.buf.Compound(func() error { return a.buf.Insert(off, s) })
}

// DeleteRange removes n runes at off as one undo step.
func (a *Area) DeleteRange(off, n int) error {
	if err := a.checkEditable("delete"); err != nil {
		return err
	}
	return a.buf.Compound(func() error { return a.buf.Remove(off, n) })
}

// Append inserts s at the end of the document.
func (a *Area) Append(s string) error {
	return a.InsertText(a.buf.Len(), s)
}

// ReplaceSelection replaces the selection with s and leaves the caret after
// the inserted text. A rectangular selection is replaced row by row: the
// n-th line of s replaces the rectangle's n-th row, and lines of s beyond
// the rectangle are added below its last line.
func (a *Area) ReplaceSelection(s string) error {
	if err := a.checkEditable("replace selection"); err != nil {
		return err
	}
	err := a.buf.Compound(func() error {
		if a.rect {
			return a.replaceRect(s)
		}
		if err := a.buf.Remove(a.selStart, a.selEnd-a.selStart); err != nil {
			return err
		}
		return a.buf.Insert(min(a.selStart, a.buf.Len()), s)
	})
	if err != nil {
		return err
	}
	return a.SetCaretPosition(a.selEnd)
}

func (a *Area) replaceRect(s string) error {
	start, end := a.rectColumns()
	first, last := a.selStartLine, a.selEndLine
	text := []rune(s)

	lastNL, currNL := 0, 0
	for i := first; i <= last; i++ {
		ls, le := a.buf.LineStart(i), a.buf.LineEnd(i)
		rs := min(le, ls+start)
		if err := a.buf.Remove(rs, min(le-rs, end-start)); err != nil {
			return err
		}
		currNL = indexRune(text, '\n', lastNL)
		if err := a.buf.Insert(rs, string(text[lastNL:currNL])); err != nil {
			return err
		}
		lastNL = min(len(text), currNL+1)
	}
	if currNL != len(text) {
		off := a.buf.LineEnd(last)
		if err := a.buf.Insert(off, "\n"+string(text[currNL+1:])); err != nil {
			return err
		}
	}
	return nil
}

// indexRune returns the index of r in s at or after from, or len(s).
func indexRune(s []rune, r rune, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == r {
			return i
		}
	}
	return len(s)
}

// TypeText replaces the selection with s. In overwrite mode with an empty
// selection it overstrikes len(s) runes, unless that would reach the end of
// the line.
func (a *Area) TypeText(s string) error {
	if !a.overwrite || a.selStart != a.selEnd {
		return a.ReplaceSelection(s)
	}
	caret := a.CaretPosition()
	n := len([]rune(s))
	if a.buf.LineEnd(a.CaretLine())-caret < n {
		return a.ReplaceSelection(s)
	}
	if err := a.checkEditable("overwrite"); err != nil {
		return err
	}
	return a.buf.Replace(caret, n, s)
}

// Undo reverts the last significant edit; it rings the bell when there is
// nothing to undo.
func (a *Area) Undo() bool {
	if !a.buf.Undo() {
		a.log.Debug().Msg("nothing to undo")
		a.beep("undo")
		return false
	}
	return true
}

func (a *Area) Redo() bool {
	if !a.buf.Redo() {
		a.log.Debug().Msg("nothing to redo")
		a.beep("redo")
		return false
	}
	return true
}

func (a *Area) CanUndo() bool { return a.buf.CanUndo() }

func (a *Area) CanRedo() bool { return a.buf.CanRedo() }

// DiscardEdits clears the undo history.
func (a *Area) DiscardEdits() { a.buf.DiscardEdits() }

// Backspace deletes the selection, or the rune before the caret.
func (a *Area) Backspace() error {
	if a.selStart != a.selEnd {
		return a.ReplaceSelection("")
	}
	caret := a.CaretPosition()
	if caret == 0 {
		a.beep("backspace at start")
		return nil
	}
	return a.DeleteRange(caret-1, 1)
}

// Delete deletes the selection, or the rune after the caret.
func (a *Area) Delete() error {
	if a.selStart != a.selEnd {
		return a.ReplaceSelection("")
	}
	caret := a.CaretPosition()
	if caret == a.buf.Len() {
		a.beep("delete at end")
		return nil
	}
	return a.DeleteRange(caret, 1)
}

// InsertNewline breaks the line at the caret and repeats the leading
// whitespace of the current line.
func (a *Area) InsertNewline() error {
	text, _ := a.buf.LineText(a.CaretLine())
	return a.ReplaceSelection("\n" + leadingWhitespace(text))
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
