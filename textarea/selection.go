package textarea

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/codearea/buffer"
)

// Select sets the selection to [min(start,end), max(start,end)]. The caret
// sits at end, so start > end selects with a left bias. An end past the
// document is clamped to its length and a start past it becomes 0.
func (a *Area) Select(start, end int) error {
	newStart, newEnd, newBias := start, end, false
	if start > end {
		newStart, newEnd, newBias = end, start, true
	}
	n := a.buf.Len()
	if newEnd > n {
		newEnd = n
	}
	if newStart > n {
		newStart = 0
	}
	if newStart < 0 || newStart > newEnd {
		return fmt.Errorf("select %d,%d: %w", start, end, ErrInvalidRange)
	}

	if newStart != a.selStart || newEnd != a.selEnd || newBias != a.biasLeft {
		ev := CaretEvent{OldCaret: a.CaretPosition(), OldMark: a.MarkPosition()}

		caret := newEnd
		if newBias {
			caret = newStart
		}
		a.updateBracket(caret)

		a.buf.AddEdit(&caretEdit{a: a, start: a.selStart, end: a.selEnd, biasLeft: a.biasLeft})

		a.selStart, a.selEnd = newStart, newEnd
		a.selStartLine, a.selEndLine = a.lineOf(newStart), a.lineOf(newEnd)
		a.biasLeft = newBias

		ev.Caret, ev.Mark = a.CaretPosition(), a.MarkPosition()
		a.fireCaret(ev)
	}

	a.RestartBlink()
	if a.selStart == a.selEnd {
		a.rect = false
	}
	a.magicCaret = -1
	a.ScrollToCaret()
	return nil
}

// caretEdit restores a selection on undo. It never counts as an undo step
// of its own, and consecutive caret edits collapse into one.
type caretEdit struct {
	a          *Area
	start, end int
	biasLeft   bool
}

func (e *caretEdit) restore() {
	if e.biasLeft {
		_ = e.a.Select(e.end, e.start)
		return
	}
	_ = e.a.Select(e.start, e.end)
}

func (e *caretEdit) Undo() { e.restore() }

func (e *caretEdit) Redo() { e.restore() }

func (e *caretEdit) Significant() bool { return false }

func (e *caretEdit) Absorb(next buffer.Edit) bool {
	c, ok := next.(*caretEdit)
	if !ok || c.a != e.a {
		return false
	}
	e.start, e.end, e.biasLeft = c.start, c.end, c.biasLeft
	return true
}

func (a *Area) SelectionStart() int     { return a.selStart }
func (a *Area) SelectionEnd() int       { return a.selEnd }
func (a *Area) SelectionStartLine() int { return a.selStartLine }
func (a *Area) SelectionEndLine() int   { return a.selEndLine }

// HasSelection reports whether the selection is non-empty.
func (a *Area) HasSelection() bool { return a.selStart != a.selEnd }

// SelectionStartAt returns where the selection starts on line. Lines after
// the first start at the line start, or at the first line's column when
// the selection is rectangular.
func (a *Area) SelectionStartAt(line int) int {
	if line == a.selStartLine {
		return a.selStart
	}
	if a.rect {
		col := a.selStart - a.buf.LineStart(a.selStartLine)
		return min(a.buf.LineEnd(line), a.buf.LineStart(line)+col)
	}
	return a.buf.LineStart(line)
}

// SelectionEndAt is the counterpart of SelectionStartAt.
func (a *Area) SelectionEndAt(line int) int {
	if line == a.selEndLine {
		return a.selEnd
	}
	if a.rect {
		col := a.selEnd - a.buf.LineStart(a.selEndLine)
		return min(a.buf.LineEnd(line), a.buf.LineStart(line)+col)
	}
	return a.buf.LineEnd(line)
}

func (a *Area) SetSelectionStart(off int) error { return a.Select(off, a.selEnd) }

func (a *Area) SetSelectionEnd(off int) error { return a.Select(a.selStart, off) }

// BiasLeft reports whether the caret is at the selection start.
func (a *Area) BiasLeft() bool { return a.biasLeft }

func (a *Area) CaretPosition() int {
	if a.biasLeft {
		return a.selStart
	}
	return a.selEnd
}

func (a *Area) CaretLine() int {
	if a.biasLeft {
		return a.selStartLine
	}
	return a.selEndLine
}

// CaretColumn is the caret's 0-based rune offset within its line.
func (a *Area) CaretColumn() int {
	return a.CaretPosition() - a.buf.LineStart(a.CaretLine())
}

// CaretLocation returns the caret as a 1-based location.
func (a *Area) CaretLocation() buffer.Location {
	return buffer.Location{Line: a.CaretLine() + 1, Column: a.CaretColumn() + 1}
}

func (a *Area) MarkPosition() int {
	if a.biasLeft {
		return a.selEnd
	}
	return a.selStart
}

func (a *Area) MarkLine() int {
	if a.biasLeft {
		return a.selEndLine
	}
	return a.selStartLine
}

func (a *Area) SetCaretPosition(off int) error { return a.Select(off, off) }

func (a *Area) SelectAll() { _ = a.Select(0, a.buf.Len()) }

// SelectNone collapses the selection onto the caret.
func (a *Area) SelectNone() {
	c := a.CaretPosition()
	_ = a.Select(c, c)
}

// SelectLine selects the content of line, without its terminator.
func (a *Area) SelectLine(line int) error {
	start := a.buf.LineStart(line)
	if start < 0 {
		return fmt.Errorf("select line %d: %w", line, ErrInvalidRange)
	}
	return a.Select(start, a.buf.LineEnd(line))
}

func (a *Area) IsRectangular() bool { return a.rect }

// SetRectangular switches rectangular selection. It has no lasting effect
// while the selection is empty.
func (a *Area) SetRectangular(on bool) { a.rect = on }

// MagicCaret is the x position line moves try to keep, or -1.
func (a *Area) MagicCaret() int { return a.magicCaret }

func (a *Area) SetMagicCaret(x int) { a.magicCaret = x }

// rectColumns returns the rectangle's column span, ordered.
func (a *Area) rectColumns() (start, end int) {
	start = a.selStart - a.buf.LineStart(a.selStartLine)
	end = a.selEnd - a.buf.LineStart(a.selEndLine)
	if end < start {
		start, end = end, start
	}
	return start, end
}

// SelectedText returns the selected text; false when nothing is selected.
// A rectangular selection yields one row per line, joined by newlines,
// with rows cut short on short lines.
func (a *Area) SelectedText() (string, bool) {
	if a.selStart == a.selEnd {
		return "", false
	}
	if !a.rect {
		s, err := a.buf.Slice(a.selStart, a.selEnd)
		return s, err == nil
	}

	start, end := a.rectColumns()
	var sb strings.Builder
	for i := a.selStartLine; i <= a.selEndLine; i++ {
		ls, le := a.buf.LineStart(i), a.buf.LineEnd(i)
		from := min(ls+start, le)
		to := from + min(end-start, le-from)
		s, _ := a.buf.Slice(from, to)
		sb.WriteString(s)
		if i != a.selEndLine {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), true
}
