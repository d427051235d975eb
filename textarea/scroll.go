package textarea

import "github.com/iw2rmb/codearea/token"

const (
	scrollPadLeft  = 5
	scrollPadRight = 15
)

// SetVisibleLines sets how many lines fit the viewport. Zero means the
// viewport is not sized yet.
func (a *Area) SetVisibleLines(n int) { a.visibleLines = max(n, 0) }

func (a *Area) VisibleLines() int { return a.visibleLines }

// SetWidth sets the width of the text region in metric units.
func (a *Area) SetWidth(w int) { a.width = max(w, 0) }

func (a *Area) Width() int { return a.width }

// ElectricScroll is the number of lines kept visible above and below the
// caret.
func (a *Area) ElectricScroll() int { return a.electric }

func (a *Area) SetElectricScroll(n int) { a.electric = max(n, 0) }

func (a *Area) LineHeight() int { return a.lineHeight }

func (a *Area) SetLineHeight(h int) {
	if h > 0 {
		a.lineHeight = h
	}
}

func (a *Area) FirstLine() int { return a.firstLine }

func (a *Area) SetFirstLine(line int) { a.firstLine = max(line, 0) }

func (a *Area) HorizontalOffset() int { return a.mapper.HorizontalOffset() }

func (a *Area) SetHorizontalOffset(x int) { a.mapper.SetHorizontalOffset(x) }

// SetOrigin sets the first visible line and horizontal offset together and
// reports whether either changed.
func (a *Area) SetOrigin(first, hoff int) bool {
	changed := false
	if hoff != a.mapper.HorizontalOffset() {
		a.mapper.SetHorizontalOffset(hoff)
		changed = true
	}
	if first != a.firstLine {
		a.firstLine = first
		changed = true
	}
	return changed
}

// ScrollToCaret scrolls so the caret is visible.
func (a *Area) ScrollToCaret() bool {
	line := a.CaretLine()
	col := max(0, min(a.buf.LineLen(line)-1, a.CaretColumn()))
	return a.ScrollTo(line, col)
}

// ScrollTo scrolls so column col of line is visible, keeping ElectricScroll
// lines of context. It reports whether the origin changed.
func (a *Area) ScrollTo(line, col int) bool {
	if a.visibleLines == 0 {
		first := max(0, line-a.electric)
		changed := first != a.firstLine
		a.firstLine = first
		return changed
	}

	first := a.firstLine
	hoff := a.mapper.HorizontalOffset()

	if line < a.firstLine+a.electric {
		first = max(0, line-a.electric)
	} else if line+a.electric >= a.firstLine+a.visibleLines {
		first = line - a.visibleLines + a.electric + 1
		if first+a.visibleLines >= a.buf.LineCount() {
			first = a.buf.LineCount() - a.visibleLines
		}
		first = max(first, 0)
	}

	if a.width > 0 {
		x := a.mapper.OffsetToX(line, col)
		w := a.mapper.Metrics().Advance('w', token.Null)
		if x < 0 {
			hoff = min(0, hoff-x+w+scrollPadLeft)
		} else if x+w >= a.width {
			hoff = hoff + (a.width - x) - w - scrollPadRight
		}
	}
	return a.SetOrigin(first, hoff)
}

// LineToY returns the y of line relative to the first visible line.
func (a *Area) LineToY(line int) int { return (line - a.firstLine) * a.lineHeight }

// YToLine returns the document line at y, clamped into the document.
func (a *Area) YToLine(y int) int {
	line := y/a.lineHeight + a.firstLine
	return max(0, min(a.buf.LineCount()-1, line))
}

// OffsetToX returns the x of column col in line.
func (a *Area) OffsetToX(line, col int) int { return a.mapper.OffsetToX(line, col) }

// XToOffset returns the column of line nearest to x.
func (a *Area) XToOffset(line, x int) int { return a.mapper.XToOffset(line, x) }

// XYToOffset returns the buffer offset under the point (x, y).
func (a *Area) XYToOffset(x, y int) int {
	line := a.YToLine(y)
	return a.buf.LineStart(line) + a.mapper.XToOffset(line, x)
}
