package textarea

import (
	"github.com/iw2rmb/codearea/token"
)

// Role tells a Canvas what a rectangle stands for; the canvas picks the
// look.
type Role uint8

const (
	RoleSelection Role = iota
	RoleLineHighlight
	RoleBracket
	RoleCaret
	RoleOverwriteCaret
	RoleError
	RoleDeprecated
	RoleBox
	RoleLink
)

var roleNames = [...]string{
	RoleSelection:      "selection",
	RoleLineHighlight:  "line-highlight",
	RoleBracket:        "bracket",
	RoleCaret:          "caret",
	RoleOverwriteCaret: "overwrite-caret",
	RoleError:          "error",
	RoleDeprecated:     "deprecated",
	RoleBox:            "box",
	RoleLink:           "link",
}

func (r Role) String() string {
	if int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Canvas is the drawing surface for one paint pass. Coordinates are in the
// mapper's x units and lines of LineHeight, relative to the viewport.
type Canvas interface {
	FillRect(r Rect, role Role)
	StrokeRect(r Rect, role Role)
	DrawText(x, y int, text string, c token.Category)
}

// Overlay paints decorations for a line and answers tooltip queries.
// Paint must not change the selection.
type Overlay interface {
	Paint(c Canvas, line, y int)
	TooltipAt(x, y int) (string, bool)
}

// AddOverlay appends o to the custom chain, painted after the selection and
// before the bracket and caret. The chain starts with the area's
// LocationHighlight.
func (a *Area) AddOverlay(o Overlay) {
	a.overlays = append(a.overlays, o)
}

// RemoveOverlay removes o from the chain.
func (a *Area) RemoveOverlay(o Overlay) bool {
	for i, x := range a.overlays {
		if x == o {
			a.overlays = append(a.overlays[:i:i], a.overlays[i+1:]...)
			return true
		}
	}
	return false
}

// Overlays returns the custom chain in paint order.
func (a *Area) Overlays() []Overlay {
	return append([]Overlay(nil), a.overlays...)
}

// Paint paints every visible line. With an unsized viewport every line is
// painted.
func (a *Area) Paint(c Canvas) {
	last := a.buf.LineCount() - 1
	if a.visibleLines > 0 {
		last = min(last, a.firstLine+a.visibleLines-1)
	}
	for line := a.firstLine; line <= last; line++ {
		a.PaintLine(c, line)
	}
}

// PaintLine paints the selection or current line, the custom chain, the
// matching bracket, the caret, and then the text of line.
func (a *Area) PaintLine(c Canvas, line int) {
	if line < 0 || line >= a.buf.LineCount() {
		return
	}
	y := a.LineToY(line)

	if line >= a.selStartLine && line <= a.selEndLine {
		a.paintSelection(c, line, y)
	}
	for _, o := range a.overlays {
		o.Paint(c, line, y)
	}
	if a.bracketHighlight && line == a.bracketLine {
		a.paintBracket(c, line, y)
	}
	if line == a.CaretLine() {
		a.paintCaret(c, line, y)
	}
	for _, r := range a.mapper.Runs(line) {
		if r.Text == "\t" {
			continue
		}
		c.DrawText(r.X, y, r.Text, r.Category)
	}
}

// TooltipAt returns the first tooltip offered by the chain at (x, y).
func (a *Area) TooltipAt(x, y int) (string, bool) {
	for _, o := range a.overlays {
		if s, ok := o.TooltipAt(x, y); ok {
			return s, true
		}
	}
	return "", false
}

func (a *Area) viewWidth(line int) int {
	if a.width > 0 {
		return a.width
	}
	return a.mapper.LineWidth(line) + a.mapper.HorizontalOffset() + 1
}

func (a *Area) paintSelection(c Canvas, line, y int) {
	h := a.lineHeight
	if a.selStart == a.selEnd {
		if a.lineHighlight {
			c.FillRect(Rect{X: 0, Y: y, W: a.viewWidth(line), H: h}, RoleLineHighlight)
		}
		return
	}

	ls := a.buf.LineStart(line)
	var x1, x2 int
	switch {
	case a.rect:
		n := a.buf.LineLen(line)
		x1 = a.mapper.OffsetToX(line, min(n, a.selStart-a.buf.LineStart(a.selStartLine)))
		x2 = a.mapper.OffsetToX(line, min(n, a.selEnd-a.buf.LineStart(a.selEndLine)))
		if x1 == x2 {
			x2++
		}
	case a.selStartLine == a.selEndLine:
		x1 = a.mapper.OffsetToX(line, a.selStart-ls)
		x2 = a.mapper.OffsetToX(line, a.selEnd-ls)
	case line == a.selStartLine:
		x1 = a.mapper.OffsetToX(line, a.selStart-ls)
		x2 = a.viewWidth(line)
	case line == a.selEndLine:
		x1 = 0
		x2 = a.mapper.OffsetToX(line, a.selEnd-ls)
	default:
		x1 = 0
		x2 = a.viewWidth(line)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	c.FillRect(Rect{X: x1, Y: y, W: x2 - x1, H: h}, RoleSelection)
}

func (a *Area) paintBracket(c Canvas, line, y int) {
	if a.bracketPos < 0 {
		return
	}
	x := a.mapper.OffsetToX(line, a.bracketPos)
	w := a.mapper.Metrics().Advance('(', token.Null)
	c.StrokeRect(Rect{X: x, Y: y, W: w, H: a.lineHeight}, RoleBracket)
}

func (a *Area) paintCaret(c Canvas, line, y int) {
	if !a.IsCaretVisible() {
		return
	}
	x := a.mapper.OffsetToX(line, a.CaretPosition()-a.buf.LineStart(line))
	w := 1
	if a.blockCaret || a.overwrite {
		w = a.mapper.Metrics().Advance('w', token.Null)
	}
	if a.overwrite {
		c.FillRect(Rect{X: x, Y: y + a.lineHeight - 1, W: w, H: 1}, RoleOverwriteCaret)
		return
	}
	c.StrokeRect(Rect{X: x, Y: y, W: w, H: a.lineHeight}, RoleCaret)
}
