package textarea

import (
	"errors"
	"fmt"
	"testing"

	"github.com/iw2rmb/codearea/buffer"
	"github.com/iw2rmb/codearea/token"
)

func newArea(t *testing.T, text string) *Area {
	t.Helper()
	return New(Options{Text: text, HistoryLimit: 100, VisibleLines: 20})
}

func mustNoErr(t *testing.T, what string, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", what, err)
	}
}

// mustExec runs each command and fails when one reports no effect.
func mustExec(t *testing.T, a *Area, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		if !a.Execute(c) {
			t.Fatalf("Execute(%s)=false, want true", c)
		}
	}
}

func assertText(t *testing.T, a *Area, want string) {
	t.Helper()
	if got := a.Text(); got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func assertSel(t *testing.T, a *Area, start, end int) {
	t.Helper()
	if got, want := selection(a), [2]int{start, end}; got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}
}

func assertCaret(t *testing.T, a *Area, want int) {
	t.Helper()
	if got := a.CaretPosition(); got != want {
		t.Fatalf("caret: got %d, want %d", got, want)
	}
}

type bellCounter struct{ n int }

func (b *bellCounter) Bell() { b.n++ }

// op is one recorded Canvas call.
type op struct {
	Kind string // fill, stroke, text
	Rect Rect
	Role Role
	Text string
	Cat  token.Category
}

func (o op) String() string {
	switch o.Kind {
	case "text":
		return fmt.Sprintf("text(%d,%d %q %s)", o.Rect.X, o.Rect.Y, o.Text, o.Cat)
	default:
		return fmt.Sprintf("%s(%s %v)", o.Kind, o.Role, o.Rect)
	}
}

type recordingCanvas struct {
	ops []op
}

func (c *recordingCanvas) FillRect(r Rect, role Role) {
	c.ops = append(c.ops, op{Kind: "fill", Rect: r, Role: role})
}

func (c *recordingCanvas) StrokeRect(r Rect, role Role) {
	c.ops = append(c.ops, op{Kind: "stroke", Rect: r, Role: role})
}

func (c *recordingCanvas) DrawText(x, y int, text string, cat token.Category) {
	c.ops = append(c.ops, op{Kind: "text", Rect: Rect{X: x, Y: y}, Text: text, Cat: cat})
}

func (c *recordingCanvas) roles() []Role {
	var out []Role
	for _, o := range c.ops {
		if o.Kind != "text" {
			out = append(out, o.Role)
		}
	}
	return out
}

func (c *recordingCanvas) find(role Role) (op, bool) {
	for _, o := range c.ops {
		if o.Kind != "text" && o.Role == role {
			return o, true
		}
	}
	return op{}, false
}

func TestNewDefaults(t *testing.T) {
	a := newArea(t, "one\ntwo")

	if got := a.Text(); got != "one\ntwo" {
		t.Fatalf("text=%q, want %q", got, "one\ntwo")
	}
	ints := []struct {
		name      string
		got, want int
	}{
		{"len", a.Len(), 7},
		{"line count", a.LineCount(), 2},
		{"caret", a.CaretPosition(), 0},
		{"magic caret", a.MagicCaret(), -1},
		{"line height", a.LineHeight(), 1},
		{"tab size", a.TabSize(), 4},
		{"overlays", len(a.Overlays()), 1},
	}
	for _, tc := range ints {
		if tc.got != tc.want {
			t.Fatalf("%s=%d, want %d", tc.name, tc.got, tc.want)
		}
	}
	if !a.IsEditable() {
		t.Fatalf("expected a new area to be editable")
	}
	if a.HasSelection() {
		t.Fatalf("expected no selection")
	}
}

func TestSetTextResetsState(t *testing.T) {
	a := newArea(t, "abc")
	if err := a.InsertText(3, "def"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := a.AddErrorHighlight("bad", buffer.Location{Line: 1, Column: 1}, buffer.Location{Line: 1, Column: 3}); err != nil {
		t.Fatalf("add error highlight: %v", err)
	}

	a.SetText("xyz\nw")

	if got := a.Text(); got != "xyz\nw" {
		t.Fatalf("text=%q, want %q", got, "xyz\nw")
	}
	if got := selection(a); got != [2]int{0, 0} {
		t.Fatalf("selection=%v, want [0 0]", got)
	}
	if got := a.Highlights().Len(); got != 0 {
		t.Fatalf("highlights=%d, want 0", got)
	}
	if a.CanUndo() {
		t.Fatalf("expected SetText to discard history")
	}
}

func TestReadOnlyRejectsEdits(t *testing.T) {
	a := New(Options{Text: "abc", ReadOnly: true})

	if err := a.InsertText(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("insert err=%v, want ErrReadOnly", err)
	}
	if err := a.DeleteRange(0, 1); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("delete err=%v, want ErrReadOnly", err)
	}
	if err := a.ReplaceSelection("x"); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("replace err=%v, want ErrReadOnly", err)
	}
	if got := a.Text(); got != "abc" {
		t.Fatalf("text=%q, want %q", got, "abc")
	}

	a.SetEditable(true)
	if err := a.InsertText(0, "x"); err != nil {
		t.Fatalf("insert after SetEditable: %v", err)
	}
	if got := a.Text(); got != "xabc" {
		t.Fatalf("text=%q, want %q", got, "xabc")
	}
}

func TestModifiedSince(t *testing.T) {
	a := newArea(t, "abc")

	if !a.IsModifiedSince("save") {
		t.Fatalf("unknown key should report modified")
	}

	a.ResetModifiedSince("save")
	if a.IsModifiedSince("save") {
		t.Fatalf("expected unmodified after reset")
	}

	if err := a.Append("!"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !a.IsModifiedSince("save") || !a.IsModifiedSince("other") {
		t.Fatalf("expected both keys modified after an edit")
	}

	a.ResetModifiedSince("save")
	if a.IsModifiedSince("save") {
		t.Fatalf("expected unmodified after second reset")
	}
}

func TestLocationConversion(t *testing.T) {
	a := newArea(t, "ab\ncd")

	loc, err := a.OffsetToLocation(4)
	if err != nil {
		t.Fatalf("OffsetToLocation: %v", err)
	}
	if want := (buffer.Location{Line: 2, Column: 2}); loc != want {
		t.Fatalf("loc=%v, want %v", loc, want)
	}

	off, err := a.LocationToOffset(buffer.Location{Line: 2, Column: 1})
	if err != nil {
		t.Fatalf("LocationToOffset: %v", err)
	}
	if off != 3 {
		t.Fatalf("offset=%d, want 3", off)
	}
}
