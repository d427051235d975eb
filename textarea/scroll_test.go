package textarea

import (
	"context"
	"strings"
	"testing"
	"time"
)

func lines(n int) string {
	return strings.TrimSuffix(strings.Repeat("l\n", n), "\n")
}

func assertInt(t *testing.T, what string, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: got %d, want %d", what, got, want)
	}
}

func TestScrollUnsizedFollowsCaret(t *testing.T) {
	a := New(Options{Text: lines(10), ElectricScroll: 2})
	mustNoErr(t, "set caret", a.SetCaretPosition(a.LineStart(5)))
	assertInt(t, "first line", a.FirstLine(), 3)
}

func TestScrollElectric(t *testing.T) {
	a := New(Options{Text: lines(20), VisibleLines: 5, ElectricScroll: 1})

	steps := []struct {
		line, first int
	}{
		{10, 7},
		{7, 6},
		{19, 15},
		{0, 0},
	}
	for _, s := range steps {
		mustNoErr(t, "set caret", a.SetCaretPosition(a.LineStart(s.line)))
		if got := a.FirstLine(); got != s.first {
			t.Fatalf("caret on line %d: first line=%d, want %d", s.line, got, s.first)
		}
	}
}

func TestScrollHorizontal(t *testing.T) {
	a := New(Options{Text: strings.Repeat("x", 100), VisibleLines: 1, Width: 20})

	mustNoErr(t, "set caret", a.SetCaretPosition(50))
	assertInt(t, "horizontal offset", a.HorizontalOffset(), -46)
	assertInt(t, "x of col 50", a.OffsetToX(0, 50), 4)

	mustNoErr(t, "set caret", a.SetCaretPosition(0))
	assertInt(t, "horizontal offset", a.HorizontalOffset(), 0)
}

func TestEditAboveFirstLineShiftsIt(t *testing.T) {
	a := New(Options{Text: lines(20), VisibleLines: 5})
	mustNoErr(t, "set caret", a.SetCaretPosition(a.LineStart(12)))
	a.SetFirstLine(10)

	mustNoErr(t, "insert", a.InsertText(0, "\n"))
	assertInt(t, "first line", a.FirstLine(), 11)
	assertInt(t, "caret line", a.CaretLine(), 13)
}

func TestCoordinates(t *testing.T) {
	a := New(Options{Text: "abc\ndef\nghi", VisibleLines: 5})
	a.SetFirstLine(1)

	assertInt(t, "LineToY(1)", a.LineToY(1), 0)
	assertInt(t, "LineToY(0)", a.LineToY(0), -1)
	assertInt(t, "YToLine(0)", a.YToLine(0), 1)
	// Clamped to the last line.
	assertInt(t, "YToLine(40)", a.YToLine(40), 2)
	assertInt(t, "XYToOffset(2,0)", a.XYToOffset(2, 0), 6)
	assertInt(t, "XYToOffset(99,1)", a.XYToOffset(99, 1), 11)

	if !a.SetOrigin(0, -2) {
		t.Fatalf("SetOrigin changed nothing")
	}
	if a.SetOrigin(0, -2) {
		t.Fatalf("repeated SetOrigin reported a change")
	}
	assertInt(t, "XToOffset(0,-2)", a.XToOffset(0, -2), 0)
}

func TestFocusContext(t *testing.T) {
	f := NewFocusContext()
	a := New(Options{Text: "a", Focus: f})
	b := New(Options{Text: "b", Focus: f})

	if a.IsCaretVisible() {
		t.Fatalf("caret visible before focus")
	}

	f.SetFocused(a)
	if !a.HasFocus() || !a.IsCaretVisible() {
		t.Fatalf("focused area should show its caret")
	}

	for _, want := range []bool{false, true} {
		f.Blink()
		if got := a.IsCaretVisible(); got != want {
			t.Fatalf("after blink: visible=%v, want %v", got, want)
		}
	}

	f.SetFocused(b)
	if a.IsCaretVisible() || !b.IsCaretVisible() {
		t.Fatalf("caret should follow focus to b")
	}
	if f.Focused() != b {
		t.Fatalf("Focused()=%p, want %p", f.Focused(), b)
	}

	f.SetFocused(nil)
	if f.Focused() != nil || b.HasFocus() {
		t.Fatalf("expected no focused area")
	}
}

func TestBlinkEpoch(t *testing.T) {
	a := New(Options{Text: "abc"})
	e := a.BlinkEpoch()

	a.BlinkCaret()
	if a.IsCaretVisible() {
		t.Fatalf("caret visible after blink")
	}

	// Caret moves restart the blink.
	mustNoErr(t, "set caret", a.SetCaretPosition(2))
	if got := a.BlinkEpoch(); got <= e {
		t.Fatalf("epoch=%d, want > %d", got, e)
	}
	if !a.IsCaretVisible() {
		t.Fatalf("caret hidden after a move")
	}

	steady := New(Options{Text: "x", NoBlink: true})
	steady.BlinkCaret()
	steady.BlinkCaret()
	if !steady.IsCaretVisible() {
		t.Fatalf("non-blinking caret hidden")
	}
}

func TestRunBlinker(t *testing.T) {
	f := NewFocusContext()
	a := New(Options{Text: "a", Focus: f})
	f.SetFocused(a)

	ctx, cancel := context.WithCancel(context.Background())
	posted := make(chan func())
	done := make(chan struct{})
	go func() {
		defer close(done)
		RunBlinker(ctx, f, time.Millisecond, func(fn func()) {
			select {
			case posted <- fn:
			case <-ctx.Done():
			}
		})
	}()

	fn := <-posted
	fn()
	if a.IsCaretVisible() {
		t.Fatalf("caret visible after a posted blink")
	}

	cancel()
	<-done
}

func TestLineHeightAndElectricSetters(t *testing.T) {
	a := New(Options{Text: lines(10)})
	a.SetLineHeight(2)
	// Non-positive heights are ignored.
	a.SetLineHeight(0)
	assertInt(t, "line height", a.LineHeight(), 2)
	assertInt(t, "LineToY(3)", a.LineToY(3), 6)
	assertInt(t, "YToLine(5)", a.YToLine(5), 2)

	a.SetElectricScroll(-1)
	assertInt(t, "electric scroll", a.ElectricScroll(), 0)

	a.SetBlockCaret(true)
	if !a.IsBlockCaret() {
		t.Fatalf("expected block caret")
	}
}
