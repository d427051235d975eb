package textarea

import "testing"

func TestCommandNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands() {
		name := c.String()
		if name == "unknown" {
			t.Fatalf("command %d has no name", c)
		}
		if seen[name] {
			t.Fatalf("duplicate name %q", name)
		}
		seen[name] = true

		got, ok := ParseCommand(name)
		if !ok || got != c {
			t.Fatalf("ParseCommand(%q)=(%v,%v), want (%v,true)", name, got, ok, c)
		}
	}
	if _, ok := ParseCommand("fly"); ok {
		t.Fatalf("ParseCommand(fly) resolved")
	}
	if got := Command(250).String(); got != "unknown" {
		t.Fatalf("out of range name=%q, want unknown", got)
	}
}

func TestEveryCommandHasHandler(t *testing.T) {
	for _, c := range Commands() {
		if handlers[c] == nil {
			t.Fatalf("%s has no handler", c)
		}
	}
	a := newArea(t, "x")
	if a.Execute(CmdNone) || a.Execute(Command(250)) {
		t.Fatalf("expected CmdNone and unknown commands to do nothing")
	}
}

func TestCharMoves(t *testing.T) {
	bell := &bellCounter{}
	a := New(Options{Text: "abc", Notifier: bell})

	if a.Execute(CharLeft) {
		t.Fatalf("CharLeft at start should fail")
	}
	if bell.n != 1 {
		t.Fatalf("bells=%d, want 1", bell.n)
	}

	mustExec(t, a, CharRight, SelectCharRight, SelectCharRight)
	assertSel(t, a, 1, 3)

	if a.Execute(SelectCharRight) {
		t.Fatalf("SelectCharRight at end should fail")
	}
	if bell.n != 2 {
		t.Fatalf("bells=%d, want 2", bell.n)
	}

	// Collapses to the selection start.
	mustExec(t, a, CharLeft)
	assertCaret(t, a, 1)
	if a.HasSelection() {
		t.Fatalf("expected CharLeft to collapse the selection")
	}

	mustExec(t, a, SelectCharLeft)
	assertCaret(t, a, 0)
	if got := a.MarkPosition(); got != 1 {
		t.Fatalf("mark=%d, want 1", got)
	}
}

func TestLineMovesKeepMagicCaret(t *testing.T) {
	bell := &bellCounter{}
	a := New(Options{Text: "abcdef\nab\nabcdef", Notifier: bell})
	mustNoErr(t, "set caret", a.SetCaretPosition(4))

	mustExec(t, a, LineDown)
	assertCaret(t, a, 9)
	if got := a.MagicCaret(); got != 4 {
		t.Fatalf("magic caret=%d, want 4", got)
	}

	mustExec(t, a, LineDown)
	assertCaret(t, a, 14)

	if a.Execute(LineDown) {
		t.Fatalf("LineDown on the last line should fail")
	}
	if bell.n != 1 {
		t.Fatalf("bells=%d, want 1", bell.n)
	}

	mustExec(t, a, SelectLineUp)
	assertSel(t, a, 9, 14)
	if !a.BiasLeft() {
		t.Fatalf("expected left bias after SelectLineUp")
	}

	mustExec(t, a, LineUp)
	assertCaret(t, a, 4)
	if a.Execute(LineUp) {
		t.Fatalf("LineUp on the first line should fail")
	}
}

func TestWordMoves(t *testing.T) {
	a := newArea(t, "foo bar\nbaz")

	for _, want := range []int{3, 4} {
		mustExec(t, a, WordRight)
		assertCaret(t, a, want)
	}
	mustExec(t, a, WordLeft)
	assertCaret(t, a, 3)

	// Steps over the line break.
	mustNoErr(t, "set caret", a.SetCaretPosition(7))
	mustExec(t, a, WordRight)
	assertCaret(t, a, 8)

	mustExec(t, a, SelectWordRight)
	assertSel(t, a, 8, 11)
	if a.Execute(WordRight) {
		t.Fatalf("WordRight at the end should fail")
	}
}

func TestLineAndDocBounds(t *testing.T) {
	a := newArea(t, "ab\ncde\nf")
	mustNoErr(t, "set caret", a.SetCaretPosition(4))

	mustExec(t, a, End)
	assertCaret(t, a, 6)
	mustExec(t, a, SelectHome)
	assertSel(t, a, 3, 6)
	mustExec(t, a, Home)
	assertCaret(t, a, 3)

	mustExec(t, a, SelectDocEnd)
	assertSel(t, a, 3, 8)
	mustExec(t, a, DocHome)
	assertCaret(t, a, 0)
	mustExec(t, a, SelectEnd)
	assertSel(t, a, 0, 2)
	mustExec(t, a, DocEnd)
	assertCaret(t, a, 8)
	mustExec(t, a, SelectDocHome)
	assertSel(t, a, 0, 8)
}

func TestPaging(t *testing.T) {
	a := New(Options{Text: lines(20), VisibleLines: 5})

	check := func(first, caretLine int) {
		t.Helper()
		if got := a.FirstLine(); got != first {
			t.Fatalf("first line=%d, want %d", got, first)
		}
		if got := a.CaretLine(); got != caretLine {
			t.Fatalf("caret line=%d, want %d", got, caretLine)
		}
	}

	mustExec(t, a, PageDown)
	check(5, 5)

	for i := 0; i < 5; i++ {
		a.Execute(PageDown)
	}
	check(15, 19)

	mustExec(t, a, PageUp)
	check(10, 14)
}

func TestEditingCommands(t *testing.T) {
	a := newArea(t, "a\nb")

	mustExec(t, a, InsertTab)
	assertText(t, a, "\ta\nb")

	// A multi-line selection is indented.
	a.SelectAll()
	mustExec(t, a, InsertTab)
	assertText(t, a, "\t\ta\n\tb")

	mustExec(t, a, Unindent)
	assertText(t, a, "\ta\nb")

	mustExec(t, a, Comment)
	assertText(t, a, "//\ta\n//b")

	mustExec(t, a, Undo)
	assertText(t, a, "\ta\nb")
	mustExec(t, a, Redo)
	assertText(t, a, "//\ta\n//b")

	mustExec(t, a, DocEnd, InsertNewline, Backspace, Backspace)
	assertText(t, a, "//\ta\n//")
	mustExec(t, a, DocHome, Delete)
	assertText(t, a, "/\ta\n//")
}

func TestReindentCommand(t *testing.T) {
	a := newArea(t, "func f() {\nx := 1\nif y {\nz()\n}\n}")
	a.SelectAll()

	mustExec(t, a, Reindent)
	assertText(t, a, "func f() {\n\tx := 1\n\tif y {\n\t\tz()\n\t}\n}")

	mustExec(t, a, Undo)
	assertText(t, a, "func f() {\nx := 1\nif y {\nz()\n}\n}")

	ro := New(Options{Text: "a {\nb", ReadOnly: true})
	ro.SelectAll()
	if ro.Execute(Reindent) {
		t.Fatalf("Reindent on a read-only area should fail")
	}
}

func TestEditingCommandsReadOnly(t *testing.T) {
	bell := &bellCounter{}
	a := New(Options{Text: "ab", ReadOnly: true, Notifier: bell})
	mustNoErr(t, "set caret", a.SetCaretPosition(1))

	if a.Execute(Backspace) || a.Execute(InsertTab) {
		t.Fatalf("edits on a read-only area should fail")
	}
	if bell.n != 2 {
		t.Fatalf("bells=%d, want 2", bell.n)
	}
	assertText(t, a, "ab")
}

func TestSelectionCommands(t *testing.T) {
	a := newArea(t, "one two\n(x)")

	mustExec(t, a, SelectAll)
	assertSel(t, a, 0, 11)

	mustNoErr(t, "set caret", a.SetCaretPosition(5))
	mustExec(t, a, SelectWord)
	assertSel(t, a, 4, 7)

	mustExec(t, a, SelectLine)
	assertSel(t, a, 0, 7)

	mustNoErr(t, "set caret", a.SetCaretPosition(11))
	mustExec(t, a, MatchBracket)
	assertSel(t, a, 8, 11)

	mustNoErr(t, "set caret", a.SetCaretPosition(10))
	mustExec(t, a, SelectBlock)
	assertSel(t, a, 8, 11)

	mustExec(t, a, ToggleRect)
	if !a.IsRectangular() {
		t.Fatalf("expected rectangular mode")
	}
	mustExec(t, a, ToggleOverwrite)
	if !a.IsOverwrite() {
		t.Fatalf("expected overwrite mode")
	}
}

func TestClipboardCommands(t *testing.T) {
	clip := &MemoryClipboard{}
	a := New(Options{Text: "hello world", Clipboard: clip, HistoryLimit: 10})

	if a.Execute(Copy) {
		t.Fatalf("Copy with nothing selected should fail")
	}

	mustNoErr(t, "select", a.Select(0, 6))
	mustExec(t, a, Cut)
	assertText(t, a, "world")

	mustExec(t, a, DocEnd, Paste)
	assertText(t, a, "worldhello ")

	mustNoErr(t, "write clipboard", clip.WriteText("a\r\nb\rc"))
	mustExec(t, a, Paste)
	assertText(t, a, "worldhello a\nb\nc")

	bare := New(Options{Text: "x"})
	bare.SelectAll()
	if bare.Execute(Copy) || bare.Execute(Paste) {
		t.Fatalf("clipboard commands without a clipboard should fail")
	}
}
