package textarea

import (
	"context"
	"errors"
	"testing"

	"github.com/iw2rmb/codearea/buffer"
)

func selection(a *Area) [2]int { return [2]int{a.SelectionStart(), a.SelectionEnd()} }

func mustFind(t *testing.T, a *Area, opt FindOptions, start, end int) {
	t.Helper()
	if !a.Find(opt) {
		t.Fatalf("Find(%q) found nothing", opt.Pattern)
	}
	assertSel(t, a, start, end)
}

func assertErrIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("err=%v, want %v", err, target)
	}
}

func TestFindWraps(t *testing.T) {
	a := newArea(t, "foo bar foo")
	opt := FindOptions{Pattern: "foo"}

	mustFind(t, a, opt, 0, 3)
	mustFind(t, a, opt, 8, 11)
	// Wraps to the start.
	mustFind(t, a, opt, 0, 3)
}

func TestFindSkipsLeftBiasedMatch(t *testing.T) {
	a := newArea(t, "foo bar foo")
	mustNoErr(t, "select", a.Select(3, 0))
	opt := FindOptions{Pattern: "foo"}

	mustFind(t, a, opt, 8, 11)
	mustFind(t, a, opt, 0, 3)
	mustFind(t, a, opt, 8, 11)
}

func TestFindOptions(t *testing.T) {
	tests := []struct {
		name string
		text string
		opt  FindOptions
		want [2]int
	}{
		{"case folded", "Foo foo", FindOptions{Pattern: "foo"}, [2]int{0, 3}},
		{"match case", "Foo foo", FindOptions{Pattern: "foo", MatchCase: true}, [2]int{4, 7}},
		{"whole word skips prefix", "foobar foo", FindOptions{Pattern: "foo", WholeWord: true}, [2]int{7, 10}},
		{"whole word rejects dollar", "$foo foo", FindOptions{Pattern: "foo", WholeWord: true}, [2]int{5, 8}},
		{"non ascii fold", "ÄBC äbc", FindOptions{Pattern: "äbc"}, [2]int{0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArea(t, tt.text)
			mustFind(t, a, tt.opt, tt.want[0], tt.want[1])
		})
	}
}

func TestFindFromOrigin(t *testing.T) {
	a := newArea(t, "ab ab ab")
	mustNoErr(t, "set caret", a.SetCaretPosition(4))

	// origin after the caret: only [0, origin) is searched.
	if !a.FindFrom(FindOptions{Pattern: "ab"}, 6) {
		t.Fatalf("FindFrom found nothing")
	}
	assertSel(t, a, 0, 2)
}

func TestFindMissAndEmpty(t *testing.T) {
	a := newArea(t, "hello")
	mustNoErr(t, "select", a.Select(1, 2))

	if a.Find(FindOptions{}) || a.Find(FindOptions{Pattern: "xyz"}) {
		t.Fatalf("expected no match")
	}
	assertSel(t, a, 1, 2)
}

func TestFindSelectedMatchIsQuiet(t *testing.T) {
	a := newArea(t, "foo")
	mustNoErr(t, "select", a.Select(0, 3))
	fired := 0
	a.AddCaretListener(CaretListenerFunc(func(CaretEvent) { fired++ }))

	mustFind(t, a, FindOptions{Pattern: "foo"}, 0, 3)
	if fired != 0 {
		t.Fatalf("caret events=%d, want 0", fired)
	}
}

func TestFindRequestsFocus(t *testing.T) {
	f := NewFocusContext()
	a := New(Options{Text: "one", Focus: f})
	b := New(Options{Text: "two", Focus: f})
	f.SetFocused(a)

	if !b.Find(FindOptions{Pattern: "w"}) {
		t.Fatalf("Find(w) found nothing")
	}
	if f.Focused() != b || a.HasFocus() {
		t.Fatalf("expected focus to move to the searched area")
	}
}

func TestReplaceCurrentMatch(t *testing.T) {
	a := newArea(t, "one two one")

	assertErrIs(t, a.ReplaceCurrentMatch("x"), ErrNoMatch)

	mustFind(t, a, FindOptions{Pattern: "one"}, 0, 3)
	mustNoErr(t, "replace", a.ReplaceCurrentMatch("1"))
	assertText(t, a, "1 two one")

	mustNoErr(t, "select", a.Select(2, 5))
	assertErrIs(t, a.ReplaceCurrentMatch("2"), ErrNoMatch)
	assertText(t, a, "1 two one")
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		opt   FindOptions
		repl  string
		want  string
		count int
	}{
		{"from the middle", "a foo b foo c foo", 8, FindOptions{Pattern: "foo"}, "bar", "a bar b bar c bar", 3},
		{"replacement contains pattern", "x x x", 0, FindOptions{Pattern: "x"}, "xx", "xx xx xx", 3},
		{"replacement contains pattern from the middle", "x x x", 2, FindOptions{Pattern: "x"}, "xx", "xx xx xx", 3},
		{"shrinking replacement", "abab ab", 5, FindOptions{Pattern: "ab"}, "", " ", 3},
		{"whole words only", "foo food foo", 0, FindOptions{Pattern: "foo", WholeWord: true}, "F", "F food F", 2},
		{"no match", "abc", 0, FindOptions{Pattern: "z"}, "y", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArea(t, tt.text)
			mustNoErr(t, "set caret", a.SetCaretPosition(tt.caret))

			n, err := a.ReplaceAll(context.Background(), tt.opt, tt.repl)
			mustNoErr(t, "replace all", err)
			if n != tt.count {
				t.Fatalf("count=%d, want %d", n, tt.count)
			}
			assertText(t, a, tt.want)
		})
	}
}

func TestReplaceAllUndoesOneAtATime(t *testing.T) {
	a := newArea(t, "a a a")
	n, err := a.ReplaceAll(context.Background(), FindOptions{Pattern: "a"}, "b")
	mustNoErr(t, "replace all", err)
	if n != 3 {
		t.Fatalf("count=%d, want 3", n)
	}

	if !a.Undo() {
		t.Fatalf("Undo()=false, want true")
	}
	assertText(t, a, "b b a")
}

func TestReplaceAllCancel(t *testing.T) {
	a := newArea(t, "a a a")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.Buffer().AddListener(buffer.ListenerFunc(func(ev buffer.Event) {
		if ev.Kind == buffer.Inserted {
			cancel()
		}
	}))

	n, err := a.ReplaceAll(ctx, FindOptions{Pattern: "a"}, "b")
	assertErrIs(t, err, context.Canceled)
	if n != 1 {
		t.Fatalf("count=%d, want 1", n)
	}
	assertText(t, a, "b a a")
}

func TestReplaceAllReadOnly(t *testing.T) {
	a := New(Options{Text: "a", ReadOnly: true})
	_, err := a.ReplaceAll(context.Background(), FindOptions{Pattern: "a"}, "b")
	assertErrIs(t, err, ErrReadOnly)
}
