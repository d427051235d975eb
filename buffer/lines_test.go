package buffer

import (
	"errors"
	"testing"
)

func TestBuffer_LineIndex(t *testing.T) {
	b := New("ab\ncde\n\nf", Options{})

	if got, want := b.LineCount(), 4; got != want {
		t.Fatalf("LineCount=%d, want %d", got, want)
	}

	cases := []struct {
		line       int
		start, end int
		text       string
	}{
		{line: 0, start: 0, end: 2, text: "ab"},
		{line: 1, start: 3, end: 6, text: "cde"},
		{line: 2, start: 7, end: 7, text: ""},
		{line: 3, start: 8, end: 9, text: "f"},
	}
	for _, tc := range cases {
		if got := b.LineStart(tc.line); got != tc.start {
			t.Fatalf("LineStart(%d)=%d, want %d", tc.line, got, tc.start)
		}
		if got := b.LineEnd(tc.line); got != tc.end {
			t.Fatalf("LineEnd(%d)=%d, want %d", tc.line, got, tc.end)
		}
		if got, ok := b.LineText(tc.line); !ok || got != tc.text {
			t.Fatalf("LineText(%d)=(%q,%v), want %q", tc.line, got, ok, tc.text)
		}
	}
}

func TestBuffer_LineIndex_InvalidLineIsMinusOne(t *testing.T) {
	b := New("ab\ncd", Options{})
	for _, line := range []int{-1, 2, 100} {
		if got := b.LineStart(line); got != -1 {
			t.Fatalf("LineStart(%d)=%d, want -1", line, got)
		}
		if got := b.LineEnd(line); got != -1 {
			t.Fatalf("LineEnd(%d)=%d, want -1", line, got)
		}
		if got := b.LineLen(line); got != -1 {
			t.Fatalf("LineLen(%d)=%d, want -1", line, got)
		}
		if _, ok := b.LineText(line); ok {
			t.Fatalf("LineText(%d) ok, want !ok", line)
		}
	}
}

func TestBuffer_LineOf(t *testing.T) {
	b := New("ab\ncd", Options{})

	cases := []struct {
		off  int
		want int
	}{
		{0, 0}, {1, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 1},
	}
	for _, tc := range cases {
		got, err := b.LineOf(tc.off)
		if err != nil {
			t.Fatalf("LineOf(%d): %v", tc.off, err)
		}
		if got != tc.want {
			t.Fatalf("LineOf(%d)=%d, want %d", tc.off, got, tc.want)
		}
	}

	for _, off := range []int{-1, 6} {
		if _, err := b.LineOf(off); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("LineOf(%d) err=%v, want ErrOutOfRange", off, err)
		}
	}
}

func TestBuffer_LineIndex_TracksEdits(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})

	if err := b.Insert(4, "x\ny\n"); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	assertIndexMatchesRescan(t, b)

	if err := b.Remove(2, 6); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	assertIndexMatchesRescan(t, b)

	if err := b.Replace(0, b.Len(), "a\n\n\nb"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	assertIndexMatchesRescan(t, b)
	if got, want := b.LineCount(), 4; got != want {
		t.Fatalf("LineCount=%d, want %d", got, want)
	}
}

func TestBuffer_MaxLineLen(t *testing.T) {
	b := New("ab\nabcd\nabcd\na", Options{})
	line, n := b.MaxLineLen()
	if line != 1 || n != 4 {
		t.Fatalf("MaxLineLen=(%d,%d), want (1,4)", line, n)
	}
}

func assertIndexMatchesRescan(t *testing.T, b *Buffer) {
	t.Helper()
	want := indexLines([]rune(b.Text()))
	if len(want) != len(b.starts) {
		t.Fatalf("starts=%v, want %v (text %q)", b.starts, want, b.Text())
	}
	for i := range want {
		if want[i] != b.starts[i] {
			t.Fatalf("starts=%v, want %v (text %q)", b.starts, want, b.Text())
		}
	}
}
