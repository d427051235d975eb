package buffer

import (
	"fmt"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables history
}

// Buffer is the document: a flat rune sequence with an incrementally
// maintained line index and an undo history.
type Buffer struct {
	text    []rune
	starts  []int
	version uint64

	listeners []listenerEntry
	nextID    int

	opt  Options
	hist historyState
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	b := &Buffer{
		text: []rune(text),
		opt:  opt,
	}
	b.starts = indexLines(b.text)
	return b
}

func (b *Buffer) Text() string { return string(b.text) }

func (b *Buffer) Len() int { return len(b.text) }

// Version increments on every content mutation.
func (b *Buffer) Version() uint64 { return b.version }

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end int) (string, error) {
	if start < 0 || end > len(b.text) || start > end {
		return "", fmt.Errorf("slice [%d,%d) of %d: %w", start, end, len(b.text), ErrOutOfRange)
	}
	return string(b.text[start:end]), nil
}

// RuneAt returns the rune at off.
func (b *Buffer) RuneAt(off int) (rune, bool) {
	if off < 0 || off >= len(b.text) {
		return 0, false
	}
	return b.text[off], true
}

// SetText replaces the whole document and discards the undo history.
func (b *Buffer) SetText(s string) {
	b.BeginCompound()
	if len(b.text) > 0 {
		b.remove(0, len(b.text))
	}
	if s != "" {
		b.insert(0, []rune(s))
	}
	b.EndCompound()
	b.DiscardEdits()
}
