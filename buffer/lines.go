package buffer

import (
	"fmt"
	"slices"
	"sort"
)

func indexLines(text []rune) []int {
	starts := []int{0}
	for i, r := range text {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// LineCount returns the number of lines. An empty document has one line.
func (b *Buffer) LineCount() int { return len(b.starts) }

// LineOf returns the 0-based line containing off.
func (b *Buffer) LineOf(off int) (int, error) {
	if off < 0 || off > len(b.text) {
		return -1, fmt.Errorf("offset %d of %d: %w", off, len(b.text), ErrOutOfRange)
	}
	return b.lineOf(off), nil
}

func (b *Buffer) lineOf(off int) int {
	return sort.Search(len(b.starts), func(i int) bool { return b.starts[i] > off }) - 1
}

// LineStart returns the offset of the first rune of line, or -1.
func (b *Buffer) LineStart(line int) int {
	if line < 0 || line >= len(b.starts) {
		return -1
	}
	return b.starts[line]
}

// LineEnd returns the offset just past the last content rune of line (the
// offset of its '\n', or Len on the last line), or -1.
func (b *Buffer) LineEnd(line int) int {
	if line < 0 || line >= len(b.starts) {
		return -1
	}
	if line+1 < len(b.starts) {
		return b.starts[line+1] - 1
	}
	return len(b.text)
}

// LineLen returns the rune length of line without its terminator, or -1.
func (b *Buffer) LineLen(line int) int {
	start := b.LineStart(line)
	if start < 0 {
		return -1
	}
	return b.LineEnd(line) - start
}

func (b *Buffer) LineText(line int) (string, bool) {
	start := b.LineStart(line)
	if start < 0 {
		return "", false
	}
	return string(b.text[start:b.LineEnd(line)]), true
}

// MaxLineLen returns the longest line and its length. Ties keep the first.
func (b *Buffer) MaxLineLen() (line, n int) {
	for i := range b.starts {
		if l := b.LineLen(i); l > n {
			line, n = i, l
		}
	}
	return line, n
}

func (b *Buffer) reindexInsert(line, off int, ins []rune) int {
	var added []int
	for i, r := range ins {
		if r == '\n' {
			added = append(added, off+i+1)
		}
	}
	for i := line + 1; i < len(b.starts); i++ {
		b.starts[i] += len(ins)
	}
	if len(added) > 0 {
		b.starts = slices.Insert(b.starts, line+1, added...)
	}
	return len(added)
}

func (b *Buffer) reindexRemove(off, n int) int {
	lo := sort.Search(len(b.starts), func(i int) bool { return b.starts[i] > off })
	hi := sort.Search(len(b.starts), func(i int) bool { return b.starts[i] > off+n })
	b.starts = slices.Delete(b.starts, lo, hi)
	for i := lo; i < len(b.starts); i++ {
		b.starts[i] -= n
	}
	return hi - lo
}
