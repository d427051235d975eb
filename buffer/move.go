package buffer

import "github.com/iw2rmb/codearea/internal/grapheme"

type MoveUnit int

const (
	MoveRune MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
	// NoWordSep lists non-alphanumeric runes that belong to words.
	NoWordSep string
}

// Move returns the offset reached from off by m. ok is false when the move
// is blocked at a document edge.
func (b *Buffer) Move(off int, m Move) (next int, ok bool) {
	off = b.ClampOffset(off)
	switch m.Unit {
	case MoveRune:
		return b.moveRune(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir, m.NoWordSep)
	case MoveLine:
		line := b.lineOf(off)
		switch m.Dir {
		case DirHome, DirLeft:
			return b.starts[line], true
		default:
			return b.LineEnd(line), true
		}
	case MoveDoc:
		switch m.Dir {
		case DirHome, DirLeft:
			return 0, true
		default:
			return len(b.text), true
		}
	default:
		return off, false
	}
}

func (b *Buffer) moveRune(off int, dir MoveDir) (int, bool) {
	switch dir {
	case DirLeft:
		if off == 0 {
			return off, false
		}
		return off - 1, true
	case DirRight:
		if off == len(b.text) {
			return off, false
		}
		return off + 1, true
	case DirHome:
		return b.starts[b.lineOf(off)], true
	default:
		return b.LineEnd(b.lineOf(off)), true
	}
}

// Word moves stop at line edges before crossing into the neighbour line.
func (b *Buffer) moveWord(off int, dir MoveDir, noWordSep string) (int, bool) {
	line := b.lineOf(off)
	start := b.starts[line]
	text := b.text[start:b.LineEnd(line)]
	col := off - start

	switch dir {
	case DirLeft:
		if col == 0 {
			if line == 0 {
				return off, false
			}
			return off - 1, true
		}
		return start + grapheme.FindWordStart(text, col, noWordSep), true
	case DirRight:
		if col == len(text) {
			if line == len(b.starts)-1 {
				return off, false
			}
			return off + 1, true
		}
		return start + grapheme.FindWordEnd(text, col+1, noWordSep), true
	case DirHome:
		return start, true
	default:
		return start + len(text), true
	}
}
