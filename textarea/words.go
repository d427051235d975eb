package textarea

import (
	"strings"

	"github.com/iw2rmb/codearea/buffer"
	"github.com/iw2rmb/codearea/internal/grapheme"
)

// CurrentWordBounds returns the word or separator run around the caret on
// the caret line, as buffer offsets.
func (a *Area) CurrentWordBounds(noWordSep string) (start, end int) {
	line := a.CaretLine()
	ls := a.buf.LineStart(line)
	text, _ := a.buf.LineText(line)
	runes := []rune(text)
	col := a.CaretPosition() - ls

	start = ls
	if col > 0 {
		start = ls + grapheme.FindWordStart(runes, col, noWordSep)
	}
	end = col
	if col < len(runes) {
		end = grapheme.FindWordEnd(runes, col, noWordSep)
	}
	return start, ls + end
}

func (a *Area) CurrentWord() string {
	start, end := a.CurrentWordBounds(a.noWordSep)
	s, _ := a.buf.Slice(start, end)
	return s
}

func (a *Area) SelectWord() {
	start, end := a.CurrentWordBounds(a.noWordSep)
	_ = a.Select(start, end)
}

const (
	openBrackets  = "([{"
	closeBrackets = ")]}"

	blockOpen  = "<({["
	blockClose = ">)}]"
)

// FindMatchingBracket returns the offset of the bracket matching the one at
// off, or -1. Only (), [] and {} pair up.
func (a *Area) FindMatchingBracket(off int) int {
	c, ok := a.buf.RuneAt(off)
	if !ok {
		return -1
	}
	if i := strings.IndexRune(openBrackets, c); i >= 0 {
		return a.scanBracket(off, c, rune(closeBrackets[i]), 1)
	}
	if i := strings.IndexRune(closeBrackets, c); i >= 0 {
		return a.scanBracket(off, c, rune(openBrackets[i]), -1)
	}
	return -1
}

func (a *Area) scanBracket(off int, c, match rune, step int) int {
	count := 1
	for i := off + step; ; i += step {
		x, ok := a.buf.RuneAt(i)
		if !ok {
			return -1
		}
		switch x {
		case c:
			count++
		case match:
			count--
			if count == 0 {
				return i
			}
		}
	}
}

// updateBracket records the bracket matching the one before caret.
func (a *Area) updateBracket(caret int) {
	a.bracketLine, a.bracketPos = -1, -1
	if caret == 0 {
		return
	}
	off := a.FindMatchingBracket(caret - 1)
	if off < 0 {
		return
	}
	a.bracketLine = a.lineOf(off)
	a.bracketPos = off - a.buf.LineStart(a.bracketLine)
}

// BracketLine returns the line of the bracket matching the one before the
// caret, or -1.
func (a *Area) BracketLine() int { return a.bracketLine }

// BracketPosition is the column of that bracket within BracketLine, or -1.
func (a *Area) BracketPosition() int { return a.bracketPos }

// SelectToMatchingBracket selects through the bracket matching the one
// before the caret, or the enclosing block when there is none.
func (a *Area) SelectToMatchingBracket() {
	caret := a.CaretPosition()
	off := -1
	if caret > 0 {
		off = a.FindMatchingBracket(caret - 1)
	}
	switch {
	case off < 0 || off == caret:
		a.SelectBlock()
	case off > caret:
		_ = a.Select(caret-1, off+1)
	default:
		_ = a.Select(off, caret)
	}
}

// SelectBlock selects from the nearest unbalanced opening bracket before
// the selection through its closing bracket.
func (a *Area) SelectBlock() {
	start, end := a.selStart, a.selEnd
	if start == 0 {
		a.beep("no block")
		return
	}

	count := 1
	var open, shut rune
scan:
	for start--; start >= 0; start-- {
		c, _ := a.buf.RuneAt(start)
		if i := strings.IndexRune(blockOpen, c); i >= 0 {
			count--
			if count == 0 {
				open, shut = c, rune(blockClose[i])
				break scan
			}
		} else if strings.ContainsRune(blockClose, c) {
			count++
		}
	}
	if open == 0 {
		a.beep("no block")
		return
	}

	count = 1
	n := a.buf.Len()
	for ; end < n; end++ {
		c, _ := a.buf.RuneAt(end)
		if c == shut {
			count--
			if count == 0 {
				end++
				break
			}
		} else if c == open {
			count++
		}
	}
	_ = a.Select(start, end)
}

// IndentLines inserts a tab at the start of each line in [first, last].
func (a *Area) IndentLines(first, last int) error {
	if err := a.checkEditable("indent"); err != nil {
		return err
	}
	a.editLines(first, last, func(string) (int, string) { return 0, "\t" })
	return nil
}

// UnindentLines removes a leading tab, or up to four leading spaces, from
// each line in [first, last].
func (a *Area) UnindentLines(first, last int) error {
	if err := a.checkEditable("unindent"); err != nil {
		return err
	}
	a.editLines(first, last, func(text string) (int, string) {
		if strings.HasPrefix(text, "\t") {
			return 1, ""
		}
		n := 0
		for n < 4 && n < len(text) && text[n] == ' ' {
			n++
		}
		return n, ""
	})
	return nil
}

// editLines replaces a prefix of each line in [first, last] as one undo
// step. prefix returns how many runes to drop and what to put there.
func (a *Area) editLines(first, last int, prefix func(text string) (int, string)) {
	last = min(last, a.buf.LineCount()-1)
	var edits []buffer.TextEdit
	// Bottom up, so earlier line starts stay put.
	for i := last; i >= max(first, 0); i-- {
		text, _ := a.buf.LineText(i)
		n, ins := prefix(text)
		if n == 0 && ins == "" {
			continue
		}
		edits = append(edits, buffer.TextEdit{Offset: a.buf.LineStart(i), Length: n, Text: ins})
	}
	a.buf.Apply(edits...)
}

// IndentSelection indents the selected lines.
func (a *Area) IndentSelection() error {
	return a.IndentLines(a.selStartLine, a.selEndLine)
}

func (a *Area) UnindentSelection() error {
	return a.UnindentLines(a.selStartLine, a.selEndLine)
}

// CommentLines toggles a "//" prefix on every selected line, or on the
// caret line when the selection is on one line.
func (a *Area) CommentLines() error {
	if err := a.checkEditable("comment"); err != nil {
		return err
	}
	first, last := a.selStartLine, a.selEndLine
	if first == last {
		first, last = a.CaretLine(), a.CaretLine()
	}
	a.editLines(first, last, func(text string) (int, string) {
		if strings.HasPrefix(text, "//") {
			return 2, ""
		}
		return 0, "//"
	})
	return nil
}

// IndentLine re-indents line from the previous line's leading whitespace:
// one more tab after a line ending in "{" or ":", one less on a line with
// "}", and a space inside a block comment.
func (a *Area) IndentLine(line int) error {
	text, ok := a.buf.LineText(line)
	if !ok {
		return ErrInvalidRange
	}
	body := strings.TrimSpace(text)
	if line > 0 {
		prev, _ := a.buf.LineText(line - 1)
		ws := leadingWhitespace(prev)
		switch {
		case !strings.HasPrefix(body, "}") && (strings.HasSuffix(prev, "{") || strings.HasSuffix(prev, ":")):
			ws += "\t"
		case strings.Contains(body, "}") && ws != "":
			ws = ws[:len(ws)-1]
		case (strings.HasSuffix(prev, "/**") || strings.HasSuffix(prev, "/*")) && strings.HasPrefix(body, "*"):
			ws += " "
		case strings.HasSuffix(body, "*/") && ws != "":
			ws = ws[:len(ws)-1]
		}
		body = ws + body
	}
	if body == text {
		return nil
	}
	if err := a.checkEditable("indent line"); err != nil {
		return err
	}
	ls := a.buf.LineStart(line)
	return a.buf.Replace(ls, len([]rune(text)), body)
}

// IndentSelectedLines applies IndentLine to every selected line, top
// down, as one undo step.
func (a *Area) IndentSelectedLines() error {
	if err := a.checkEditable("reindent"); err != nil {
		return err
	}
	first, last := a.selStartLine, a.selEndLine
	return a.buf.Compound(func() error {
		for i := first; i <= last; i++ {
			if err := a.IndentLine(i); err != nil {
				return err
			}
		}
		return nil
	})
}
