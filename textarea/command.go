package textarea

import "github.com/iw2rmb/codearea/buffer"

// Command names an editing action a host can bind to a key.
type Command uint8

const (
	CmdNone Command = iota

	CharLeft
	CharRight
	SelectCharLeft
	SelectCharRight

	LineUp
	LineDown
	SelectLineUp
	SelectLineDown

	WordLeft
	WordRight
	SelectWordLeft
	SelectWordRight

	Home
	End
	SelectHome
	SelectEnd

	DocHome
	DocEnd
	SelectDocHome
	SelectDocEnd

	PageUp
	PageDown

	Backspace
	Delete
	InsertNewline
	InsertTab

	Undo
	Redo

	SelectAll
	SelectWord
	SelectLine
	MatchBracket
	SelectBlock
	ToggleRect

	ToggleOverwrite

	Indent
	Unindent
	Comment
	Reindent

	Cut
	Copy
	Paste

	commandCount
)

var commandNames = [commandCount]string{
	CmdNone:         "none",
	CharLeft:        "char-left",
	CharRight:       "char-right",
	SelectCharLeft:  "select-char-left",
	SelectCharRight: "select-char-right",
	LineUp:          "line-up",
	LineDown:        "line-down",
	SelectLineUp:    "select-line-up",
	SelectLineDown:  "select-line-down",
	WordLeft:        "word-left",
	WordRight:       "word-right",
	SelectWordLeft:  "select-word-left",
	SelectWordRight: "select-word-right",
	Home:            "home",
	End:             "end",
	SelectHome:      "select-home",
	SelectEnd:       "select-end",
	DocHome:         "doc-home",
	DocEnd:          "doc-end",
	SelectDocHome:   "select-doc-home",
	SelectDocEnd:    "select-doc-end",
	PageUp:          "page-up",
	PageDown:        "page-down",
	Backspace:       "backspace",
	Delete:          "delete",
	InsertNewline:   "insert-newline",
	InsertTab:       "insert-tab",
	Undo:            "undo",
	Redo:            "redo",
	SelectAll:       "select-all",
	SelectWord:      "select-word",
	SelectLine:      "select-line",
	MatchBracket:    "match-bracket",
	SelectBlock:     "select-block",
	ToggleRect:      "toggle-rect",
	ToggleOverwrite: "toggle-overwrite",
	Indent:          "indent",
	Unindent:        "unindent",
	Comment:         "comment",
	Reindent:        "reindent",
	Cut:             "cut",
	Copy:            "copy",
	Paste:           "paste",
}

func (c Command) String() string {
	if c >= commandCount {
		return "unknown"
	}
	return commandNames[c]
}

// ParseCommand looks a command up by its String name.
func ParseCommand(name string) (Command, bool) {
	for c := CharLeft; c < commandCount; c++ {
		if commandNames[c] == name {
			return c, true
		}
	}
	return CmdNone, false
}

// Commands returns every command except CmdNone in declaration order.
func Commands() []Command {
	out := make([]Command, 0, commandCount-1)
	for c := CharLeft; c < commandCount; c++ {
		out = append(out, c)
	}
	return out
}

var handlers [commandCount]func(a *Area) bool

func init() {
	handlers = [commandCount]func(a *Area) bool{
		CharLeft:        func(a *Area) bool { return a.moveRune(buffer.DirLeft, false) },
		CharRight:       func(a *Area) bool { return a.moveRune(buffer.DirRight, false) },
		SelectCharLeft:  func(a *Area) bool { return a.moveRune(buffer.DirLeft, true) },
		SelectCharRight: func(a *Area) bool { return a.moveRune(buffer.DirRight, true) },

		LineUp:         func(a *Area) bool { return a.moveLine(-1, false) },
		LineDown:       func(a *Area) bool { return a.moveLine(1, false) },
		SelectLineUp:   func(a *Area) bool { return a.moveLine(-1, true) },
		SelectLineDown: func(a *Area) bool { return a.moveLine(1, true) },

		WordLeft:        func(a *Area) bool { return a.move(buffer.MoveWord, buffer.DirLeft, false) },
		WordRight:       func(a *Area) bool { return a.move(buffer.MoveWord, buffer.DirRight, false) },
		SelectWordLeft:  func(a *Area) bool { return a.move(buffer.MoveWord, buffer.DirLeft, true) },
		SelectWordRight: func(a *Area) bool { return a.move(buffer.MoveWord, buffer.DirRight, true) },

		Home:       func(a *Area) bool { return a.move(buffer.MoveLine, buffer.DirHome, false) },
		End:        func(a *Area) bool { return a.move(buffer.MoveLine, buffer.DirEnd, false) },
		SelectHome: func(a *Area) bool { return a.move(buffer.MoveLine, buffer.DirHome, true) },
		SelectEnd:  func(a *Area) bool { return a.move(buffer.MoveLine, buffer.DirEnd, true) },

		DocHome:       func(a *Area) bool { return a.move(buffer.MoveDoc, buffer.DirHome, false) },
		DocEnd:        func(a *Area) bool { return a.move(buffer.MoveDoc, buffer.DirEnd, false) },
		SelectDocHome: func(a *Area) bool { return a.move(buffer.MoveDoc, buffer.DirHome, true) },
		SelectDocEnd:  func(a *Area) bool { return a.move(buffer.MoveDoc, buffer.DirEnd, true) },

		PageUp:   func(a *Area) bool { return a.page(-1) },
		PageDown: func(a *Area) bool { return a.page(1) },

		Backspace:     func(a *Area) bool { return a.done("backspace", a.Backspace()) },
		Delete:        func(a *Area) bool { return a.done("delete", a.Delete()) },
		InsertNewline: func(a *Area) bool { return a.done("newline", a.InsertNewline()) },
		InsertTab:     (*Area).insertTab,

		Undo: (*Area).Undo,
		Redo: (*Area).Redo,

		SelectAll:  func(a *Area) bool { a.SelectAll(); return true },
		SelectWord: func(a *Area) bool { a.SelectWord(); return true },
		SelectLine: func(a *Area) bool { return a.SelectLine(a.CaretLine()) == nil },
		MatchBracket: func(a *Area) bool {
			a.SelectToMatchingBracket()
			return true
		},
		SelectBlock: func(a *Area) bool { a.SelectBlock(); return true },
		ToggleRect: func(a *Area) bool {
			a.SetRectangular(!a.rect)
			return true
		},

		ToggleOverwrite: func(a *Area) bool {
			a.SetOverwrite(!a.overwrite)
			return true
		},

		Indent:   func(a *Area) bool { return a.done("indent", a.IndentSelection()) },
		Unindent: func(a *Area) bool { return a.done("unindent", a.UnindentSelection()) },
		Comment:  func(a *Area) bool { return a.done("comment", a.CommentLines()) },
		Reindent: func(a *Area) bool { return a.done("reindent", a.IndentSelectedLines()) },

		Cut:   (*Area).Cut,
		Copy:  (*Area).Copy,
		Paste: (*Area).Paste,
	}
}

// Execute runs cmd and reports whether it had an effect.
func (a *Area) Execute(cmd Command) bool {
	if cmd >= commandCount || handlers[cmd] == nil {
		return false
	}
	return handlers[cmd](a)
}

// done turns an edit error into a bell.
func (a *Area) done(op string, err error) bool {
	if err != nil {
		a.log.Debug().Err(err).Str("op", op).Msg("edit rejected")
		a.beep(op)
		return false
	}
	return true
}

// moveTo places the caret at off, extending from the mark when sel is set.
func (a *Area) moveTo(off int, sel bool) bool {
	if sel {
		return a.Select(a.MarkPosition(), off) == nil
	}
	return a.SetCaretPosition(off) == nil
}

func (a *Area) moveRune(dir buffer.MoveDir, sel bool) bool {
	caret := a.CaretPosition()
	if !sel && a.HasSelection() {
		// Collapse onto the side the move heads to.
		if dir == buffer.DirLeft {
			return a.moveTo(a.selStart, false)
		}
		return a.moveTo(a.selEnd, false)
	}
	next, ok := a.buf.Move(caret, buffer.Move{Unit: buffer.MoveRune, Dir: dir})
	if !ok {
		a.beep("document edge")
		return false
	}
	return a.moveTo(next, sel)
}

func (a *Area) move(unit buffer.MoveUnit, dir buffer.MoveDir, sel bool) bool {
	next, ok := a.buf.Move(a.CaretPosition(), buffer.Move{Unit: unit, Dir: dir, NoWordSep: a.noWordSep})
	if !ok {
		a.beep("document edge")
		return false
	}
	return a.moveTo(next, sel)
}

// moveLine moves the caret delta lines, keeping it under the magic caret x.
func (a *Area) moveLine(delta int, sel bool) bool {
	line := a.CaretLine()
	target := line + delta
	if target < 0 || target >= a.buf.LineCount() {
		a.beep("document edge")
		return false
	}
	magic := a.magicCaret
	if magic < 0 {
		magic = a.mapper.OffsetToX(line, a.CaretPosition()-a.buf.LineStart(line))
	}
	off := a.buf.LineStart(target) + a.mapper.XToOffset(target, magic)
	ok := a.moveTo(off, sel)
	a.magicCaret = magic
	return ok
}

// page scrolls by one screen and moves the caret the same number of lines.
func (a *Area) page(dir int) bool {
	n := max(a.visibleLines, 1)
	count := a.buf.LineCount()
	line := a.CaretLine()

	first := a.firstLine + dir*n
	if dir > 0 && first+n >= count-1 {
		first = count - n
	}
	a.SetFirstLine(max(first, 0))

	target := min(max(line+dir*n, 0), count-1)
	return a.moveTo(a.buf.LineStart(target), false)
}

// insertTab indents a selection spanning lines and types a tab otherwise.
func (a *Area) insertTab() bool {
	if a.HasSelection() && a.selStartLine != a.selEndLine {
		return a.done("indent", a.IndentSelection())
	}
	return a.done("tab", a.TypeText("\t"))
}
