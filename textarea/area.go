// Package textarea is a headless code editing engine: a buffer with a
// selection model, caret undo, scrolling, search, and an overlay chain
// painted onto an abstract Canvas.
package textarea

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/codearea/buffer"
	"github.com/iw2rmb/codearea/layout"
	"github.com/iw2rmb/codearea/token"
)

var (
	ErrInvalidRange = errors.New("invalid range")
	ErrReadOnly     = errors.New("read only")
)

// Notifier receives audible feedback requests.
type Notifier interface {
	Bell()
}

type NotifierFunc func()

func (f NotifierFunc) Bell() { f() }

type Options struct {
	Text         string
	HistoryLimit int

	TabSize        int // 0 means 4
	ElectricScroll int
	LineHeight     int // default: 1
	Width          int
	VisibleLines   int

	Tokenizer token.Tokenizer
	Metrics   layout.Metrics // default: layout.CellMetrics

	Logger    *zerolog.Logger
	Notifier  Notifier
	Clipboard Clipboard
	Focus     *FocusContext

	ReadOnly         bool
	BlockCaret       bool
	NoBlink          bool
	LineHighlight    bool
	BracketHighlight bool

	// NoWordSep lists non-alphanumeric runes that word moves treat as
	// part of a word.
	NoWordSep string
}

// Area is a single editing surface. It is not safe for concurrent use;
// every method must run on the goroutine that owns the host UI.
type Area struct {
	buf    *buffer.Buffer
	mapper *layout.Mapper
	log    zerolog.Logger
	bell   Notifier
	clip   Clipboard
	focus  *FocusContext

	editable         bool
	overwrite        bool
	blockCaret       bool
	noBlink          bool
	lineHighlight    bool
	bracketHighlight bool
	noWordSep        string

	selStart, selEnd         int
	selStartLine, selEndLine int
	biasLeft                 bool
	rect                     bool
	magicCaret               int

	bracketLine, bracketPos int

	firstLine    int
	visibleLines int
	width        int
	electric     int
	lineHeight   int

	caretVisible bool
	blinkOn      bool
	blinkEpoch   uint64

	caretListeners []caretEntry
	nextListenerID int

	overlays   []Overlay
	highlights *LocationHighlight

	lastFind FindOptions
	hasFind  bool

	modified map[string]uint64
}

func New(opt Options) *Area {
	a := &Area{
		buf:              buffer.New(opt.Text, buffer.Options{HistoryLimit: opt.HistoryLimit}),
		log:              zerolog.Nop(),
		bell:             opt.Notifier,
		clip:             opt.Clipboard,
		editable:         !opt.ReadOnly,
		blockCaret:       opt.BlockCaret,
		noBlink:          opt.NoBlink,
		lineHighlight:    opt.LineHighlight,
		bracketHighlight: opt.BracketHighlight,
		noWordSep:        opt.NoWordSep,
		magicCaret:       -1,
		bracketLine:      -1,
		bracketPos:       -1,
		visibleLines:     max(opt.VisibleLines, 0),
		width:            max(opt.Width, 0),
		electric:         max(opt.ElectricScroll, 0),
		lineHeight:       opt.LineHeight,
		blinkOn:          true,
		modified:         map[string]uint64{},
	}
	if opt.Logger != nil {
		a.log = *opt.Logger
	}
	if a.lineHeight <= 0 {
		a.lineHeight = 1
	}
	a.mapper = layout.NewMapper(a.buf, opt.Metrics, opt.TabSize)
	a.mapper.SetBlockCaret(opt.BlockCaret)
	if opt.Tokenizer != nil {
		a.mapper.SetTokenizer(opt.Tokenizer)
	}
	a.highlights = NewLocationHighlight(a)
	a.overlays = []Overlay{a.highlights}
	a.buf.AddListener(buffer.ListenerFunc(a.bufferChanged))
	if opt.Focus != nil {
		opt.Focus.attach(a)
	}
	return a
}

// Buffer returns the document. Edits made on it directly keep the
// selection consistent but bypass the read-only check.
func (a *Area) Buffer() *buffer.Buffer { return a.buf }

// Mapper returns the coordinate mapper used for painting and hit testing.
func (a *Area) Mapper() *layout.Mapper { return a.mapper }

func (a *Area) Logger() *zerolog.Logger { return &a.log }

func (a *Area) Text() string { return a.buf.Text() }

func (a *Area) Len() int { return a.buf.Len() }

func (a *Area) LineCount() int { return a.buf.LineCount() }

func (a *Area) LineText(line int) (string, bool) { return a.buf.LineText(line) }

func (a *Area) LineStart(line int) int { return a.buf.LineStart(line) }

func (a *Area) LineEnd(line int) int { return a.buf.LineEnd(line) }

func (a *Area) LineLen(line int) int { return a.buf.LineLen(line) }

func (a *Area) OffsetToLocation(off int) (buffer.Location, error) {
	return a.buf.OffsetToLocation(off)
}

func (a *Area) LocationToOffset(loc buffer.Location) (int, error) {
	return a.buf.LocationToOffset(loc)
}

// lineOf is LineOf for offsets already clamped into the document.
func (a *Area) lineOf(off int) int {
	line, err := a.buf.LineOf(a.buf.ClampOffset(off))
	if err != nil {
		return 0
	}
	return line
}

// SetText replaces the document, collapses the selection to 0, clears
// location highlights and discards undo history.
func (a *Area) SetText(s string) {
	a.highlights.ClearAll()
	a.buf.SetText(s)
	a.mapper.InvalidateAll()
	_ = a.Select(0, 0)
	a.buf.DiscardEdits()
}

// SetTokenizer replaces the tokenizer used for painting and measuring.
func (a *Area) SetTokenizer(t token.Tokenizer) { a.mapper.SetTokenizer(t) }

func (a *Area) SetTabSize(n int) {
	a.mapper.SetTabSize(n)
}

func (a *Area) TabSize() int { return a.mapper.TabSize() }

func (a *Area) IsEditable() bool { return a.editable }

func (a *Area) SetEditable(on bool) { a.editable = on }

func (a *Area) IsOverwrite() bool { return a.overwrite }

func (a *Area) SetOverwrite(on bool) { a.overwrite = on }

func (a *Area) IsBlockCaret() bool { return a.blockCaret }

func (a *Area) SetBlockCaret(on bool) {
	a.blockCaret = on
	a.mapper.SetBlockCaret(on)
}

func (a *Area) NoWordSep() string { return a.noWordSep }

func (a *Area) SetNoWordSep(s string) { a.noWordSep = s }

// SetNotifier replaces the bell target.
func (a *Area) SetNotifier(n Notifier) { a.bell = n }

func (a *Area) SetClipboard(c Clipboard) { a.clip = c }

func (a *Area) beep(reason string) {
	a.log.Debug().Str("reason", reason).Msg("bell")
	if a.bell != nil {
		a.bell.Bell()
	}
}

// IsModifiedSince reports whether the document changed since
// ResetModifiedSince(key). Keys never reset report true.
func (a *Area) IsModifiedSince(key string) bool {
	v, ok := a.modified[key]
	if !ok {
		return true
	}
	return v != a.buf.Version()
}

func (a *Area) ResetModifiedSince(key string) {
	a.modified[key] = a.buf.Version()
}
