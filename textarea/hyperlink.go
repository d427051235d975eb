package textarea

import (
	"github.com/iw2rmb/codearea/internal/grapheme"
)

// RefInfo describes the symbol a hyperlink resolves to.
type RefInfo struct {
	Kind    string // e.g. "function", "field"
	Name    string
	Detail  string
	Payload any
}

// Resolver maps a word to a symbol.
type Resolver interface {
	ResolveByName(word string) (RefInfo, bool)
}

type ResolverFunc func(word string) (RefInfo, bool)

func (f ResolverFunc) ResolveByName(word string) (RefInfo, bool) { return f(word) }

// LinkFinder resolves the symbol covering a buffer offset, returning the
// symbol's range.
type LinkFinder interface {
	FindLink(off int) (start, end int, ref RefInfo, ok bool)
}

type LinkFinderFunc func(off int) (start, end int, ref RefInfo, ok bool)

func (f LinkFinderFunc) FindLink(off int) (int, int, RefInfo, bool) { return f(off) }

// ReferenceListener is told when a hyperlink is clicked.
type ReferenceListener interface {
	ReferenceActivated(ref RefInfo)
}

type ReferenceListenerFunc func(ref RefInfo)

func (f ReferenceListenerFunc) ReferenceActivated(ref RefInfo) { f(ref) }

type link struct {
	start, end int
	ref        RefInfo
}

// Hyperlink underlines the symbol under the pointer and reports clicks on
// it. It never navigates by itself.
type Hyperlink struct {
	a         *Area
	resolver  Resolver
	finder    LinkFinder
	listeners []ReferenceListener

	active *link
}

// NewHyperlink resolves the identifier under the pointer through r.
func NewHyperlink(a *Area, r Resolver) *Hyperlink {
	return &Hyperlink{a: a, resolver: r}
}

// NewHyperlinkFinder resolves links by location through f.
func NewHyperlinkFinder(a *Area, f LinkFinder) *Hyperlink {
	return &Hyperlink{a: a, finder: f}
}

func (h *Hyperlink) SetResolver(r Resolver) { h.resolver = r }

func (h *Hyperlink) AddReferenceListener(l ReferenceListener) {
	h.listeners = append(h.listeners, l)
}

// linkAt resolves the symbol whose glyphs cover (x, y).
func (h *Hyperlink) linkAt(x, y int) (link, bool) {
	line, ok := h.a.lineAtY(y)
	if !ok {
		return link{}, false
	}
	col := h.a.mapper.ColumnAt(line, x)
	if col < 0 {
		return link{}, false
	}
	ls := h.a.buf.LineStart(line)

	if h.finder != nil {
		start, end, ref, ok := h.finder.FindLink(ls + col)
		if !ok || start >= end {
			return link{}, false
		}
		return link{start: start, end: end, ref: ref}, true
	}
	if h.resolver == nil {
		return link{}, false
	}
	text, _ := h.a.buf.LineText(line)
	runes := []rune(text)
	if !grapheme.IsIdentRune(runes[col]) {
		return link{}, false
	}
	start, end := grapheme.IdentBounds(runes, col)
	ref, ok := h.resolver.ResolveByName(string(runes[start:end]))
	if !ok {
		return link{}, false
	}
	return link{start: ls + start, end: ls + end, ref: ref}, true
}

// Hover updates the active link for a pointer at (x, y) and reports
// whether one is active.
func (h *Hyperlink) Hover(x, y int) (RefInfo, bool) {
	l, ok := h.linkAt(x, y)
	if !ok {
		h.active = nil
		return RefInfo{}, false
	}
	h.active = &l
	return l.ref, true
}

// Clear drops the active link.
func (h *Hyperlink) Clear() { h.active = nil }

// Active returns the range and symbol of the active link.
func (h *Hyperlink) Active() (start, end int, ref RefInfo, ok bool) {
	if h.active == nil {
		return 0, 0, RefInfo{}, false
	}
	return h.active.start, h.active.end, h.active.ref, true
}

// Click notifies listeners when (x, y) is on a link.
func (h *Hyperlink) Click(x, y int) bool {
	l, ok := h.linkAt(x, y)
	if !ok {
		return false
	}
	h.a.log.Debug().Str("kind", l.ref.Kind).Str("name", l.ref.Name).Msg("reference activated")
	for _, lis := range h.listeners {
		lis.ReferenceActivated(l.ref)
	}
	return true
}

func (h *Hyperlink) Paint(c Canvas, line, y int) {
	if h.active == nil {
		return
	}
	e := Entry{Start: h.active.start, End: h.active.end}
	r, ok := h.a.highlights.rectOn(&e, line, y)
	if !ok {
		return
	}
	c.FillRect(Rect{X: r.X, Y: y + h.a.lineHeight - 1, W: r.W, H: 1}, RoleLink)
}

// TooltipAt returns the detail of the symbol under (x, y).
func (h *Hyperlink) TooltipAt(x, y int) (string, bool) {
	l, ok := h.linkAt(x, y)
	if !ok || l.ref.Detail == "" {
		return "", false
	}
	return l.ref.Detail, true
}
