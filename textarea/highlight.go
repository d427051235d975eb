package textarea

import (
	"github.com/iw2rmb/codearea/buffer"
)

// Tag partitions highlight entries so one kind can be cleared alone.
type Tag uint8

const (
	TagError Tag = iota
	TagDeprecated
	TagBox
	TagSelection
)

func (t Tag) String() string {
	switch t {
	case TagError:
		return "error"
	case TagDeprecated:
		return "deprecated"
	case TagBox:
		return "box"
	case TagSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// Entry is a highlighted range of the document. Start and End follow edits
// the way selection bounds do.
type Entry struct {
	Start, End int
	Tag        Tag
	Message    string
	Payload    any
}

// Marker draws one entry's rectangle on one line.
type Marker interface {
	Mark(c Canvas, r Rect, e *Entry)
}

type MarkerFunc func(c Canvas, r Rect, e *Entry)

func (f MarkerFunc) Mark(c Canvas, r Rect, e *Entry) { f(c, r, e) }

func fillMarker(role Role) Marker {
	return MarkerFunc(func(c Canvas, r Rect, _ *Entry) { c.FillRect(r, role) })
}

// LocationHighlight paints entries of several tags, each through the
// marker registered for its tag.
type LocationHighlight struct {
	a       *Area
	entries []*Entry
	markers map[Tag]Marker
}

func NewLocationHighlight(a *Area) *LocationHighlight {
	return &LocationHighlight{
		a: a,
		markers: map[Tag]Marker{
			TagError:      fillMarker(RoleError),
			TagDeprecated: fillMarker(RoleDeprecated),
			TagSelection:  fillMarker(RoleSelection),
			TagBox: MarkerFunc(func(c Canvas, r Rect, _ *Entry) {
				c.StrokeRect(r, RoleBox)
			}),
		},
	}
}

func (h *LocationHighlight) SetMarker(t Tag, m Marker) { h.markers[t] = m }

func (h *LocationHighlight) Add(e *Entry) {
	if e.End < e.Start {
		e.Start, e.End = e.End, e.Start
	}
	h.entries = append(h.entries, e)
}

func (h *LocationHighlight) Remove(e *Entry) bool {
	for i, x := range h.entries {
		if x == e {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes the entries tagged t.
func (h *LocationHighlight) Clear(t Tag) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.Tag != t {
			kept = append(kept, e)
		}
	}
	clear(h.entries[len(kept):])
	h.entries = kept
}

func (h *LocationHighlight) ClearAll() { h.entries = nil }

// Entries returns the entries tagged t in insertion order.
func (h *LocationHighlight) Entries(t Tag) []*Entry {
	var out []*Entry
	for _, e := range h.entries {
		if e.Tag == t {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries of every tag.
func (h *LocationHighlight) Len() int { return len(h.entries) }

func (h *LocationHighlight) shift(ev buffer.Event) {
	for _, e := range h.entries {
		switch ev.Kind {
		case buffer.Inserted:
			e.Start, e.End = shiftInsert(e.Start, e.End, ev.Offset, ev.Length)
		case buffer.Removed:
			e.Start, e.End = shiftRemove(e.Start, e.End, ev.Offset, ev.Length)
		}
	}
}

// rectOn returns the rectangle e covers on line, resolved through the
// mapper on every call.
func (h *LocationHighlight) rectOn(e *Entry, line, y int) (Rect, bool) {
	b := h.a.buf
	start, end := b.ClampOffset(e.Start), b.ClampOffset(e.End)
	ls, le := b.LineStart(line), b.LineEnd(line)
	if ls < 0 || end < ls || start > le || (end == ls && start < ls) {
		return Rect{}, false
	}
	m := h.a.mapper
	x1 := m.OffsetToX(line, max(start, ls)-ls)
	x2 := m.OffsetToX(line, min(end, le)-ls)
	if x1 == x2 {
		x2++
	}
	return Rect{X: x1, Y: y, W: x2 - x1, H: h.a.lineHeight}, true
}

func (h *LocationHighlight) Paint(c Canvas, line, y int) {
	for _, e := range h.entries {
		r, ok := h.rectOn(e, line, y)
		if !ok {
			continue
		}
		if m := h.markers[e.Tag]; m != nil {
			m.Mark(c, r, e)
		}
	}
}

// TooltipAt returns the message of the first entry under (x, y).
func (h *LocationHighlight) TooltipAt(x, y int) (string, bool) {
	line, ok := h.a.lineAtY(y)
	if !ok {
		return "", false
	}
	ly := h.a.LineToY(line)
	for _, e := range h.entries {
		if e.Message == "" {
			continue
		}
		if r, ok := h.rectOn(e, line, ly); ok && r.Contains(x, y) {
			return e.Message, true
		}
	}
	return "", false
}

// lineAtY is YToLine without clamping: false past the last line.
func (a *Area) lineAtY(y int) (int, bool) {
	if y < 0 {
		return 0, false
	}
	line := y/a.lineHeight + a.firstLine
	if line >= a.buf.LineCount() {
		return 0, false
	}
	return line, true
}

// Highlights returns the area's location highlight overlay.
func (a *Area) Highlights() *LocationHighlight { return a.highlights }

// AddHighlightEntry highlights [start, end) given as locations.
func (a *Area) AddHighlightEntry(start, end buffer.Location, payload any, tag Tag) (*Entry, error) {
	s, err := a.buf.LocationToOffset(start)
	if err != nil {
		return nil, err
	}
	e, err := a.buf.LocationToOffset(end)
	if err != nil {
		return nil, err
	}
	entry := &Entry{Start: s, End: e, Tag: tag, Payload: payload}
	if msg, ok := payload.(string); ok {
		entry.Message = msg
	}
	a.highlights.Add(entry)
	return entry, nil
}

// AddErrorHighlight marks [start, end) as an error with a tooltip message.
func (a *Area) AddErrorHighlight(msg string, start, end buffer.Location) (*Entry, error) {
	return a.AddHighlightEntry(start, end, msg, TagError)
}

func (a *Area) RemoveHighlight(e *Entry) bool { return a.highlights.Remove(e) }

func (a *Area) ClearHighlights(t Tag) { a.highlights.Clear(t) }

func (a *Area) ClearErrors() { a.highlights.Clear(TagError) }
