package layout

import (
	"unicode/utf8"

	"github.com/iw2rmb/codearea/token"
)

const defaultTabSize = 4

// LineSource yields the text of a line without its terminator.
type LineSource interface {
	LineText(line int) (string, bool)
}

// Mapper converts between columns and x positions for the lines of a
// LineSource. It keeps the spans of the most recently queried line.
//
// x positions include the horizontal offset: column 0 of a line sits at
// HorizontalOffset(), which is zero or negative once scrolled.
type Mapper struct {
	src     LineSource
	metrics Metrics
	tok     token.Tokenizer
	cache   token.Cache

	tabSize int
	hoff    int
	block   bool
}

func NewMapper(src LineSource, m Metrics, tabSize int) *Mapper {
	if m == nil {
		m = CellMetrics{}
	}
	return &Mapper{src: src, metrics: m, tabSize: tabSize}
}

// SetTokenizer replaces the tokenizer and drops cached spans.
func (p *Mapper) SetTokenizer(t token.Tokenizer) {
	p.tok = t
	p.cache.Reset()
}

func (p *Mapper) Tokenizer() token.Tokenizer { return p.tok }

func (p *Mapper) SetTabSize(n int) { p.tabSize = n }

// TabSize returns the configured tab size; 0 means 4.
func (p *Mapper) TabSize() int {
	if p.tabSize <= 0 {
		return defaultTabSize
	}
	return p.tabSize
}

func (p *Mapper) SetHorizontalOffset(x int) { p.hoff = x }
func (p *Mapper) HorizontalOffset() int     { return p.hoff }

// SetBlockCaret switches XToOffset to block caret rounding.
func (p *Mapper) SetBlockCaret(on bool) { p.block = on }

func (p *Mapper) Metrics() Metrics { return p.metrics }

// Invalidate drops cached spans for line.
func (p *Mapper) Invalidate(line int) { p.cache.Invalidate(line) }

func (p *Mapper) InvalidateAll() { p.cache.Reset() }

// CacheMisses reports how many span lookups ran the tokenizer.
func (p *Mapper) CacheMisses() int { return p.cache.Misses() }

// Spans returns the token spans of line, or nil for a missing line.
func (p *Mapper) Spans(line int) []token.Span {
	text, ok := p.src.LineText(line)
	if !ok {
		return nil
	}
	return p.spans(line, text)
}

func (p *Mapper) spans(line int, text string) []token.Span {
	spans := p.cache.Lookup(line, text, p.tok)
	n := utf8.RuneCountInString(text)
	if covered(spans) != n {
		// stale entry: the line changed without an invalidation
		p.cache.Invalidate(line)
		spans = p.cache.Lookup(line, text, p.tok)
	}
	return spans
}

func covered(spans []token.Span) int {
	n := 0
	for _, s := range spans {
		n += s.Length
	}
	return n
}

// NextTabStop returns the x of the first tab stop after x.
func (p *Mapper) NextTabStop(x int) int {
	tab := p.metrics.Advance(' ', token.Null) * p.TabSize()
	if tab <= 0 {
		tab = p.TabSize()
	}
	ntabs := (x - p.hoff) / tab
	return (ntabs+1)*tab + p.hoff
}

func (p *Mapper) advance(r rune, c token.Category, x int) int {
	if r == '\t' {
		return p.NextTabStop(x)
	}
	return x + p.metrics.Advance(r, c)
}

// walk calls fn for each rune of line with its start x and width; fn
// returns false to stop.
func (p *Mapper) walk(line int, fn func(col int, r rune, c token.Category, x, w int) bool) (end int, ok bool) {
	text, ok := p.src.LineText(line)
	if !ok {
		return p.hoff, false
	}
	runes := []rune(text)
	x := p.hoff
	col := 0
	for _, s := range p.spans(line, text) {
		for k := 0; k < s.Length && col < len(runes); k++ {
			next := p.advance(runes[col], s.Category, x)
			if !fn(col, runes[col], s.Category, x, next-x) {
				return x, true
			}
			x = next
			col++
		}
	}
	return x, true
}

// OffsetToX returns the x where column col of line starts. Columns past the
// end of the line map to the end of the line.
func (p *Mapper) OffsetToX(line, col int) int {
	x, _ := p.walk(line, func(c int, _ rune, _ token.Category, _, _ int) bool {
		return c < col
	})
	return x
}

// XToOffset returns the column of line nearest to x. With a block caret a
// column is chosen once x falls inside it; otherwise once x passes its
// middle.
func (p *Mapper) XToOffset(line int, x int) int {
	found := -1
	_, ok := p.walk(line, func(c int, _ rune, _ token.Category, acc, w int) bool {
		limit := x - w/2
		if p.block {
			limit = x - w
		}
		if limit <= acc {
			found = c
			return false
		}
		return true
	})
	if !ok {
		return 0
	}
	if found >= 0 {
		return found
	}
	text, _ := p.src.LineText(line)
	return utf8.RuneCountInString(text)
}

// LineWidth returns the width of line, unaffected by the horizontal offset.
func (p *Mapper) LineWidth(line int) int {
	x, _ := p.walk(line, func(int, rune, token.Category, int, int) bool { return true })
	return x - p.hoff
}

// Run is a piece of a line drawn in one category.
type Run struct {
	Col      int
	Text     string
	Category token.Category
	X        int
	Width    int
}

// Runs splits line into category runs with their x positions. A tab is
// always a run of its own; its Width covers the expanded stop.
func (p *Mapper) Runs(line int) []Run {
	var out []Run
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			out[len(out)-1].Text = string(cur)
			cur = cur[:0]
		}
	}
	split := true
	p.walk(line, func(col int, r rune, c token.Category, x, w int) bool {
		if split || r == '\t' || out[len(out)-1].Category != c {
			flush()
			out = append(out, Run{Col: col, Category: c, X: x})
		}
		cur = append(cur, r)
		out[len(out)-1].Width += w
		split = r == '\t'
		return true
	})
	flush()
	return out
}

// ColumnAt returns the column whose glyph covers x, or -1 when x falls
// outside the glyphs of line.
func (p *Mapper) ColumnAt(line, x int) int {
	found := -1
	p.walk(line, func(c int, _ rune, _ token.Category, acc, w int) bool {
		if x >= acc && x < acc+w {
			found = c
			return false
		}
		return acc <= x
	})
	return found
}
