package editor

import (
	"strings"

	"github.com/iw2rmb/codearea/internal/grapheme"
	"github.com/iw2rmb/codearea/layout"
	"github.com/iw2rmb/codearea/textarea"
	"github.com/iw2rmb/codearea/token"
)

type roleSet uint16

func (s roleSet) has(r textarea.Role) bool { return s&(1<<r) != 0 }

func (s roleSet) with(r textarea.Role) roleSet { return s | 1<<r }

type cell struct {
	text  string // empty renders as a space
	cat   token.Category
	roles roleSet
	// wide marks the trailing cells of a glyph wider than one cell.
	wide bool
}

// cellCanvas is a textarea.Canvas over a grid of terminal cells. x is a
// cell column and y a row, both relative to the text viewport.
type cellCanvas struct {
	w, h  int
	cells []cell

	hideCaret bool
}

var _ textarea.Canvas = (*cellCanvas)(nil)

func newCellCanvas(w, h int) *cellCanvas {
	w, h = max(w, 0), max(h, 0)
	return &cellCanvas{w: w, h: h, cells: make([]cell, w*h)}
}

func (c *cellCanvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

func (c *cellCanvas) mark(r textarea.Rect, role textarea.Role) {
	if c.hideCaret && (role == textarea.RoleCaret || role == textarea.RoleOverwriteCaret) {
		return
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if p := c.at(x, y); p != nil {
				p.roles = p.roles.with(role)
			}
		}
	}
}

func (c *cellCanvas) FillRect(r textarea.Rect, role textarea.Role) { c.mark(r, role) }

// StrokeRect marks the whole rectangle; a terminal cell has no border to
// draw on.
func (c *cellCanvas) StrokeRect(r textarea.Rect, role textarea.Role) { c.mark(r, role) }

func (c *cellCanvas) DrawText(x, y int, text string, cat token.Category) {
	var metrics layout.CellMetrics
	prev := (*cell)(nil)
	for _, cluster := range grapheme.Split(text) {
		w := 0
		for _, r := range cluster {
			w += metrics.Advance(r, cat)
		}
		if w == 0 {
			if prev != nil {
				prev.text += cluster
			}
			continue
		}
		if p := c.at(x, y); p != nil {
			p.text = printable(cluster)
			if x+w > c.w {
				p.text = " "
			}
			p.cat = cat
			p.wide = false
			prev = p
		} else {
			prev = nil
		}
		for i := 1; i < w; i++ {
			if p := c.at(x+i, y); p != nil {
				p.wide = true
				p.cat = cat
			}
		}
		x += w
	}
}

func printable(cluster string) string {
	if r := []rune(cluster); len(r) == 1 && (r[0] < 0x20 || r[0] == 0x7f) {
		return " "
	}
	return cluster
}

// row renders row y, merging neighbouring cells that share a look.
func (c *cellCanvas) row(y int, st Style) string {
	var (
		out  strings.Builder
		run  strings.Builder
		cur  cell
		open bool
	)
	flush := func() {
		if open {
			out.WriteString(st.cellStyle(cur.cat, cur.roles).Render(run.String()))
			run.Reset()
		}
	}
	for x := 0; x < c.w; x++ {
		p := c.cells[y*c.w+x]
		if p.wide {
			if x == 0 {
				// Leading half of a clipped wide glyph.
				p.text = " "
			} else {
				continue
			}
		}
		if !open || p.cat != cur.cat || p.roles != cur.roles {
			flush()
			cur, open = p, true
		}
		if p.text == "" {
			run.WriteByte(' ')
		} else {
			run.WriteString(p.text)
		}
	}
	flush()
	return out.String()
}

// lines renders every row.
func (c *cellCanvas) lines(st Style) []string {
	out := make([]string, c.h)
	for y := range out {
		out[y] = c.row(y, st)
	}
	return out
}
