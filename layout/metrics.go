// Package layout maps rune columns of a line to horizontal positions and
// back, accounting for tab stops, token categories and a horizontal scroll.
package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/codearea/token"
)

// Metrics gives the advance of a rune drawn in a category.
type Metrics interface {
	Advance(r rune, c token.Category) int
}

type MetricsFunc func(r rune, c token.Category) int

func (f MetricsFunc) Advance(r rune, c token.Category) int { return f(r, c) }

// CellMetrics measures runes in terminal cells.
type CellMetrics struct{}

func (CellMetrics) Advance(r rune, _ token.Category) int {
	if r < 0x20 || r == 0x7f {
		return 1
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		w = uniseg.StringWidth(string(r))
	}
	if w < 0 {
		return 0
	}
	return w
}
