package editor

import (
	"fmt"
	"strconv"
	"strings"
)

// gutterWidth is the number of cells taken by line numbers, including the
// separating space.
func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNumbers {
		return 0
	}
	return len(strconv.Itoa(max(m.area.LineCount(), 1))) + 1
}

// gutterCell renders the gutter for line, blank past the end of the text.
func (m Model) gutterCell(line int) string {
	w := m.gutterWidth()
	if w == 0 {
		return ""
	}
	if line >= m.area.LineCount() {
		return m.sty.Gutter.Render(strings.Repeat(" ", w))
	}
	num := fmt.Sprintf("%*d ", w-1, line+1)
	if line == m.area.CaretLine() {
		return m.sty.LineNumActive.Render(num)
	}
	return m.sty.LineNum.Render(num)
}
