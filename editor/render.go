package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	rows := m.textRows()
	c := newCellCanvas(m.area.Width(), rows)
	c.hideCaret = !m.focused
	m.area.Paint(c)

	lines := c.lines(m.sty)
	first := m.area.FirstLine()
	for i := range lines {
		lines[i] = m.gutterCell(first+i) + lines[i]
	}
	vp := m.viewport
	vp.SetContent(strings.Join(lines, "\n"))
	view := lipgloss.JoinVertical(lipgloss.Left, vp.View(), m.statusLine())

	if m.tip.text != "" {
		view = m.withTooltip(view)
	}
	return view
}

// withTooltip draws the tooltip box below its anchor cell, or above it
// when it would not fit.
func (m Model) withTooltip(base string) string {
	box := m.sty.Tooltip.Render(m.tip.text)
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x := max(min(m.tip.x, m.width-w), 0)
	y := m.tip.y
	if y+h > m.height {
		y = max(m.tip.y-1-h, 0)
	}
	return overlay.Composite(box, base, overlay.Left, overlay.Top, x, y)
}

func (m Model) statusLine() string {
	name := m.cfg.Name
	if name == "" {
		name = "[No Name]"
	}
	if m.Modified() {
		name += " [+]"
	}
	loc := m.area.CaretLocation()
	parts := []string{name, fmt.Sprintf("Ln %d, Col %d", loc.Line, loc.Column)}
	if lang := m.s.Language(); lang != "" {
		parts = append(parts, lang)
	}
	if m.area.IsOverwrite() {
		parts = append(parts, "OVR")
	}
	if m.area.IsRectangular() {
		parts = append(parts, "RECT")
	}
	if !m.area.IsEditable() {
		parts = append(parts, "RO")
	}
	if note := m.note(); note != "" {
		parts = append(parts, note)
	}
	line := ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
	return m.sty.Status.Width(m.width).Render(line)
}

// note is the right part of the status line: a message, the pending
// completions, or the syntax error count.
func (m Model) note() string {
	msg := m.st.message
	if m.st.bell {
		msg = strings.TrimSpace("! " + msg)
	}
	if msg != "" {
		return msg
	}
	if cands := m.s.Candidates(); len(cands) > 0 {
		var b strings.Builder
		for i, c := range cands {
			if i == 9 {
				b.WriteString(" …")
				break
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%d:%s", i+1, c.Label)
		}
		return b.String()
	}
	switch n := len(m.s.SyntaxErrors()); n {
	case 0:
		return ""
	case 1:
		return m.s.SyntaxErrors()[0].Error()
	default:
		return fmt.Sprintf("%d syntax errors", n)
	}
}
