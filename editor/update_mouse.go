package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

const wheelLines = 3

// handleMouse maps msg from editor cells to area coordinates. Clicks in
// the gutter select the whole line; ctrl+click follows hyperlinks.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	top := m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()
	left := m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	x := msg.X - left - m.gutterWidth()
	y := msg.Y - top

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.area.SetFirstLine(m.area.FirstLine() - wheelLines)
		return
	case tea.MouseButtonWheelDown:
		m.area.SetFirstLine(min(m.area.FirstLine()+wheelLines, max(m.area.LineCount()-1, 0)))
		return
	}
	if y < 0 || y >= m.textRows() {
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.tip = tooltip{}
		if msg.Ctrl {
			m.s.Click(x, y)
			return
		}
		if x < 0 {
			if err := m.area.SelectLine(m.area.YToLine(y)); err != nil {
				m.log.Debug().Err(err).Msg("select line")
			}
			return
		}
		off := m.area.XYToOffset(x, y)
		if msg.Shift {
			m.anchor = m.area.MarkPosition()
			m.selectTo(off)
		} else {
			m.anchor = off
			if err := m.area.SetCaretPosition(off); err != nil {
				m.log.Debug().Err(err).Msg("caret")
			}
		}
		m.dragging = true

	case tea.MouseActionMotion:
		if m.dragging && msg.Button == tea.MouseButtonLeft {
			m.selectTo(m.area.XYToOffset(max(x, 0), y))
			return
		}
		m.hover(msg.X, msg.Y, x, y)

	case tea.MouseActionRelease:
		m.dragging = false
	}
}

func (m *Model) selectTo(off int) {
	if err := m.area.Select(m.anchor, off); err != nil {
		m.log.Debug().Err(err).Msg("drag select")
	}
}

// hover underlines the hyperlink under the pointer and shows its tooltip
// below the pointer cell (cx, cy).
func (m *Model) hover(cx, cy, x, y int) {
	if x < 0 {
		m.s.ClearHover()
		m.tip = tooltip{}
		return
	}
	if _, ok := m.s.Hover(x, y); !ok {
		m.tip = tooltip{}
		return
	}
	if text, ok := m.area.TooltipAt(x, y); ok {
		m.tip = tooltip{text: text, x: cx, y: cy + 1}
	}
}
