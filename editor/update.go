package editor

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case BlinkMsg:
		if msg.ID != m.id || msg.Epoch != m.area.BlinkEpoch() || !m.focused {
			return m, nil
		}
		m.area.BlinkCaret()
		return m, m.blinkCmd()
	case reparseMsg:
		if msg.id != m.id || msg.version != m.area.Buffer().Version() || !m.s.Stale() {
			return m, nil
		}
		if err := m.s.Reparse(context.Background()); err != nil {
			m.log.Debug().Err(err).Msg("reparse")
		}
		return m, nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		m.handleKey(msg)
		return m, m.sync()
	case tea.MouseMsg:
		if !m.focused {
			return m, nil
		}
		m.handleMouse(msg)
		return m, m.sync()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	m.st.message = ""
	m.st.bell = false
	m.tip = tooltip{}

	if m.pickCandidate(msg) {
		return
	}
	if msg.Paste {
		m.typeText(normalizeNewlines(string(msg.Runes)))
		return
	}
	if act, ok := m.keys.Lookup(msg); ok {
		if !m.s.Do(act) {
			m.log.Debug().Stringer("action", act).Msg("no effect")
		}
		return
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		m.s.ClearCandidates()
		m.typeText(string(msg.Runes))
	}
}

// pickCandidate applies pending completion n for the digit key n.
func (m *Model) pickCandidate(msg tea.KeyMsg) bool {
	cands := m.s.Candidates()
	if len(cands) == 0 || msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	i := int(msg.Runes[0] - '1')
	if i < 0 || i >= len(cands) || i > 8 {
		return false
	}
	if err := m.s.ApplyCompletion(cands[i]); err != nil {
		m.log.Debug().Err(err).Msg("apply completion")
	}
	return true
}

func (m *Model) typeText(s string) {
	if err := m.area.TypeText(s); err != nil {
		m.log.Debug().Err(err).Msg("type")
	}
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
