package editor

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/codearea/session"
	"github.com/iw2rmb/codearea/syntax"
	"github.com/iw2rmb/codearea/textarea"
)

// BlinkMsg toggles the caret of the editor with the same ID, unless the
// blink period it belongs to was restarted.
type BlinkMsg struct {
	ID    int
	Epoch uint64
}

type reparseMsg struct {
	id      int
	version uint64
}

var lastID atomic.Int64

// state is shared by the callbacks the session and area hold, which
// outlive any one copy of the Model.
type state struct {
	message string
	bell    bool
}

type tooltip struct {
	text string
	x, y int
}

// Model is a Bubble Tea component hosting one session.
type Model struct {
	cfg  Config
	id   int
	s    *session.Session
	area *textarea.Area
	keys KeyMap
	sty  Style
	log  zerolog.Logger
	st   *state

	focused bool
	width   int
	height  int

	viewport viewport.Model

	dragging bool
	anchor   int
	tip      tooltip

	epoch   uint64
	version uint64
}

const savedKey = "editor.saved"

// New hosts s. Only the first Model built for a session should be used;
// New installs the session's help listener and the area's bell.
func New(s *session.Session, cfg Config) Model {
	m := Model{
		cfg:      cfg,
		id:       int(lastID.Add(1)),
		s:        s,
		area:     s.Area(),
		keys:     DefaultKeyMap(),
		log:      zerolog.Nop(),
		st:       &state{},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	if cfg.KeyMap != nil {
		m.keys = *cfg.KeyMap
	}
	if err := m.keys.Override(cfg.Keys); err != nil {
		m.log.Warn().Err(err).Msg("key bindings")
	}
	if cfg.Style != nil {
		m.sty = *cfg.Style
	} else {
		m.sty = DefaultStyle(cfg.Theme)
	}

	st, area := m.st, m.area
	area.SetNotifier(textarea.NotifierFunc(func() { st.bell = true }))
	s.SetHelp(session.HelpFunc(func(word string) {
		st.message = describe(s, word)
		if cfg.Help != nil {
			cfg.Help.ShowHelp(word)
		}
	}))
	s.AddReferenceListener(textarea.ReferenceListenerFunc(func(ref textarea.RefInfo) {
		st.message = ref.Kind + " " + ref.Name
		if ref.Detail != "" {
			st.message += ": " + ref.Detail
		}
		// Jump to declarations in this document.
		if sym, ok := ref.Payload.(syntax.Symbol); ok {
			if off, err := area.LocationToOffset(sym.Start); err == nil {
				_ = area.SetCaretPosition(off)
			}
		}
	}))

	if cfg.Focus != nil {
		cfg.Focus.SetFocused(area)
	}
	area.ResetModifiedSince(savedKey)
	m.epoch = area.BlinkEpoch()
	m.version = area.Buffer().Version()
	return m
}

// describe is the status text for a help request.
func describe(s *session.Session, word string) string {
	for _, c := range s.Completions(word) {
		if c.Label == word && c.Detail != "" {
			return c.Detail
		}
	}
	if sym, ok := s.Index().Lookup(word); ok {
		return sym.Signature
	}
	return "no help for " + word
}

func (m Model) Session() *session.Session { return m.s }

func (m Model) Area() *textarea.Area { return m.area }

func (m Model) KeyMap() KeyMap { return m.keys }

// Modified reports whether the text changed since New or MarkSaved.
func (m Model) Modified() bool { return m.area.IsModifiedSince(savedKey) }

// MarkSaved records the current text as saved.
func (m Model) MarkSaved() { m.area.ResetModifiedSince(savedKey) }

// SetMessage shows msg in the status line until the next key press.
func (m Model) SetMessage(msg string) { m.st.message = msg }

func (m Model) Message() string { return m.st.message }

func (m Model) Init() tea.Cmd { return m.blinkCmd() }

func (m Model) SetSize(width, height int) Model {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.layout()
	m.area.ScrollToCaret()
	return m
}

func (m Model) Focus() (Model, tea.Cmd) {
	if m.focused {
		return m, nil
	}
	m.focused = true
	if m.cfg.Focus != nil {
		m.cfg.Focus.SetFocused(m.area)
	} else {
		m.area.RestartBlink()
	}
	return m, m.sync()
}

func (m Model) Blur() Model {
	if !m.focused {
		return m
	}
	m.focused = false
	if m.cfg.Focus != nil && m.cfg.Focus.Focused() == m.area {
		m.cfg.Focus.SetFocused(nil)
	}
	m.s.ClearHover()
	m.tip = tooltip{}
	return m
}

func (m Model) Focused() bool { return m.focused }

// textRows is the number of rows left for text below the viewport frame
// and above the status line.
func (m Model) textRows() int {
	return max(m.height-1-m.viewport.Style.GetVerticalFrameSize(), 0)
}

// layout sizes the area to the space left by the gutter.
func (m *Model) layout() {
	frameW := m.viewport.Style.GetHorizontalFrameSize()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-1, 0)
	m.area.SetVisibleLines(m.textRows())
	m.area.SetWidth(max(m.width-frameW-m.gutterWidth(), 0))
}

func (m Model) blinkCmd() tea.Cmd {
	if m.cfg.BlinkInterval <= 0 || !m.focused {
		return nil
	}
	id, epoch := m.id, m.epoch
	return tea.Tick(m.cfg.BlinkInterval, func(time.Time) tea.Msg {
		return BlinkMsg{ID: id, Epoch: epoch}
	})
}

func (m Model) reparseCmd() tea.Cmd {
	if m.cfg.ReparseDelay <= 0 {
		return nil
	}
	id, version := m.id, m.version
	return tea.Tick(m.cfg.ReparseDelay, func(time.Time) tea.Msg {
		return reparseMsg{id: id, version: version}
	})
}

// sync lays the model out again after input and schedules a blink when
// the blink period restarted and a reparse when the text changed.
func (m *Model) sync() tea.Cmd {
	m.layout()
	var cmds []tea.Cmd
	if ep := m.area.BlinkEpoch(); ep != m.epoch {
		m.epoch = ep
		cmds = append(cmds, m.blinkCmd())
	}
	if v := m.area.Buffer().Version(); v != m.version {
		m.version = v
		cmds = append(cmds, m.reparseCmd())
	}
	return tea.Batch(cmds...)
}
