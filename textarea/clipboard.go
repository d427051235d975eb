package textarea

import "strings"

// Clipboard stores text for Cut, Copy and Paste.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// MemoryClipboard keeps clipboard text in memory.
type MemoryClipboard struct {
	text string
}

func (c *MemoryClipboard) ReadText() (string, error) { return c.text, nil }

func (c *MemoryClipboard) WriteText(s string) error {
	c.text = s
	return nil
}

// normalizeNewlines turns CRLF and lone CR into LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Copy writes the selected text to the clipboard.
func (a *Area) Copy() bool {
	s, ok := a.SelectedText()
	if !ok || a.clip == nil {
		return false
	}
	if err := a.clip.WriteText(s); err != nil {
		a.log.Debug().Err(err).Msg("clipboard write")
		return false
	}
	return true
}

// Cut copies the selection and deletes it.
func (a *Area) Cut() bool {
	if !a.editable || !a.Copy() {
		return false
	}
	return a.ReplaceSelection("") == nil
}

// Paste replaces the selection with the clipboard text.
func (a *Area) Paste() bool {
	if !a.editable || a.clip == nil {
		return false
	}
	s, err := a.clip.ReadText()
	if err != nil {
		a.log.Debug().Err(err).Msg("clipboard read")
		a.beep("clipboard")
		return false
	}
	return a.ReplaceSelection(normalizeNewlines(s)) == nil
}
