package editor

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/iw2rmb/codearea/textarea"
)

// TerminalClipboard copies to the system clipboard with the OSC 52 escape
// and keeps its own copy for pasting, since terminals rarely answer
// clipboard reads.
type TerminalClipboard struct {
	out  *termenv.Output
	text string
}

var _ textarea.Clipboard = (*TerminalClipboard)(nil)

// NewTerminalClipboard writes escapes to w, typically os.Stdout.
func NewTerminalClipboard(w io.Writer) *TerminalClipboard {
	return &TerminalClipboard{out: termenv.NewOutput(w)}
}

func (c *TerminalClipboard) ReadText() (string, error) { return c.text, nil }

func (c *TerminalClipboard) WriteText(s string) error {
	c.text = s
	c.out.Copy(s)
	return nil
}
