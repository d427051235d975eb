package session

import (
	"fmt"
	"io"

	"github.com/iw2rmb/codearea/token"
)

// ExportHTML writes the document as a highlighted HTML fragment in the
// session's theme.
func (s *Session) ExportHTML(w io.Writer) error {
	if s.chroma == nil {
		return fmt.Errorf("export html: %w", token.ErrUnknownLanguage)
	}
	return s.chroma.WriteHTML(w, s.area.Text(), s.theme, s.area.TabSize())
}
