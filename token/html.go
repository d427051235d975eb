package token

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// WriteHTML renders text as an HTML fragment with inline styles.
func (c *Chroma) WriteHTML(w io.Writer, text, style string, tabSize int) error {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	f := html.New(html.WithClasses(false), html.TabWidth(tabSize))
	return f.Format(w, styles.Get(style), it)
}
