// Package grapheme holds the text-segmentation helpers shared by the area
// and its hosts: user-perceived characters and identifier runs.
package grapheme

import "github.com/rivo/uniseg"

// Split returns the grapheme clusters of text in order. Combining marks and
// joined emoji stay with their base.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	out := make([]string, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
