package buffer

// TextEdit replaces Length runes at Offset with Text.
type TextEdit struct {
	Offset int
	Length int
	Text   string
}

// Apply applies a sequence of text edits in order, as one compound edit.
// Each edit's range is interpreted against the buffer state at the time that
// edit is applied, and is clamped into the document.
//
// It reports whether anything changed.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	b.BeginCompound()
	defer b.EndCompound()

	changed := false
	for _, e := range edits {
		off := b.ClampOffset(e.Offset)
		n := clampInt(e.Length, 0, len(b.text)-off)
		if n == 0 && e.Text == "" {
			continue
		}
		if n > 0 {
			b.remove(off, n)
		}
		if e.Text != "" {
			b.insert(off, []rune(e.Text))
		}
		changed = true
	}
	return changed
}
