package buffer

import "fmt"

// OffsetToLocation converts a rune offset in [0, Len] to a Location.
func (b *Buffer) OffsetToLocation(off int) (Location, error) {
	line, err := b.LineOf(off)
	if err != nil {
		return Location{}, err
	}
	return Location{Line: line + 1, Column: off - b.starts[line] + 1}, nil
}

// LocationToOffset converts loc to a rune offset. A line that does not exist
// is an error; the column is clamped into the line.
func (b *Buffer) LocationToOffset(loc Location) (int, error) {
	line := loc.Line - 1
	start := b.LineStart(line)
	if start < 0 {
		return -1, fmt.Errorf("line %d of %d: %w", loc.Line, len(b.starts), ErrOutOfRange)
	}
	return start + clampInt(loc.Column-1, 0, b.LineLen(line)), nil
}

// ClampOffset clamps off into [0, Len].
func (b *Buffer) ClampOffset(off int) int {
	return clampInt(off, 0, len(b.text))
}
