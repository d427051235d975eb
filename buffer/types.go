package buffer

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports an offset or line outside the document.
var ErrOutOfRange = errors.New("out of range")

// Location points into the document by 1-based line and column.
// Column-1 is the rune offset within the line.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid reports whether both coordinates are 1-based.
func (l Location) IsValid() bool {
	return l.Line >= 1 && l.Column >= 1
}

func CompareLocation(a, b Location) int {
	if a.Line < b.Line {
		return -1
	}
	if a.Line > b.Line {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	return 0
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
