package grapheme

import (
	"strings"
	"unicode"
)

// IsIdentRune reports whether r can be part of an identifier.
func IsIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

// IsWordRune reports whether r belongs to a word. Runes listed in noWordSep
// count as word runes in addition to letters and digits.
func IsWordRune(r rune, noWordSep string) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(noWordSep, r)
}

// FindWordStart returns the start of the word or separator run ending at
// pos. The class of line[pos-1] decides which run is scanned.
func FindWordStart(line []rune, pos int, noWordSep string) int {
	if pos <= 0 || len(line) == 0 {
		return 0
	}
	if pos > len(line) {
		pos = len(line)
	}
	word := IsWordRune(line[pos-1], noWordSep)
	for i := pos - 1; i >= 0; i-- {
		if IsWordRune(line[i], noWordSep) != word {
			return i + 1
		}
	}
	return 0
}

// FindWordEnd returns the end of the word or separator run containing
// pos-1 (or pos when pos is 0).
func FindWordEnd(line []rune, pos int, noWordSep string) int {
	if len(line) == 0 {
		return 0
	}
	if pos != 0 {
		pos--
	}
	if pos >= len(line) {
		return len(line)
	}
	word := IsWordRune(line[pos], noWordSep)
	for i := pos; i < len(line); i++ {
		if IsWordRune(line[i], noWordSep) != word {
			return i
		}
	}
	return len(line)
}

// IdentBounds returns the identifier run around col, as [start, end).
// start == end when col does not touch an identifier.
func IdentBounds(line []rune, col int) (start, end int) {
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	start, end = col, col
	for start > 0 && IsIdentRune(line[start-1]) {
		start--
	}
	for end < len(line) && IsIdentRune(line[end]) {
		end++
	}
	return start, end
}
