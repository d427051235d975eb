// Package buffer implements the document model for codearea: a flat rune
// buffer with a line index, change listeners and a compound-aware undo
// history.
//
// Offsets are 0-based rune indices in [0, Len]. Lines are 0-based in the
// offset APIs; Location is 1-based.
package buffer
