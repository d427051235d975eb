// Package editor provides a Bubble Tea component hosting a session.
//
// The Model turns key and mouse messages into session actions, paints the
// area onto a grid of terminal cells coloured from a chroma theme, and
// draws a line-number gutter, a status line and hyperlink tooltips. Caret
// blinking and reparsing run on tea.Tick messages tagged with the blink
// epoch and buffer version they were scheduled for.
package editor
