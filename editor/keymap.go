package editor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codearea/session"
	"github.com/iw2rmb/codearea/textarea"
)

// Binding ties a key binding to the action it runs.
type Binding struct {
	key.Binding
	Action session.Action
}

// KeyMap defines the editor key bindings. Bindings are tried in order; the
// first match wins.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Bindings []Binding
}

func areaKey(cmd textarea.Command, keys []string, help, desc string) Binding {
	return Binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		Action:  session.Action{Area: cmd},
	}
}

func sessionKey(cmd session.Command, keys []string, help, desc string) Binding {
	return Binding{
		Binding: key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc)),
		Action:  session.Action{Session: cmd},
	}
}

func keys(k ...string) []string { return k }

func DefaultKeyMap() KeyMap {
	return KeyMap{Bindings: []Binding{
		areaKey(textarea.CharLeft, keys("left"), "←", "left"),
		areaKey(textarea.CharRight, keys("right"), "→", "right"),
		areaKey(textarea.LineUp, keys("up"), "↑", "up"),
		areaKey(textarea.LineDown, keys("down"), "↓", "down"),
		areaKey(textarea.SelectCharLeft, keys("shift+left"), "shift+←", "select left"),
		areaKey(textarea.SelectCharRight, keys("shift+right"), "shift+→", "select right"),
		areaKey(textarea.SelectLineUp, keys("shift+up"), "shift+↑", "select up"),
		areaKey(textarea.SelectLineDown, keys("shift+down"), "shift+↓", "select down"),

		// Terminals vary between alt+arrows and ctrl+arrows.
		areaKey(textarea.WordLeft, keys("alt+left", "ctrl+left"), "alt/ctrl+←", "word left"),
		areaKey(textarea.WordRight, keys("alt+right", "ctrl+right"), "alt/ctrl+→", "word right"),
		areaKey(textarea.SelectWordLeft, keys("ctrl+shift+left", "alt+shift+left"), "ctrl+shift+←", "select word left"),
		areaKey(textarea.SelectWordRight, keys("ctrl+shift+right", "alt+shift+right"), "ctrl+shift+→", "select word right"),

		areaKey(textarea.Home, keys("home", "ctrl+a"), "home", "line start"),
		areaKey(textarea.End, keys("end", "ctrl+e"), "end", "line end"),
		areaKey(textarea.SelectHome, keys("shift+home"), "shift+home", "select to line start"),
		areaKey(textarea.SelectEnd, keys("shift+end"), "shift+end", "select to line end"),
		areaKey(textarea.DocHome, keys("ctrl+home"), "ctrl+home", "document start"),
		areaKey(textarea.DocEnd, keys("ctrl+end"), "ctrl+end", "document end"),
		areaKey(textarea.SelectDocHome, keys("ctrl+shift+home"), "ctrl+shift+home", "select to document start"),
		areaKey(textarea.SelectDocEnd, keys("ctrl+shift+end"), "ctrl+shift+end", "select to document end"),
		areaKey(textarea.PageUp, keys("pgup"), "pgup", "page up"),
		areaKey(textarea.PageDown, keys("pgdown"), "pgdown", "page down"),

		areaKey(textarea.Backspace, keys("backspace", "ctrl+h"), "backspace", "delete left"),
		areaKey(textarea.Delete, keys("delete"), "del", "delete right"),
		areaKey(textarea.InsertNewline, keys("enter"), "enter", "newline"),
		areaKey(textarea.InsertTab, keys("tab"), "tab", "indent"),
		areaKey(textarea.Unindent, keys("shift+tab"), "shift+tab", "unindent"),
		areaKey(textarea.Indent, keys("ctrl+]"), "ctrl+]", "indent lines"),
		areaKey(textarea.Comment, keys("ctrl+_"), "ctrl+/", "comment lines"),
		areaKey(textarea.Reindent, keys("alt+i"), "alt+i", "reindent lines"),
		areaKey(textarea.ToggleOverwrite, keys("insert"), "ins", "overwrite"),
		areaKey(textarea.ToggleRect, keys("ctrl+r"), "ctrl+r", "rectangular selection"),

		areaKey(textarea.Undo, keys("ctrl+z"), "ctrl+z", "undo"),
		areaKey(textarea.Redo, keys("ctrl+y"), "ctrl+y", "redo"),
		areaKey(textarea.Copy, keys("ctrl+c"), "ctrl+c", "copy"),
		areaKey(textarea.Cut, keys("ctrl+x"), "ctrl+x", "cut"),
		areaKey(textarea.Paste, keys("ctrl+v"), "ctrl+v", "paste"),

		areaKey(textarea.SelectLine, keys("ctrl+l"), "ctrl+l", "select line"),
		areaKey(textarea.SelectWord, keys("ctrl+d"), "ctrl+d", "select word"),
		areaKey(textarea.MatchBracket, keys("ctrl+b"), "ctrl+b", "matching bracket"),
		areaKey(textarea.SelectBlock, keys("alt+b"), "alt+b", "select block"),

		sessionKey(session.ExpandSelection, keys("ctrl+w"), "ctrl+w", "expand selection"),
		sessionKey(session.ContractSelection, keys("alt+w"), "alt+w", "contract selection"),
		sessionKey(session.ShowHelp, keys("f1"), "f1", "help"),
		sessionKey(session.Complete, keys("ctrl+@", "ctrl+n"), "ctrl+space", "complete"),
		sessionKey(session.Reparse, keys("f5"), "f5", "reparse"),
	}}
}

// Lookup returns the action bound to msg.
func (km KeyMap) Lookup(msg tea.KeyMsg) (session.Action, bool) {
	for _, b := range km.Bindings {
		if key.Matches(msg, b.Binding) {
			return b.Action, true
		}
	}
	return session.Action{}, false
}

// Bind puts act on k ahead of every other binding for k.
func (km *KeyMap) Bind(k string, act session.Action) {
	b := Binding{
		Binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, act.String())),
		Action:  act,
	}
	km.Bindings = append([]Binding{b}, km.Bindings...)
}

// Override binds each key of keys to the named command. Every unknown name
// is reported; the known ones are still bound.
func (km *KeyMap) Override(keys map[string]string) error {
	var errs []error
	for k, name := range keys {
		act, ok := session.ParseAction(name)
		if !ok {
			errs = append(errs, fmt.Errorf("key %q: unknown command %q", k, name))
			continue
		}
		km.Bind(k, act)
	}
	return errors.Join(errs...)
}

// ShortHelp lists the session bindings for a help line.
func (km KeyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, b := range km.Bindings {
		if b.Action.Session != session.CmdNone {
			out = append(out, b.Binding)
		}
	}
	return out
}
