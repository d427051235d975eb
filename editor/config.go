package editor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/codearea/session"
	"github.com/iw2rmb/codearea/textarea"
)

// Config configures a Model. The zero value is usable.
type Config struct {
	// Name is shown in the status line.
	Name string

	// KeyMap defaults to DefaultKeyMap. Keys are applied over it.
	KeyMap *KeyMap
	Keys   map[string]string

	// Style defaults to DefaultStyle(Theme).
	Style *Style
	Theme string

	ShowLineNumbers bool

	// BlinkInterval is the caret blink period; 0 keeps the caret on.
	BlinkInterval time.Duration
	// ReparseDelay debounces reparsing after edits; 0 leaves reparsing to
	// the session's lazy tree lookups.
	ReparseDelay time.Duration

	// Focus, when set, is told which area has focus.
	Focus *textarea.FocusContext
	// Help also receives the words the session asks help for.
	Help session.HelpListener

	Logger *zerolog.Logger
}
