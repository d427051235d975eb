// Package config loads codearea settings from TOML files and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/iw2rmb/codearea/session"
	"github.com/iw2rmb/codearea/textarea"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration structure.
type Config struct {
	TabSize          int           `toml:"tab_size"`
	ElectricScroll   int           `toml:"electric_scroll"`
	BlinkInterval    time.Duration `toml:"blink_interval"`
	HistoryLimit     int           `toml:"history_limit"`
	BlockCaret       bool          `toml:"block_caret"`
	LineHighlight    bool          `toml:"line_highlight"`
	BracketHighlight bool          `toml:"bracket_highlight"`
	LineNumbers      bool          `toml:"line_numbers"`
	Theme            string        `toml:"theme"`
	// Language is a chroma lexer name; empty means detect from the file.
	Language  string `toml:"language"`
	NoWordSep string `toml:"no_word_sep"`
	ReadOnly  bool   `toml:"read_only"`

	// Keys binds key names (as bubbletea prints them, e.g. "ctrl+w") to
	// command names. Bindings here replace the defaults for that key.
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabSize:          4,
		ElectricScroll:   3,
		BlinkInterval:    500 * time.Millisecond,
		HistoryLimit:     1000,
		LineHighlight:    true,
		BracketHighlight: true,
		LineNumbers:      true,
		Theme:            "monokai",
		NoWordSep:        "_",
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("open config: %w", err)
		default:
			defer f.Close()
			if cfg, err = Decode(f); err != nil {
				return cfg, fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("unknown key %q: %w", undec[0].String(), ErrInvalid)
	}
	return cfg, nil
}

// Validate returns every problem found, joined.
func (c Config) Validate() error {
	var errs []error
	if c.TabSize < 1 || c.TabSize > 16 {
		errs = append(errs, fmt.Errorf("tab_size=%d must be between 1 and 16", c.TabSize))
	}
	if c.ElectricScroll < 0 {
		errs = append(errs, fmt.Errorf("electric_scroll=%d must not be negative", c.ElectricScroll))
	}
	if c.BlinkInterval < 0 {
		errs = append(errs, fmt.Errorf("blink_interval=%s must not be negative", c.BlinkInterval))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("history_limit=%d must not be negative", c.HistoryLimit))
	}
	if _, ok := styles.Registry[c.Theme]; !ok {
		errs = append(errs, fmt.Errorf("theme=%q is not a known style", c.Theme))
	}
	for key, name := range c.Keys {
		if _, ok := session.ParseAction(name); !ok {
			errs = append(errs, fmt.Errorf("keys.%q=%q is not a command", key, name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Area maps the settings onto area options. Text, sizes and collaborators
// are left to the caller.
func (c Config) Area() textarea.Options {
	return textarea.Options{
		HistoryLimit:     c.HistoryLimit,
		TabSize:          c.TabSize,
		ElectricScroll:   c.ElectricScroll,
		BlockCaret:       c.BlockCaret,
		NoBlink:          c.BlinkInterval == 0,
		LineHighlight:    c.LineHighlight,
		BracketHighlight: c.BracketHighlight,
		NoWordSep:        c.NoWordSep,
		ReadOnly:         c.ReadOnly,
	}
}

// Session maps the settings onto session options for a file.
func (c Config) Session(filename, text string) session.Options {
	opt := session.Options{
		Area:     c.Area(),
		Filename: filename,
		Language: c.Language,
		Theme:    c.Theme,
	}
	opt.Area.Text = text
	return opt
}

func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"CODEAREA_THEME", func(v string) {
			if v != "" {
				cfg.Theme = v
			}
		}},
		{"CODEAREA_LANGUAGE", func(v string) {
			if v != "" {
				cfg.Language = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DefaultPath returns ~/.config/codearea/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "codearea", "config.toml"), nil
}
