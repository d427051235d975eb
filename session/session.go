// Package session composes a textarea.Area with the collaborators a code
// editor needs: a tokenizer, a syntax tree for AST-scoped selection, a
// symbol index feeding hyperlinks, help lookups and completions.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iw2rmb/codearea/syntax"
	"github.com/iw2rmb/codearea/textarea"
	"github.com/iw2rmb/codearea/token"
)

// Function is an externally known function offered to hyperlinks and
// completion alongside the functions declared in the document.
type Function struct {
	Name      string
	Signature string
	Doc       string
}

// HelpListener is asked to show help for a word.
type HelpListener interface {
	ShowHelp(word string)
}

type HelpFunc func(word string)

func (f HelpFunc) ShowHelp(word string) { f(word) }

type Options struct {
	Area textarea.Options

	// Filename and Language pick the tokenizer. An empty Language is
	// detected from Filename and the text.
	Filename string
	Language string

	// Theme is the chroma style used by ExportHTML.
	Theme string

	Functions []Function
	Help      HelpListener
	Logger    *zerolog.Logger
}

// Session is not safe for concurrent use; it runs on the UI goroutine like
// the Area it owns.
type Session struct {
	area     *textarea.Area
	selector *syntax.Selector
	chroma   *token.Chroma
	log      zerolog.Logger
	help     HelpListener
	theme    string

	external map[string]Function
	file     *syntax.File
	parsed   uint64 // buffer version of file
	isGo     bool

	funcLinks  *textarea.Hyperlink
	fieldLinks *textarea.Hyperlink

	candidates []Completion
}

func New(opt Options) *Session {
	s := &Session{
		log:      zerolog.Nop(),
		help:     opt.Help,
		theme:    opt.Theme,
		external: make(map[string]Function, len(opt.Functions)),
	}
	if opt.Logger != nil {
		s.log = *opt.Logger
	}
	if s.theme == "" {
		s.theme = "monokai"
	}
	for _, f := range opt.Functions {
		s.external[f.Name] = f
	}

	areaOpt := opt.Area
	if areaOpt.Logger == nil {
		areaOpt.Logger = &s.log
	}
	s.chroma = newChroma(opt.Language, opt.Filename, areaOpt.Text)
	if s.chroma != nil {
		s.chroma.SetNames(token.NameFunc(s.IsFunction))
		if areaOpt.Tokenizer == nil {
			areaOpt.Tokenizer = s.chroma
		}
		s.isGo = s.chroma.Language() == "Go"
	}
	s.area = textarea.New(areaOpt)

	s.selector = syntax.NewSelector(s.area, syntax.SourceFunc(s.Tree))
	s.area.AddCaretListener(textarea.CaretListenerFunc(func(textarea.CaretEvent) {
		s.selector.CaretMoved()
	}))

	s.funcLinks = textarea.NewHyperlink(s.area, textarea.ResolverFunc(s.resolveFunction))
	s.fieldLinks = textarea.NewHyperlinkFinder(s.area, textarea.LinkFinderFunc(s.findField))
	s.area.AddOverlay(s.fieldLinks)
	s.area.AddOverlay(s.funcLinks)

	if err := s.Reparse(context.Background()); err != nil {
		s.log.Debug().Err(err).Msg("initial parse")
	}
	return s
}

func newChroma(language, filename, text string) *token.Chroma {
	var (
		c   *token.Chroma
		err error
	)
	switch {
	case language != "":
		c, err = token.NewChroma(language)
	case filename != "":
		c, err = token.NewChromaForFile(filename, []byte(text))
	default:
		return nil
	}
	if err != nil {
		return nil
	}
	return c
}

func (s *Session) Area() *textarea.Area { return s.area }

func (s *Session) Selector() *syntax.Selector { return s.selector }

// SetHelp replaces the help listener.
func (s *Session) SetHelp(l HelpListener) { s.help = l }

// Language returns the tokenizer's language, or "" for plain text.
func (s *Session) Language() string {
	if s.chroma == nil {
		return ""
	}
	return s.chroma.Language()
}

// SetText replaces the document, drops all highlights and reparses.
func (s *Session) SetText(text string) {
	s.area.SetText(text)
	s.selector.Reset()
	s.candidates = nil
	if err := s.Reparse(context.Background()); err != nil {
		s.log.Debug().Err(err).Msg("parse after set text")
	}
}

// Stale reports whether the document changed since the last parse.
func (s *Session) Stale() bool {
	return s.isGo && (s.file == nil || s.parsed != s.area.Buffer().Version())
}

// Reparse rebuilds the syntax tree and symbol index, and replaces the error
// highlights with the parser's syntax errors. Sources other than Go have no
// tree.
func (s *Session) Reparse(ctx context.Context) error {
	if !s.isGo {
		return nil
	}
	f, err := syntax.ParseGo(ctx, []byte(s.area.Text()))
	if err != nil {
		return fmt.Errorf("reparse: %w", err)
	}
	s.file = f
	s.parsed = s.area.Buffer().Version()

	s.area.ClearErrors()
	var errs []error
	for _, e := range f.Errors {
		if _, err := s.area.AddErrorHighlight(e.Message, e.Start, e.End); err != nil {
			errs = append(errs, err)
		}
	}
	// Function names may have changed; recolour.
	if s.chroma != nil {
		s.area.SetTokenizer(s.chroma)
	}
	s.log.Debug().Int("symbols", len(f.Index.Symbols())).Int("errors", len(f.Errors)).Msg("parsed")
	if len(errs) > 0 {
		return fmt.Errorf("error highlights: %w", errors.Join(errs...))
	}
	return nil
}

// Tree returns the syntax tree of the current text, reparsing first when
// the document changed. It is nil for sources without a grammar.
func (s *Session) Tree() syntax.Tree {
	if s.Stale() {
		if err := s.Reparse(context.Background()); err != nil {
			s.log.Debug().Err(err).Msg("reparse")
		}
	}
	if s.file == nil {
		return nil
	}
	return s.file.Tree
}

// Index returns the symbols of the last parse.
func (s *Session) Index() *syntax.Index {
	if s.file == nil {
		return nil
	}
	return s.file.Index
}

// SyntaxErrors returns the errors of the last parse.
func (s *Session) SyntaxErrors() []syntax.SyntaxError {
	if s.file == nil {
		return nil
	}
	return s.file.Errors
}

func (s *Session) ExpandSelection() error { return s.selector.Expand() }

func (s *Session) ContractSelection() error { return s.selector.Contract() }
