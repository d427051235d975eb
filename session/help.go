package session

import (
	"sort"
	"strings"

	"github.com/iw2rmb/codearea/internal/grapheme"
	"github.com/iw2rmb/codearea/syntax"
)

// HelpWord returns the selected text, or the identifier touching the caret
// when nothing is selected.
func (s *Session) HelpWord() (string, bool) {
	if text, ok := s.area.SelectedText(); ok && text != "" {
		return text, true
	}
	line := s.area.CaretLine()
	text, ok := s.area.LineText(line)
	if !ok {
		return "", false
	}
	runes := []rune(text)
	start, end := grapheme.IdentBounds(runes, s.area.CaretPosition()-s.area.LineStart(line))
	if start == end {
		return "", false
	}
	return string(runes[start:end]), true
}

// ShowHelp passes the help word to the help listener.
func (s *Session) ShowHelp() bool {
	word, ok := s.HelpWord()
	if !ok || s.help == nil {
		s.log.Debug().Bool("word", ok).Msg("help unavailable")
		return false
	}
	s.log.Debug().Str("word", word).Msg("help")
	s.help.ShowHelp(word)
	return true
}

// Completion is one candidate for the identifier prefix before the caret.
type Completion struct {
	Label  string
	Insert string
	Detail string
}

// Completions returns the functions whose names start with prefix, ignoring
// case, sorted by name. An empty prefix matches every function. Names with a
// parenthesised signature insert an opening parenthesis.
func (s *Session) Completions(prefix string) []Completion {
	lower := strings.ToLower(prefix)
	seen := map[string]bool{}
	var out []Completion
	add := func(name, sig string) {
		if seen[name] || !strings.HasPrefix(strings.ToLower(name), lower) {
			return
		}
		seen[name] = true
		c := Completion{Label: name, Insert: name, Detail: sig}
		if strings.Contains(sig, "(") {
			c.Insert += "("
		}
		out = append(out, c)
	}
	for _, f := range s.currentIndex().Functions() {
		add(f.Name, f.Signature)
	}
	for _, f := range s.external {
		add(f.Name, f.Signature)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// prefix returns the identifier run ending at the caret.
func (s *Session) prefix() (start int, word string) {
	caret := s.area.CaretPosition()
	line := s.area.CaretLine()
	text, _ := s.area.LineText(line)
	runes := []rune(text)
	col := caret - s.area.LineStart(line)
	start = col
	for start > 0 && grapheme.IsIdentRune(runes[start-1]) {
		start--
	}
	return caret - (col - start), string(runes[start:col])
}

// Complete completes the identifier before the caret. A single candidate is
// applied at once; several are kept for the host to offer through
// Candidates and ApplyCompletion.
func (s *Session) Complete() bool {
	s.candidates = nil
	if s.area.HasSelection() || !s.area.IsEditable() {
		return false
	}
	_, word := s.prefix()
	found := s.Completions(word)
	s.log.Debug().Str("prefix", word).Int("candidates", len(found)).Msg("complete")
	switch len(found) {
	case 0:
		return false
	case 1:
		return s.ApplyCompletion(found[0]) == nil
	}
	s.candidates = found
	return true
}

// Candidates returns the completions pending from the last Complete.
func (s *Session) Candidates() []Completion { return s.candidates }

func (s *Session) ClearCandidates() { s.candidates = nil }

// ApplyCompletion replaces the identifier prefix before the caret with
// c.Insert.
func (s *Session) ApplyCompletion(c Completion) error {
	s.candidates = nil
	start, _ := s.prefix()
	if err := s.area.Select(start, s.area.CaretPosition()); err != nil {
		return err
	}
	return s.area.ReplaceSelection(c.Insert)
}

// Symbols lists the document's symbols for an outline.
func (s *Session) Symbols() []syntax.Symbol { return s.Index().Symbols() }
