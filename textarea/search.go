package textarea

import (
	"context"
	"errors"
	"unicode"

	"github.com/iw2rmb/codearea/internal/grapheme"
)

// ErrNoMatch reports that the selection is not a match of the last search.
var ErrNoMatch = errors.New("selection is not a match")

type FindOptions struct {
	Pattern   string
	MatchCase bool
	// WholeWord requires the runes around a match to be non-identifier
	// runes.
	WholeWord bool
}

// Find searches forward from the caret, wrapping to the document start.
// When the selection is already a match the search resumes after it.
func (a *Area) Find(opt FindOptions) bool {
	return a.FindFrom(opt, a.findStart([]rune(a.buf.Text()), []rune(opt.Pattern), opt))
}

// findStart is the caret, or the selection end when the selection is a
// match of pat.
func (a *Area) findStart(text, pat []rune, opt FindOptions) int {
	if len(pat) > 0 && a.selEnd-a.selStart == len(pat) &&
		indexMatch(text, pat, opt, a.selStart, a.selEnd) == a.selStart {
		return a.selEnd
	}
	return a.CaretPosition()
}

// FindFrom searches [caret, end) when origin <= caret, then [0, origin).
// The caret stands for the selection end when the selection is a match.
// A match is selected and focus is requested for the area; a match that is
// already selected counts as found without a new selection.
func (a *Area) FindFrom(opt FindOptions, origin int) bool {
	a.lastFind, a.hasFind = opt, true
	if opt.Pattern == "" {
		return false
	}
	text := []rune(a.buf.Text())
	pat := []rune(opt.Pattern)
	origin = a.buf.ClampOffset(origin)

	caret := a.findStart(text, pat, opt)
	if origin <= caret && a.selectMatch(text, pat, opt, caret, len(text)) {
		return true
	}
	if a.selectMatch(text, pat, opt, 0, origin) {
		return true
	}
	a.log.Debug().Str("pattern", opt.Pattern).Msg("no match")
	return false
}

func (a *Area) selectMatch(text, pat []rune, opt FindOptions, from, to int) bool {
	i := indexMatch(text, pat, opt, from, to)
	if i < 0 {
		return false
	}
	if a.selStart == i && a.selEnd == i+len(pat) {
		return true
	}
	a.rect = false
	_ = a.Select(i, i+len(pat))
	if a.focus != nil {
		a.focus.RequestFocus(a)
	}
	return true
}

// indexMatch returns the first match of pat lying inside [from, to), or -1.
func indexMatch(text, pat []rune, opt FindOptions, from, to int) int {
	from = max(from, 0)
	to = min(to, len(text))
	for i := from; i+len(pat) <= to; i++ {
		if !runesEqual(text[i:i+len(pat)], pat, opt.MatchCase) {
			continue
		}
		if opt.WholeWord && !wordBounded(text, i, i+len(pat)) {
			continue
		}
		return i
	}
	return -1
}

func runesEqual(a, b []rune, matchCase bool) bool {
	for i := range b {
		x, y := a[i], b[i]
		if x == y {
			continue
		}
		if matchCase || unicode.ToLower(x) != unicode.ToLower(y) {
			return false
		}
	}
	return true
}

func wordBounded(text []rune, start, end int) bool {
	if start > 0 && grapheme.IsIdentRune(text[start-1]) {
		return false
	}
	if end < len(text) && grapheme.IsIdentRune(text[end]) {
		return false
	}
	return true
}

// ReplaceCurrentMatch replaces the selection with s when the selection is a
// match of the last search.
func (a *Area) ReplaceCurrentMatch(s string) error {
	if !a.hasFind || a.selStart == a.selEnd {
		return ErrNoMatch
	}
	text := []rune(a.buf.Text())
	pat := []rune(a.lastFind.Pattern)
	if a.selEnd-a.selStart != len(pat) || indexMatch(text, pat, a.lastFind, a.selStart, a.selEnd) != a.selStart {
		return ErrNoMatch
	}
	a.rect = false
	return a.ReplaceSelection(s)
}

// ReplaceAll replaces every match of opt with s: first from the caret to
// the end, then from the start up to where the caret was. Each replacement
// is one undo step. ctx is checked before every match; on cancellation the
// replacements made so far are kept and the count is returned with
// ctx.Err().
func (a *Area) ReplaceAll(ctx context.Context, opt FindOptions, s string) (int, error) {
	if err := a.checkEditable("replace all"); err != nil {
		return 0, err
	}
	a.lastFind, a.hasFind = opt, true
	if opt.Pattern == "" {
		return 0, nil
	}
	pat := []rune(opt.Pattern)
	repl := len([]rune(s))
	origin := a.CaretPosition()
	count := 0

	run := func(pos, limit int, shiftLimit bool) error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			i := indexMatch([]rune(a.buf.Text()), pat, opt, pos, limit)
			if i < 0 {
				return nil
			}
			a.rect = false
			if err := a.Select(i, i+len(pat)); err != nil {
				return err
			}
			if err := a.ReplaceSelection(s); err != nil {
				return err
			}
			count++
			pos = i + repl
			if shiftLimit {
				limit += repl - len(pat)
			} else {
				limit = a.buf.Len()
			}
		}
	}

	err := run(origin, a.buf.Len(), false)
	if err == nil {
		err = run(0, origin, true)
	}
	ev := a.log.Debug().Str("pattern", opt.Pattern).Int("count", count)
	if err != nil {
		ev.Err(err).Msg("replace all stopped")
		return count, err
	}
	ev.Msg("replace all")
	return count, nil
}
