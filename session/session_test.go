package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/codearea/syntax"
	"github.com/iw2rmb/codearea/textarea"
	"github.com/iw2rmb/codearea/token"
)

const accSrc = `package calc

type Acc struct {
	total int
}

func (a *Acc) Add(n int) { a.total += n }

func Sum(a, b int) int {
	return a + b
}
`

func newGo(t *testing.T, text string, fns ...Function) *Session {
	t.Helper()
	return New(Options{
		Area:      textarea.Options{Text: text, HistoryLimit: 100, VisibleLines: 20},
		Language:  "go",
		Functions: fns,
	})
}

func selected(s *Session) string {
	text, _ := s.Area().SelectedText()
	return text
}

func TestNewParsesGo(t *testing.T) {
	s := newGo(t, accSrc)

	assert.Equal(t, "Go", s.Language())
	assert.False(t, s.Stale())
	assert.Empty(t, s.SyntaxErrors())
	assert.True(t, s.IsFunction("Sum"))
	assert.True(t, s.IsFunction("Add"))
	assert.False(t, s.IsFunction("Acc"))
	assert.Len(t, s.Symbols(), 4)
}

func TestExpandContractSelection(t *testing.T) {
	s := newGo(t, accSrc)
	a := s.Area()
	// before "a" in "\treturn a + b"
	require.NoError(t, a.SetCaretPosition(a.LineStart(9)+8))

	for _, want := range []string{"a", "a + b", "return a + b"} {
		require.True(t, s.Do(Action{Session: ExpandSelection}))
		assert.Equal(t, want, selected(s))
	}
	for _, want := range []string{"a + b", "a"} {
		require.True(t, s.Do(Action{Session: ContractSelection}))
		assert.Equal(t, want, selected(s))
	}
	require.NoError(t, s.ContractSelection())
	assert.False(t, a.HasSelection())
	assert.Equal(t, a.LineStart(9)+8, a.CaretPosition())
}

func TestTreeReparsesAfterEdits(t *testing.T) {
	s := newGo(t, accSrc)
	require.NoError(t, s.Area().InsertText(0, "// head\n"))
	assert.True(t, s.Stale())

	tree := s.Tree()
	require.NotNil(t, tree)
	assert.False(t, s.Stale())
	sum, ok := s.Index().Lookup("Sum")
	require.True(t, ok)
	assert.Equal(t, 10, sum.Start.Line)
}

func TestSyntaxErrorsBecomeHighlights(t *testing.T) {
	s := newGo(t, "package p\n\nfunc f( {\n")
	require.NotEmpty(t, s.SyntaxErrors())
	assert.NotEmpty(t, s.Area().Highlights().Entries(textarea.TagError))

	s.SetText(accSrc)
	assert.Empty(t, s.SyntaxErrors())
	assert.Empty(t, s.Area().Highlights().Entries(textarea.TagError))
}

func TestPlainTextHasNoTree(t *testing.T) {
	s := New(Options{Area: textarea.Options{Text: "just words"}})
	assert.Equal(t, "", s.Language())
	assert.Nil(t, s.Tree())
	assert.Nil(t, s.Index())

	require.NoError(t, s.Area().SetCaretPosition(2))
	require.NoError(t, s.ExpandSelection())
	assert.False(t, s.Area().HasSelection())

	err := s.ExportHTML(&bytes.Buffer{})
	assert.ErrorIs(t, err, token.ErrUnknownLanguage)
}

func TestFunctionHyperlink(t *testing.T) {
	s := newGo(t, accSrc, Function{Name: "Max", Signature: "Max(a, b int) int"})

	ref, ok := s.Hover(5, 8) // "Sum" in its declaration
	require.True(t, ok)
	assert.Equal(t, "function", ref.Kind)
	assert.Equal(t, "func Sum(a, b int) int", ref.Detail)
	_, isSym := ref.Payload.(syntax.Symbol)
	assert.True(t, isSym)

	ref, ok = s.Hover(15, 6) // method "Add"
	require.True(t, ok)
	assert.Equal(t, "Add", ref.Name)

	_, ok = s.Hover(0, 1)
	assert.False(t, ok, "blank line")
}

func TestFieldHyperlink(t *testing.T) {
	s := newGo(t, accSrc)

	ref, ok := s.Hover(30, 6) // "total" in "a.total += n"
	require.True(t, ok)
	assert.Equal(t, "field", ref.Kind)
	assert.Equal(t, "total", ref.Name)
	assert.Equal(t, "Acc.total int", ref.Detail)

	tip, ok := s.Area().TooltipAt(31, 6)
	require.True(t, ok)
	assert.Equal(t, "Acc.total int", tip)

	_, ok = s.Hover(34, 6)
	assert.False(t, ok, "the space after a field does not link")
}

func TestClickReportsReference(t *testing.T) {
	s := newGo(t, accSrc)
	var got []textarea.RefInfo
	s.AddReferenceListener(textarea.ReferenceListenerFunc(func(ref textarea.RefInfo) {
		got = append(got, ref)
	}))

	assert.True(t, s.Click(29, 6))
	assert.True(t, s.Click(6, 8))
	assert.False(t, s.Click(0, 1))
	require.Len(t, got, 2)
	assert.Equal(t, "total", got[0].Name)
	assert.Equal(t, "Sum", got[1].Name)
}

func TestExternalFunctionLink(t *testing.T) {
	s := newGo(t, "package p\n\nvar x = Max(1, 2)\n", Function{Name: "Max", Signature: "Max(a, b int) int"})

	ref, ok := s.Hover(9, 2)
	require.True(t, ok)
	assert.Equal(t, "Max(a, b int) int", ref.Detail)
	assert.IsType(t, Function{}, ref.Payload)
}

func TestHelpWord(t *testing.T) {
	var words []string
	s := New(Options{
		Area:     textarea.Options{Text: accSrc},
		Language: "go",
		Help:     HelpFunc(func(w string) { words = append(words, w) }),
	})
	a := s.Area()

	require.NoError(t, a.SetCaretPosition(a.LineStart(8)+6))
	require.True(t, s.Do(Action{Session: ShowHelp}))

	require.NoError(t, a.Select(a.LineStart(2), a.LineStart(2)+4))
	require.True(t, s.Do(Action{Session: ShowHelp}))

	require.NoError(t, a.SetCaretPosition(a.LineStart(1)))
	assert.False(t, s.Do(Action{Session: ShowHelp}), "blank line")

	assert.Equal(t, []string{"Sum", "type"}, words)

	noHelp := newGo(t, accSrc)
	require.NoError(t, noHelp.Area().SetCaretPosition(noHelp.Area().LineStart(8)+6))
	assert.False(t, noHelp.ShowHelp())
}

func TestCompletions(t *testing.T) {
	s := newGo(t, accSrc, Function{Name: "Max", Signature: "Max(a, b int) int"}, Function{Name: "PI"})

	var labels []string
	for _, c := range s.Completions("") {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Add", "Max", "PI", "Sum"}, labels)

	got := s.Completions("s")
	require.Len(t, got, 1)
	assert.Equal(t, Completion{Label: "Sum", Insert: "Sum(", Detail: "func Sum(a, b int) int"}, got[0])

	got = s.Completions("p")
	require.Len(t, got, 1)
	assert.Equal(t, "PI", got[0].Insert, "no signature, no parenthesis")
}

func TestCompleteSingle(t *testing.T) {
	s := newGo(t, "package p\n\nvar x = ma", Function{Name: "Max", Signature: "Max(a, b int) int"})
	require.True(t, s.Do(Action{Area: textarea.DocEnd}))

	require.True(t, s.Do(Action{Session: Complete}))
	assert.Equal(t, "package p\n\nvar x = Max(", s.Area().Text())
	assert.Empty(t, s.Candidates())
}

func TestCompleteMany(t *testing.T) {
	src := "package p\n\nfunc Sum() {}\nfunc Sub() {}\n\nvar x = Su"
	s := newGo(t, src)
	require.True(t, s.Do(Action{Area: textarea.DocEnd}))

	require.True(t, s.Do(Action{Session: Complete}))
	cands := s.Candidates()
	require.Len(t, cands, 2)
	assert.Equal(t, "Sub", cands[0].Label)

	require.NoError(t, s.ApplyCompletion(cands[1]))
	assert.Equal(t, "package p\n\nfunc Sum() {}\nfunc Sub() {}\n\nvar x = Sum(", s.Area().Text())

	require.True(t, s.Do(Action{Area: textarea.DocEnd}))
	require.NoError(t, s.Area().InsertText(s.Area().Len(), ") + Su"))
	require.True(t, s.Do(Action{Area: textarea.DocEnd}))
	require.True(t, s.Do(Action{Session: Complete}))
	require.NotEmpty(t, s.Candidates())
	s.Do(Action{Area: textarea.CharLeft})
	assert.Empty(t, s.Candidates(), "other actions drop pending completions")
}

func TestCompleteReadOnly(t *testing.T) {
	s := New(Options{Area: textarea.Options{Text: "package p\nvar x = Su", ReadOnly: true}, Language: "go"})
	require.True(t, s.Do(Action{Area: textarea.DocEnd}))
	assert.False(t, s.Do(Action{Session: Complete}))
}

func TestExportHTML(t *testing.T) {
	s := newGo(t, accSrc)
	var buf bytes.Buffer
	require.NoError(t, s.ExportHTML(&buf))
	out := buf.String()
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "Sum")
}

func TestParseAction(t *testing.T) {
	act, ok := ParseAction("expand-selection")
	require.True(t, ok)
	assert.Equal(t, ExpandSelection, act.Session)
	assert.Equal(t, "expand-selection", act.String())

	act, ok = ParseAction("char-left")
	require.True(t, ok)
	assert.Equal(t, textarea.CharLeft, act.Area)
	assert.Equal(t, "char-left", act.String())

	_, ok = ParseAction("none")
	assert.False(t, ok)
	_, ok = ParseAction("bogus")
	assert.False(t, ok)

	names := ActionNames()
	assert.Contains(t, names, "complete")
	assert.Contains(t, names, "paste")
	assert.Equal(t, "unknown", Command(200).String())
}

func TestDoUnknown(t *testing.T) {
	s := newGo(t, accSrc)
	assert.False(t, s.Do(Action{Session: Command(200)}))
	assert.False(t, s.Do(Action{}))
	assert.True(t, s.Do(Action{Session: Reparse}))
	assert.NoError(t, s.Reparse(context.Background()))
}
