package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnknownLanguage reports a language with no lexer.
var ErrUnknownLanguage = errors.New("unknown language")

// NameResolver decides whether a bare identifier names a known function.
type NameResolver interface {
	IsFunction(name string) bool
}

type NameFunc func(name string) bool

func (f NameFunc) IsFunction(name string) bool { return f(name) }

// Chroma tokenizes lines with a chroma lexer. Lines are lexed on their own,
// so multi-line constructs are coloured per line.
type Chroma struct {
	lexer chroma.Lexer
	names NameResolver
}

// NewChroma returns a tokenizer for a chroma language name or alias.
func NewChroma(language string) (*Chroma, error) {
	l := lexers.Get(language)
	if l == nil {
		return nil, fmt.Errorf("lexer %q: %w", language, ErrUnknownLanguage)
	}
	return &Chroma{lexer: chroma.Coalesce(l)}, nil
}

// NewChromaForFile picks a lexer from the detected language of filename,
// falling back to chroma's own filename matching.
func NewChromaForFile(filename string, content []byte) (*Chroma, error) {
	if lang := DetectLanguage(filename, content); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return &Chroma{lexer: chroma.Coalesce(l)}, nil
		}
	}
	if l := lexers.Match(filename); l != nil {
		return &Chroma{lexer: chroma.Coalesce(l)}, nil
	}
	return nil, fmt.Errorf("lexer for %q: %w", filename, ErrUnknownLanguage)
}

// SetNames sets the resolver used to promote plain names to Function.
func (c *Chroma) SetNames(r NameResolver) { c.names = r }

// Language returns the lexer's name.
func (c *Chroma) Language() string { return c.lexer.Config().Name }

// Lexer returns the underlying lexer.
func (c *Chroma) Lexer() chroma.Lexer { return c.lexer }

func (c *Chroma) Tokenize(text string, _ int) []Span {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return nil
	}
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return Plain(text)
	}
	spans := make([]Span, 0, 8)
	for _, tok := range it.Tokens() {
		l := utf8.RuneCountInString(tok.Value)
		if l == 0 {
			continue
		}
		cat := categoryOf(tok.Type)
		if cat == Null && c.names != nil && isPlainName(tok.Type) {
			if name := strings.TrimSpace(tok.Value); name != "" && c.names.IsFunction(name) {
				cat = Function
			}
		}
		spans = append(spans, Span{Category: cat, Length: l})
	}
	return Normalize(spans, n)
}

func isPlainName(tt chroma.TokenType) bool {
	return tt == chroma.Name || tt == chroma.NameOther || tt == chroma.NameVariable
}

func categoryOf(tt chroma.TokenType) Category {
	switch {
	case tt == chroma.CommentPreproc || tt == chroma.CommentSpecial:
		return Comment2
	case tt.InCategory(chroma.Comment):
		return Comment1
	case tt.InSubCategory(chroma.LiteralString):
		return Literal1
	case tt.InCategory(chroma.Literal):
		return Literal2
	case tt == chroma.KeywordType:
		return Keyword3
	case tt == chroma.KeywordConstant || tt == chroma.KeywordDeclaration || tt == chroma.KeywordNamespace:
		return Keyword2
	case tt.InCategory(chroma.Keyword):
		return Keyword1
	case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
		return Function
	case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
		return Keyword3
	case tt == chroma.NameLabel:
		return Label
	case tt.InCategory(chroma.Operator):
		return Operator
	case tt == chroma.Error:
		return Invalid
	default:
		return Null
	}
}

// TokenType returns a representative chroma token type for c, used to pick
// colours from a chroma style.
func (c Category) TokenType() chroma.TokenType {
	switch c {
	case Comment1:
		return chroma.Comment
	case Comment2:
		return chroma.CommentPreproc
	case Literal1:
		return chroma.LiteralString
	case Literal2:
		return chroma.LiteralNumber
	case Label:
		return chroma.NameLabel
	case Keyword1:
		return chroma.Keyword
	case Keyword2:
		return chroma.KeywordDeclaration
	case Keyword3:
		return chroma.KeywordType
	case Function:
		return chroma.NameFunction
	case Operator:
		return chroma.Operator
	case Invalid:
		return chroma.Error
	default:
		return chroma.Text
	}
}
