// Package token defines the tokenizer contract used to colour and measure
// lines, a single-entry per-line cache, and a chroma-backed tokenizer.
package token

import "unicode/utf8"

// Category classifies a run of characters for styling and measurement.
type Category uint8

const (
	Null Category = iota
	Comment1
	Comment2
	Literal1
	Literal2
	Label
	Keyword1
	Keyword2
	Keyword3
	Function
	Operator
	Invalid

	categoryCount
)

var categoryNames = [...]string{
	Null:     "null",
	Comment1: "comment1",
	Comment2: "comment2",
	Literal1: "literal1",
	Literal2: "literal2",
	Label:    "label",
	Keyword1: "keyword1",
	Keyword2: "keyword2",
	Keyword3: "keyword3",
	Function: "function",
	Operator: "operator",
	Invalid:  "invalid",
}

func (c Category) String() string {
	if c >= categoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Null; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

// Span is a contiguous run of Length runes in one category.
type Span struct {
	Category Category
	Length   int
}

// Tokenizer splits one line (without its terminator) into spans.
// Implementations must be pure for the same inputs and must not keep
// references to returned slices.
type Tokenizer interface {
	Tokenize(text string, line int) []Span
}

type Func func(text string, line int) []Span

func (f Func) Tokenize(text string, line int) []Span { return f(text, line) }

// Normalize makes spans cover exactly n runes: non-positive spans are
// dropped, overflow is cut, a shortfall is padded with Null, and adjacent
// spans of the same category are merged.
func Normalize(spans []Span, n int) []Span {
	out := make([]Span, 0, len(spans)+1)
	used := 0
	push := func(c Category, l int) {
		if k := len(out); k > 0 && out[k-1].Category == c {
			out[k-1].Length += l
			return
		}
		out = append(out, Span{Category: c, Length: l})
	}
	for _, s := range spans {
		if s.Length <= 0 || used >= n {
			continue
		}
		l := s.Length
		if used+l > n {
			l = n - used
		}
		push(s.Category, l)
		used += l
	}
	if used < n {
		push(Null, n-used)
	}
	return out
}

// Plain returns a single Null span covering text.
func Plain(text string) []Span {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return nil
	}
	return []Span{{Category: Null, Length: n}}
}
