package syntax

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/iw2rmb/codearea/buffer"
)

// SyntaxError is a parse problem reported by tree-sitter.
type SyntaxError struct {
	Start, End buffer.Location
	Message    string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Start, e.Message)
}

// File is the result of parsing one Go source.
type File struct {
	Tree   *BranchTree
	Index  *Index
	Errors []SyntaxError
}

// ParseGo parses src with tree-sitter's Go grammar. The tree keeps named
// nodes only. A source with syntax errors still yields a tree.
func ParseGo(ctx context.Context, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse go: %w", err)
	}
	defer tree.Close()

	p := newPoints(src)
	root := tree.RootNode()
	f := &File{
		Tree:  NewBranchTree(p.branch(root)),
		Index: buildIndex(root, src, p),
	}
	if root.HasError() {
		f.Errors = collectErrors(root, src, p)
	}
	return f, nil
}

// points converts tree-sitter byte points to rune locations.
type points struct {
	src    []byte
	starts []int
}

func newPoints(src []byte) *points {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &points{src: src, starts: starts}
}

func (p *points) loc(pt sitter.Point) buffer.Location {
	row := int(pt.Row)
	if row >= len(p.starts) {
		row = len(p.starts) - 1
	}
	from := p.starts[row]
	to := min(from+int(pt.Column), len(p.src))
	return buffer.Location{Line: row + 1, Column: utf8.RuneCount(p.src[from:to]) + 1}
}

func (p *points) branch(n *sitter.Node) *Branch {
	b := NewBranch(n.Type(), p.loc(n.StartPoint()), p.loc(n.EndPoint()))
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil || c.IsMissing() {
			continue
		}
		b.Add(p.branch(c))
	}
	return b
}

func collectErrors(n *sitter.Node, src []byte, p *points) []SyntaxError {
	var errs []SyntaxError
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch {
		case n.IsMissing():
			errs = append(errs, SyntaxError{
				Start:   p.loc(n.StartPoint()),
				End:     p.loc(n.EndPoint()),
				Message: "missing " + n.Type(),
			})
			return
		case n.Type() == "ERROR":
			errs = append(errs, SyntaxError{
				Start:   p.loc(n.StartPoint()),
				End:     p.loc(n.EndPoint()),
				Message: "unexpected " + excerpt(n.Content(src)),
			})
			return
		case !n.HasError():
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(n)
	return errs
}

func excerpt(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if utf8.RuneCountInString(s) > 20 {
		s = string([]rune(s)[:20]) + "..."
	}
	return fmt.Sprintf("%q", s)
}
