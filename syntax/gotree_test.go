package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/codearea/buffer"
)

const pointSrc = `package geom

type Point struct {
	X, Y int
	name string
}

func (p *Point) Len() int { return p.X + p.Y }

func Sum(a, b int) int {
	return a + b
}
`

func parse(t *testing.T, src string) *File {
	t.Helper()
	f, err := ParseGo(context.Background(), []byte(src))
	require.NoError(t, err)
	return f
}

func kinds(n Node) []string {
	var out []string
	for ; n != nil; n = n.Parent() {
		out = append(out, n.(*Branch).Kind())
	}
	return out
}

func TestParseGoTree(t *testing.T) {
	f := parse(t, pointSrc)
	assert.Empty(t, f.Errors)

	root := f.Tree.Root()
	assert.Equal(t, "source_file", root.Kind())
	assert.Equal(t, buffer.Location{Line: 1, Column: 1}, root.Start())

	// "a" in "\treturn a + b"
	n := f.Tree.NodeAt(buffer.Location{Line: 11, Column: 9}, buffer.Location{Line: 11, Column: 9})
	require.NotNil(t, n)
	chain := kinds(n)
	assert.Equal(t, "identifier", chain[0])
	assert.Equal(t, "binary_expression", chain[1])
	assert.Contains(t, chain, "function_declaration")
	assert.Equal(t, "source_file", chain[len(chain)-1])

	bin := n.Parent()
	assert.Equal(t, buffer.Location{Line: 11, Column: 9}, bin.Start())
	assert.Equal(t, buffer.Location{Line: 11, Column: 14}, bin.End())
}

func TestParseGoRuneColumns(t *testing.T) {
	f := parse(t, "package p\n\nvar é = 1\n")

	var lit *Branch
	f.Tree.Root().Walk(func(n *Branch, _ int) bool {
		if n.Kind() == "int_literal" {
			lit = n
			return false
		}
		return true
	})
	require.NotNil(t, lit)
	assert.Equal(t, buffer.Location{Line: 3, Column: 9}, lit.Start())
	assert.Equal(t, buffer.Location{Line: 3, Column: 10}, lit.End())
}

func TestParseGoErrors(t *testing.T) {
	f := parse(t, "package p\n\nfunc f( {\n")
	require.NotEmpty(t, f.Errors)
	assert.NotEmpty(t, f.Errors[0].Error())
	assert.NotNil(t, f.Tree.Root(), "a broken source still has a tree")
}

func TestIndex(t *testing.T) {
	idx := parse(t, pointSrc).Index

	types := idx.Types()
	require.Len(t, types, 1)
	assert.Equal(t, "Point", types[0].Name)
	assert.Equal(t, "type Point struct_type", types[0].Signature)

	var fields []string
	for _, f := range idx.Fields() {
		fields = append(fields, f.Name)
		assert.Equal(t, "Point", f.Receiver)
	}
	assert.Equal(t, []string{"X", "Y", "name"}, fields)

	funcs := idx.Functions()
	require.Len(t, funcs, 2)
	assert.Equal(t, "Len", funcs[0].Name)
	assert.Equal(t, KindMethod, funcs[0].Kind)
	assert.Equal(t, "Point", funcs[0].Receiver)
	assert.Equal(t, "func (p *Point) Len() int", funcs[0].Signature)
	assert.Equal(t, "func Sum(a, b int) int", funcs[1].Signature)
	assert.Equal(t, buffer.Location{Line: 10, Column: 1}, funcs[1].Start)

	s, ok := idx.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, KindField, s.Kind)
	assert.Equal(t, "name string", s.Signature)
	_, ok = idx.Lookup("missing")
	assert.False(t, ok)

	assert.True(t, idx.IsFunction("Sum"))
	assert.True(t, idx.IsFunction("Len"))
	assert.False(t, idx.IsFunction("Point"))
	assert.Equal(t, []string{"Len", "Point", "Sum", "X", "Y", "name"}, idx.Names())
	assert.Len(t, idx.Symbols(), 6)
}

func TestNilIndex(t *testing.T) {
	var idx *Index
	assert.Nil(t, idx.Functions())
	assert.False(t, idx.IsFunction("x"))
	assert.Nil(t, idx.Names())
}

func TestSymbolKindString(t *testing.T) {
	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "field", KindField.String())
	assert.Equal(t, "unknown", SymbolKind(9).String())
}
