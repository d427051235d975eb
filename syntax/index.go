package syntax

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/iw2rmb/codearea/buffer"
)

// SymbolKind classifies indexed symbols.
type SymbolKind int

const (
	KindFunction SymbolKind = iota
	KindMethod
	KindType
	KindField
)

func (k SymbolKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Symbol is a declared name found in a Go source.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string // e.g. "func (b *Buf) Len() int"
	Receiver  string // receiver type for methods, owning type for fields
	Start     buffer.Location
	End       buffer.Location
}

// Index holds the top-level declarations of one source, in document order.
type Index struct {
	symbols []Symbol
	byName  map[string]int
}

func newIndex(syms []Symbol) *Index {
	idx := &Index{symbols: syms, byName: make(map[string]int, len(syms))}
	for i, s := range syms {
		if _, ok := idx.byName[s.Name]; !ok {
			idx.byName[s.Name] = i
		}
	}
	return idx
}

// Symbols returns every indexed symbol.
func (x *Index) Symbols() []Symbol {
	if x == nil {
		return nil
	}
	return append([]Symbol(nil), x.symbols...)
}

// Functions returns functions and methods.
func (x *Index) Functions() []Symbol {
	return x.filter(func(k SymbolKind) bool { return k == KindFunction || k == KindMethod })
}

func (x *Index) Fields() []Symbol {
	return x.filter(func(k SymbolKind) bool { return k == KindField })
}

func (x *Index) Types() []Symbol {
	return x.filter(func(k SymbolKind) bool { return k == KindType })
}

func (x *Index) filter(keep func(SymbolKind) bool) []Symbol {
	if x == nil {
		return nil
	}
	var out []Symbol
	for _, s := range x.symbols {
		if keep(s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

// Lookup returns the first symbol declared as name.
func (x *Index) Lookup(name string) (Symbol, bool) {
	if x == nil {
		return Symbol{}, false
	}
	i, ok := x.byName[name]
	if !ok {
		return Symbol{}, false
	}
	return x.symbols[i], true
}

// IsFunction reports whether name is a declared function or method.
func (x *Index) IsFunction(name string) bool {
	s, ok := x.Lookup(name)
	return ok && (s.Kind == KindFunction || s.Kind == KindMethod)
}

// Names returns the distinct symbol names, sorted.
func (x *Index) Names() []string {
	if x == nil {
		return nil
	}
	names := make([]string, 0, len(x.byName))
	for n := range x.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func buildIndex(root *sitter.Node, src []byte, p *points) *Index {
	var syms []Symbol
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "function_declaration":
			syms = append(syms, funcSymbol(n, src, p, KindFunction))
		case "method_declaration":
			syms = append(syms, funcSymbol(n, src, p, KindMethod))
		case "type_declaration":
			for j := 0; j < int(n.NamedChildCount()); j++ {
				c := n.NamedChild(j)
				if c.Type() == "type_spec" || c.Type() == "type_alias" {
					syms = append(syms, typeSymbols(c, src, p)...)
				}
			}
		}
	}
	return newIndex(syms)
}

func funcSymbol(n *sitter.Node, src []byte, p *points, kind SymbolKind) Symbol {
	s := Symbol{Kind: kind, Start: p.loc(n.StartPoint()), End: p.loc(n.EndPoint())}
	if name := n.ChildByFieldName("name"); name != nil {
		s.Name = name.Content(src)
	}

	var b strings.Builder
	b.WriteString("func ")
	if recv := n.ChildByFieldName("receiver"); recv != nil {
		b.WriteString(recv.Content(src))
		b.WriteByte(' ')
		s.Receiver = receiverType(recv, src)
	}
	b.WriteString(s.Name)
	if params := n.ChildByFieldName("parameters"); params != nil {
		b.WriteString(params.Content(src))
	}
	if result := n.ChildByFieldName("result"); result != nil {
		b.WriteByte(' ')
		b.WriteString(result.Content(src))
	}
	s.Signature = b.String()
	return s
}

func receiverType(recv *sitter.Node, src []byte) string {
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		c := recv.NamedChild(i)
		if c.Type() != "parameter_declaration" {
			continue
		}
		if t := c.ChildByFieldName("type"); t != nil {
			return strings.TrimPrefix(t.Content(src), "*")
		}
	}
	return ""
}

// typeSymbols returns the type itself followed by its struct fields.
func typeSymbols(n *sitter.Node, src []byte, p *points) []Symbol {
	t := Symbol{Kind: KindType, Start: p.loc(n.StartPoint()), End: p.loc(n.EndPoint())}
	if name := n.ChildByFieldName("name"); name != nil {
		t.Name = name.Content(src)
	}
	typ := n.ChildByFieldName("type")
	if typ == nil {
		return []Symbol{t}
	}
	t.Signature = "type " + t.Name + " " + typ.Type()
	syms := []Symbol{t}
	if typ.Type() != "struct_type" {
		return syms
	}

	for i := 0; i < int(typ.NamedChildCount()); i++ {
		list := typ.NamedChild(i)
		if list.Type() != "field_declaration_list" {
			continue
		}
		for j := 0; j < int(list.NamedChildCount()); j++ {
			decl := list.NamedChild(j)
			if decl.Type() != "field_declaration" {
				continue
			}
			var typeText string
			if ft := decl.ChildByFieldName("type"); ft != nil {
				typeText = ft.Content(src)
			}
			// "a, b int" declares two fields.
			for k := 0; k < int(decl.NamedChildCount()); k++ {
				id := decl.NamedChild(k)
				if id.Type() != "field_identifier" {
					continue
				}
				syms = append(syms, Symbol{
					Name:      id.Content(src),
					Kind:      KindField,
					Signature: strings.TrimSpace(id.Content(src) + " " + typeText),
					Receiver:  t.Name,
					Start:     p.loc(id.StartPoint()),
					End:       p.loc(id.EndPoint()),
				})
			}
		}
	}
	return syms
}
