package session

import (
	"github.com/iw2rmb/codearea/buffer"
	"github.com/iw2rmb/codearea/syntax"
	"github.com/iw2rmb/codearea/textarea"
)

// IsFunction reports whether name is a function declared in the document
// or supplied through Options.Functions.
func (s *Session) IsFunction(name string) bool {
	if _, ok := s.external[name]; ok {
		return true
	}
	return s.Index().IsFunction(name)
}

// resolveFunction maps a word to a function reference. Document symbols
// win over external ones.
func (s *Session) resolveFunction(word string) (textarea.RefInfo, bool) {
	if sym, ok := s.currentIndex().Lookup(word); ok && (sym.Kind == syntax.KindFunction || sym.Kind == syntax.KindMethod) {
		return textarea.RefInfo{Kind: "function", Name: sym.Name, Detail: sym.Signature, Payload: sym}, true
	}
	if f, ok := s.external[word]; ok {
		detail := f.Signature
		if detail == "" {
			detail = f.Name
		}
		return textarea.RefInfo{Kind: "function", Name: f.Name, Detail: detail, Payload: f}, true
	}
	return textarea.RefInfo{}, false
}

// currentIndex is Index after reparsing a stale document.
func (s *Session) currentIndex() *syntax.Index {
	s.Tree()
	return s.Index()
}

// findField links a field name at off to its declaration. Only
// field_identifier nodes link, so a local variable sharing a field's name
// does not.
func (s *Session) findField(off int) (int, int, textarea.RefInfo, bool) {
	tree, ok := s.Tree().(*syntax.BranchTree)
	if !ok || tree == nil {
		return 0, 0, textarea.RefInfo{}, false
	}
	// The glyph at off spans [off, off+1].
	from, err := s.area.OffsetToLocation(off)
	if err != nil {
		return 0, 0, textarea.RefInfo{}, false
	}
	to := buffer.Location{Line: from.Line, Column: from.Column + 1}
	n := tree.BranchAt(from, to)
	if n == nil || n.Kind() != "field_identifier" {
		return 0, 0, textarea.RefInfo{}, false
	}
	start, end, ok := s.offsets(n.Start(), n.End())
	if !ok {
		return 0, 0, textarea.RefInfo{}, false
	}
	text, err := s.area.Buffer().Slice(start, end)
	if err != nil {
		return 0, 0, textarea.RefInfo{}, false
	}
	for _, f := range s.Index().Fields() {
		if f.Name == text {
			return start, end, textarea.RefInfo{Kind: "field", Name: f.Name, Detail: f.Receiver + "." + f.Signature, Payload: f}, true
		}
	}
	return 0, 0, textarea.RefInfo{}, false
}

func (s *Session) offsets(from, to buffer.Location) (int, int, bool) {
	start, err := s.area.LocationToOffset(from)
	if err != nil {
		return 0, 0, false
	}
	end, err := s.area.LocationToOffset(to)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

// AddReferenceListener registers l with both the function and the field
// hyperlinks.
func (s *Session) AddReferenceListener(l textarea.ReferenceListener) {
	s.funcLinks.AddReferenceListener(l)
	s.fieldLinks.AddReferenceListener(l)
}

// Hover updates the active hyperlink for the pointer at (x, y). Fields are
// tried before functions.
func (s *Session) Hover(x, y int) (textarea.RefInfo, bool) {
	if ref, ok := s.fieldLinks.Hover(x, y); ok {
		s.funcLinks.Clear()
		return ref, true
	}
	return s.funcLinks.Hover(x, y)
}

// Click activates the hyperlink under (x, y), if any.
func (s *Session) Click(x, y int) bool {
	if s.fieldLinks.Click(x, y) {
		return true
	}
	return s.funcLinks.Click(x, y)
}

// ClearHover drops the active hyperlink underline.
func (s *Session) ClearHover() {
	s.fieldLinks.Clear()
	s.funcLinks.Clear()
}
