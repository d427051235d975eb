package syntax

import (
	"fmt"

	"github.com/iw2rmb/codearea/buffer"
)

// Target is the selection surface a Selector drives.
type Target interface {
	SelectionStart() int
	SelectionEnd() int
	CaretPosition() int
	OffsetToLocation(off int) (buffer.Location, error)
	LocationToOffset(loc buffer.Location) (int, error)
	Select(start, end int) error
}

// Source supplies the current syntax tree. A nil Tree disables the
// selector.
type Source interface {
	Tree() Tree
}

type SourceFunc func() Tree

func (f SourceFunc) Tree() Tree { return f() }

// Selector grows and shrinks the selection along the syntax tree. The
// anchor is the caret location when growing started; shrinking walks back
// toward it.
type Selector struct {
	target Target
	source Source

	anchor *buffer.Location
	moving bool
}

func NewSelector(t Target, src Source) *Selector {
	return &Selector{target: t, source: src}
}

// Anchor returns the location growing started from.
func (s *Selector) Anchor() (buffer.Location, bool) {
	if s.anchor == nil {
		return buffer.Location{}, false
	}
	return *s.anchor, true
}

// Reset forgets the anchor.
func (s *Selector) Reset() { s.anchor = nil }

// CaretMoved must be called on every selection change. Changes made by the
// selector keep the anchor; any other change drops it.
func (s *Selector) CaretMoved() {
	if !s.moving {
		s.anchor = nil
	}
}

func (s *Selector) tree() Tree {
	if s.source == nil {
		return nil
	}
	return s.source.Tree()
}

func (s *Selector) selection() (start, end buffer.Location, err error) {
	if start, err = s.target.OffsetToLocation(s.target.SelectionStart()); err != nil {
		return start, end, err
	}
	end, err = s.target.OffsetToLocation(s.target.SelectionEnd())
	return start, end, err
}

// Expand selects the smallest node strictly larger than the selection.
// At the root it does nothing.
func (s *Selector) Expand() error {
	tree := s.tree()
	if tree == nil {
		return nil
	}
	if s.anchor == nil {
		loc, err := s.target.OffsetToLocation(s.target.CaretPosition())
		if err != nil {
			return fmt.Errorf("expand: %w", err)
		}
		s.anchor = &loc
	}

	start, end, err := s.selection()
	if err != nil {
		return fmt.Errorf("expand: %w", err)
	}
	n := tree.NodeAt(start, end)
	for n != nil && sameRange(n, start, end) {
		n = n.Parent()
	}
	if n == nil {
		return nil
	}
	return s.selectNode(n)
}

// Contract steps the selection back toward the anchor. Without an anchor
// it does nothing.
func (s *Selector) Contract() error {
	tree := s.tree()
	if tree == nil || s.anchor == nil {
		return nil
	}
	start, end, err := s.selection()
	if err != nil {
		return fmt.Errorf("contract: %w", err)
	}
	sel := tree.NodeAt(start, end)
	at := tree.NodeAt(*s.anchor, *s.anchor)

	switch {
	case sel == nil && at != nil:
		return s.selectNode(topLevel(at))
	case sel == nil, at == nil, sel == at:
		return s.collapse()
	}

	n := at
	for n != nil && n.Parent() != sel {
		n = n.Parent()
	}
	if n == nil {
		return s.collapse()
	}
	return s.selectNode(n)
}

// topLevel returns n's ancestor directly below the root.
func topLevel(n Node) Node {
	for n.Parent() != nil && n.Parent().Parent() != nil {
		n = n.Parent()
	}
	return n
}

func sameRange(n Node, start, end buffer.Location) bool {
	return buffer.CompareLocation(n.Start(), start) == 0 && buffer.CompareLocation(n.End(), end) == 0
}

func (s *Selector) selectNode(n Node) error {
	start, err := s.target.LocationToOffset(n.Start())
	if err != nil {
		return fmt.Errorf("select node: %w", err)
	}
	end, err := s.target.LocationToOffset(n.End())
	if err != nil {
		return fmt.Errorf("select node: %w", err)
	}
	return s.selectRange(start, end)
}

func (s *Selector) collapse() error {
	off, err := s.target.LocationToOffset(*s.anchor)
	if err != nil {
		return fmt.Errorf("collapse: %w", err)
	}
	return s.selectRange(off, off)
}

func (s *Selector) selectRange(start, end int) error {
	s.moving = true
	defer func() { s.moving = false }()
	return s.target.Select(start, end)
}
