// Package syntax provides the syntax tree contract used for AST-scoped
// selection, a concrete branch tree, a tree-sitter adapter for Go sources,
// and a symbol index built from the same parse.
package syntax

import "github.com/iw2rmb/codearea/buffer"

// Node is a syntax tree node spanning [Start, End] in document locations.
type Node interface {
	// Parent returns nil for the root.
	Parent() Node
	Start() buffer.Location
	End() buffer.Location
}

// Tree answers location queries over a syntax tree.
type Tree interface {
	// NodeAt returns the smallest node containing [start, end], or nil.
	NodeAt(start, end buffer.Location) Node
}

// Branch is a node with an explicit kind and ordered children.
type Branch struct {
	kind     string
	from, to buffer.Location
	parent   *Branch
	children []*Branch
}

// NewBranch returns a node of kind over [from, to] and adopts children.
func NewBranch(kind string, from, to buffer.Location, children ...*Branch) *Branch {
	b := &Branch{kind: kind, from: from, to: to, children: children}
	for _, c := range children {
		c.parent = b
	}
	return b
}

func (b *Branch) Kind() string { return b.kind }

func (b *Branch) Start() buffer.Location { return b.from }

func (b *Branch) End() buffer.Location { return b.to }

func (b *Branch) Parent() Node {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *Branch) Children() []*Branch { return b.children }

// Add appends c to b's children.
func (b *Branch) Add(c *Branch) {
	c.parent = b
	b.children = append(b.children, c)
}

func (b *Branch) contains(start, end buffer.Location) bool {
	return buffer.CompareLocation(b.from, start) <= 0 && buffer.CompareLocation(end, b.to) <= 0
}

// BranchTree is a Tree over Branch nodes.
type BranchTree struct {
	root *Branch
}

func NewBranchTree(root *Branch) *BranchTree { return &BranchTree{root: root} }

func (t *BranchTree) Root() *Branch { return t.root }

func (t *BranchTree) NodeAt(start, end buffer.Location) Node {
	if n := t.BranchAt(start, end); n != nil {
		return n
	}
	return nil
}

// BranchAt is NodeAt returning the concrete node. Where children touch, the
// first one containing the range wins.
func (t *BranchTree) BranchAt(start, end buffer.Location) *Branch {
	if buffer.CompareLocation(end, start) < 0 {
		start, end = end, start
	}
	if t == nil || t.root == nil || !t.root.contains(start, end) {
		return nil
	}
	n := t.root
descend:
	for {
		for _, c := range n.children {
			if c.contains(start, end) {
				n = c
				continue descend
			}
		}
		return n
	}
}

// Walk calls fn for b and its descendants in document order until fn
// returns false.
func (b *Branch) Walk(fn func(n *Branch, depth int) bool) {
	b.walk(fn, 0)
}

func (b *Branch) walk(fn func(*Branch, int) bool, depth int) bool {
	if !fn(b, depth) {
		return false
	}
	for _, c := range b.children {
		if !c.walk(fn, depth+1) {
			return false
		}
	}
	return true
}
