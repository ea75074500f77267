package exprtree

import (
	"iter"
	"strings"
)

// Node is a node of an expression tree. A leaf holds a numeric literal in Data
// and has no children. An operator node holds exactly one of the Operators in
// Data and has both children.
type Node struct {
	// Data is the numeric literal or operator text of the node.
	Data string
	// Left and Right are the operands of an operator node.
	Left  *Node
	Right *Node

	// col is the rune column of the token that created the node.
	col int
}

// Tree is a parsed expression. Root is nil if the expression was empty.
type Tree struct {
	Root *Node
}

// IsLeaf reports whether n is a well-formed numeric leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Left == nil && n.Right == nil && isNumber(n.Data)
}

// IsOperator reports whether n is a well-formed operator node.
func (n *Node) IsOperator() bool {
	return n != nil && n.Left != nil && n.Right != nil && isOperatorText(n.Data)
}

// Pos returns the column of the token that created n, or 0 if n was not
// produced by Parse.
func (n *Node) Pos() int {
	if n == nil {
		return 0
	}
	return n.col
}

// Equal reports whether n and m have the same shape and data. Source
// positions are not compared.
func (n *Node) Equal(m *Node) bool {
	if n == nil || m == nil {
		return n == m
	}
	return n.Data == m.Data && n.Left.Equal(m.Left) && n.Right.Equal(m.Right)
}

// Equal reports whether t and u are structurally equal.
func (t *Tree) Equal(u *Tree) bool {
	if t == nil || u == nil {
		return t == u
	}
	return t.Root.Equal(u.Root)
}

// Walk returns the nodes of the tree in the given order. The sequence can be
// ranged over any number of times.
func (t *Tree) Walk(order Order) iter.Seq[*Node] {
	if t == nil {
		return walk(nil, order)
	}
	return walk(t.Root, order)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	k := 0
	for range t.Walk(PostOrder) {
		k++
	}
	return k
}

func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// String formats the tree with each operation in parentheses, e.g.
// "((1 + 2) * (3 + 4))".
func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return t.Root.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch {
	case n == nil:
		// Missing operands use invalid characters.
		b.WriteByte('#')
	case n.IsLeaf():
		b.WriteString(n.Data)
	case n.IsOperator():
		b.WriteByte('(')
		n.Left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.Data)
		b.WriteByte(' ')
		n.Right.fmt(b)
		b.WriteByte(')')
	default:
		// Nodes that are neither leaves nor operations come from lenient
		// parsing. Write them so the shape is still visible.
		b.WriteByte('$')
		n.Left.fmt(b)
		b.WriteByte('[')
		b.WriteString(n.Data)
		b.WriteByte(']')
		n.Right.fmt(b)
		b.WriteByte('$')
	}
}
