package exprtree

import (
	"iter"
	"strconv"
)

// Order is a traversal order for a tree.
type Order int8

const (
	// InOrder visits the left subtree, then the node, then the right subtree.
	// Parentheses are not recovered, so this shows operand and operator
	// ordering but is not an expression Parse accepts.
	InOrder Order = iota
	// PostOrder visits the left subtree, then the right subtree, then the
	// node. This is the order in which evaluation consumes nodes.
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "InOrder"
	case PostOrder:
		return "PostOrder"
	default:
		return "Order(" + strconv.Itoa(int(o)) + ")"
	}
}

// Render returns the data of each node of t in the given order.
func Render(t *Tree, order Order) iter.Seq[string] {
	nodes := t.Walk(order)
	return func(yield func(string) bool) {
		for n := range nodes {
			if !yield(n.Data) {
				return
			}
		}
	}
}

// walk creates an iterator over the nodes under root. It uses an explicit
// stack so that deep trees cannot exhaust the goroutine stack.
func walk(root *Node, order Order) iter.Seq[*Node] {
	switch order {
	case InOrder:
		return func(yield func(*Node) bool) {
			var stack []*Node
			n := root
			for n != nil || len(stack) > 0 {
				for n != nil {
					stack = append(stack, n)
					n = n.Left
				}
				n = stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if !yield(n) {
					return
				}
				n = n.Right
			}
		}
	case PostOrder:
		return func(yield func(*Node) bool) {
			var stack []*Node
			var last *Node
			n := root
			for n != nil || len(stack) > 0 {
				if n != nil {
					stack = append(stack, n)
					n = n.Left
					continue
				}
				top := stack[len(stack)-1]
				if top.Right != nil && top.Right != last {
					n = top.Right
					continue
				}
				stack = stack[:len(stack)-1]
				if !yield(top) {
					return
				}
				last = top
			}
		}
	default:
		panic("exprtree: invalid traversal order " + order.String())
	}
}
