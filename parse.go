package exprtree

import (
	"unicode"
	"unicode/utf8"
)

// The grammar is positional. Parsing fills one node at a time, starting with
// the root, and each character decides what happens to the node being filled:
//
//	'('       a new node becomes the left child, or the right child if the
//	          left is taken, and is filled next; then filling resumes here
//	')'       this node is done
//	num       the digits and dots become this node's data; this node is done
//	op        the operator becomes this node's data, a new node becomes the
//	          right child and is filled next; then filling resumes here
//	other     skipped
//
// So "(4+7)" fills the root: '(' makes the left child, which takes "4" and
// ends; '+' goes into the root and makes the right child, which takes "7" and
// ends; ')' ends the root.

// parser holds the state of one parse.
type parser struct {
	src string
	ctx parsectx
	// open holds the columns of parentheses which have not been closed.
	open []int
}

// Parse parses an expression. The given options are applied in order.
// Parsing an empty string yields a tree with no root and no error.
func Parse(src string, opts ...ParseOption) (*Tree, error) {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if !p.set {
		p.depth = DefaultMaxDepth
	}
	if src == "" {
		return &Tree{}, nil
	}
	ps := parser{src: src, ctx: p}
	root := &Node{col: 1}
	c, err := ps.fill(root, start(), 1)
	if err != nil {
		return nil, err
	}
	if p.lenient {
		return &Tree{Root: root}, nil
	}
	if err := ps.finish(c); err != nil {
		return nil, err
	}
	root = collapse(root)
	if err := check(root, nil); err != nil {
		return nil, err
	}
	return &Tree{Root: root}, nil
}

// fill scans from c into n until the level n represents ends, returning the
// cursor following the last character consumed.
func (ps *parser) fill(n *Node, c cursor, depth int) (cursor, error) {
	if ps.ctx.depth > 0 && depth > ps.ctx.depth {
		return c, &MalformedExpressionError{Col: c.col, Kind: TooDeep}
	}
	strict := !ps.ctx.lenient
	src := ps.src
	for !c.eof(src) {
		r, _ := c.peek(src)
		switch {
		case r == '(':
			// A second parenthesized term only arrives through an operator,
			// which fills a fresh node. Once a node has its operator, its
			// left operand is closed.
			if strict && (n.Left != nil || n.Data != "") {
				return c, &MalformedExpressionError{Col: c.col, Kind: MissingParens, Text: "("}
			}
			k := &Node{col: c.col}
			if n.Left != nil {
				n.Right = k
			} else {
				n.Left = k
			}
			ps.open = append(ps.open, c.col)
			var err error
			c, err = ps.fill(k, c.next(src), depth+1)
			if err != nil {
				return c, err
			}
		case r == ')':
			if len(ps.open) == 0 {
				if strict {
					return c, &MalformedExpressionError{Col: c.col, Kind: Unbalanced, Text: ")"}
				}
			} else {
				ps.open = ps.open[:len(ps.open)-1]
			}
			return c.next(src), nil
		case r < utf8.RuneSelf && isNumByte(byte(r)):
			col := c.col
			var s string
			s, c = c.scanNum(src)
			if strict && (n.Data != "" || n.Left != nil || n.Right != nil) {
				return c, &MalformedExpressionError{Col: col, Kind: MissingParens, Text: s}
			}
			if n.Data == "" {
				n.col = col
			}
			n.Data += s
			return c, nil
		case isOperator(r):
			if strict && n.Data != "" {
				return c, &MalformedExpressionError{Col: c.col, Kind: MissingParens, Text: string(r)}
			}
			n.Data = string(r)
			n.col = c.col
			k := &Node{col: c.col}
			n.Right = k
			var err error
			c, err = ps.fill(k, c.next(src), depth+1)
			if err != nil {
				return c, err
			}
		default:
			if strict && !unicode.IsSpace(r) {
				return c, &MalformedExpressionError{Col: c.col, Kind: BadChar, Text: string(r)}
			}
			c = c.next(src)
		}
	}
	return c, nil
}

// finish checks what follows the root once it is filled.
func (ps *parser) finish(c cursor) error {
	c = c.skipSpace(ps.src)
	if !c.eof(ps.src) {
		r, _ := c.peek(ps.src)
		if r == ')' && len(ps.open) == 0 {
			return &MalformedExpressionError{Col: c.col, Kind: Unbalanced, Text: ")"}
		}
		return &MalformedExpressionError{Col: c.col, Kind: Trailing, Text: string(r)}
	}
	if len(ps.open) != 0 {
		return &MalformedExpressionError{Col: ps.open[len(ps.open)-1], Kind: Unbalanced, Text: "("}
	}
	return nil
}

// collapse replaces grouping nodes, which have only a left child and no data,
// with their contents.
func collapse(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Data == "" && n.Left != nil && n.Right == nil {
		n = n.Left
	}
	n.Left = collapse(n.Left)
	n.Right = collapse(n.Right)
	return n
}

// check verifies that every node below n is a leaf or an operation with both
// operands. parent is the operation n is an operand of, or nil for the root.
func check(n, parent *Node) error {
	switch {
	case isNumber(n.Data):
		// The grammar ends a node as soon as it sees a number, and strict
		// parsing refuses numbers in nodes that already have anything.
		return nil
	case isOperatorText(n.Data):
		if n.Left == nil {
			return &MalformedExpressionError{Col: n.col, Kind: EmptyOperand, Text: n.Data}
		}
		if err := check(n.Left, n); err != nil {
			return err
		}
		return check(n.Right, n)
	case parent == nil:
		return &MalformedExpressionError{Col: n.col, Kind: EmptyOperand}
	default:
		return &MalformedExpressionError{Col: parent.col, Kind: EmptyOperand, Text: parent.Data}
	}
}
