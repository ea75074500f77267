// Package exprtree parses fully parenthesized arithmetic expressions into
// binary expression trees and evaluates them.
//
// Every binary operation is written inside its own parentheses: "(4+7)",
// "((2-5)-5)", "(5*(6/2))". Operands are non-negative decimal numbers, the
// operators are + - * / and ^, and whitespace may appear anywhere. There is no
// operator precedence; the parentheses say everything.
//
// Parse builds a Tree, Eval computes its value with a post-order walk over an
// operand stack, and Render lists the node tokens of a tree in in-order or
// post-order. By default Parse rejects malformed input. The Lenient option
// instead reproduces the permissive legacy grammar, which accepts nearly
// anything and may build trees that cannot be evaluated.
//
package exprtree
