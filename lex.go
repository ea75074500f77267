package exprtree

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operators contains the characters which are binary operators.
const Operators = "+-*/^"

// cursor is a scan position. pos is a byte offset into the source, and col is
// the 1-based rune column of the character at pos. Cursors are values; the
// parser passes them in and gets new ones back, so nothing about a scan
// outlives the call that made it.
type cursor struct {
	pos int
	col int
}

func start() cursor {
	return cursor{pos: 0, col: 1}
}

// eof reports whether c is at the end of src.
func (c cursor) eof(src string) bool {
	return c.pos >= len(src)
}

// peek returns the rune at c and its width.
func (c cursor) peek(src string) (rune, int) {
	return utf8.DecodeRuneInString(src[c.pos:])
}

// next returns the cursor after the rune at c.
func (c cursor) next(src string) cursor {
	_, sz := c.peek(src)
	return cursor{pos: c.pos + sz, col: c.col + 1}
}

// skipSpace returns the first cursor at or after c that is not whitespace.
func (c cursor) skipSpace(src string) cursor {
	for !c.eof(src) {
		r, _ := c.peek(src)
		if !unicode.IsSpace(r) {
			break
		}
		c = c.next(src)
	}
	return c
}

// scanNum consumes a maximal run of digits and decimal points. The run is not
// checked for being a well-formed number.
func (c cursor) scanNum(src string) (string, cursor) {
	s := c
	for !c.eof(src) && isNumByte(src[c.pos]) {
		// Digits and dots are one byte and one column each.
		c = cursor{pos: c.pos + 1, col: c.col + 1}
	}
	return src[s.pos:c.pos], c
}

func isNumByte(b byte) bool {
	return '0' <= b && b <= '9' || b == '.'
}

func isOperator(r rune) bool {
	return strings.ContainsRune(Operators, r)
}

// isNumber reports whether s looks like a numeric literal to the grammar.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNumByte(s[i]) {
			return false
		}
	}
	return true
}

// isOperatorText reports whether s is exactly one operator.
func isOperatorText(s string) bool {
	return len(s) == 1 && isOperator(rune(s[0]))
}
