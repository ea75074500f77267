package exprtree

import "testing"

func TestScanNum(t *testing.T) {
	cases := []struct {
		src  string
		at   int
		num  string
		next cursor
	}{
		{"4", 0, "4", cursor{pos: 1, col: 2}},
		{"543+321", 0, "543", cursor{pos: 3, col: 4}},
		{"543+321", 4, "321", cursor{pos: 7, col: 8}},
		{"(7.5-3.25)", 1, "7.5", cursor{pos: 4, col: 5}},
		{"1.2.3)", 0, "1.2.3", cursor{pos: 5, col: 6}},
		{".", 0, ".", cursor{pos: 1, col: 2}},
		{"12 34", 0, "12", cursor{pos: 2, col: 3}},
		{"+", 0, "", cursor{pos: 0, col: 1}},
	}
	for _, c := range cases {
		s, next := cursor{pos: c.at, col: c.at + 1}.scanNum(c.src)
		if s != c.num || next != c.next {
			t.Errorf("scanning %q at %d: want %q then %+v, got %q then %+v", c.src, c.at, c.num, c.next, s, next)
		}
	}
}

func TestCursorColumns(t *testing.T) {
	cases := []struct {
		src  string
		cols []int
	}{
		{"(4+7)", []int{1, 2, 3, 4, 5}},
		{"×÷", []int{1, 2}},
		{"a×b", []int{1, 2, 3}},
		{"π\t(", []int{1, 2, 3}},
	}
	for _, c := range cases {
		var got []int
		for k := start(); !k.eof(c.src); k = k.next(c.src) {
			got = append(got, k.col)
		}
		if len(got) != len(c.cols) {
			t.Errorf("%q visited columns %v, want %v", c.src, got, c.cols)
			continue
		}
		for i := range got {
			if got[i] != c.cols[i] {
				t.Errorf("%q visited columns %v, want %v", c.src, got, c.cols)
				break
			}
		}
	}
}

func TestSkipSpace(t *testing.T) {
	cases := []struct {
		src  string
		want cursor
	}{
		{"", cursor{pos: 0, col: 1}},
		{"4", cursor{pos: 0, col: 1}},
		{" \t\r\n4", cursor{pos: 4, col: 5}},
		{" )", cursor{pos: 2, col: 2}},
		{"   ", cursor{pos: 3, col: 4}},
	}
	for _, c := range cases {
		if got := start().skipSpace(c.src); got != c.want {
			t.Errorf("skipping space in %q: want %+v, got %+v", c.src, c.want, got)
		}
	}
}

func TestClasses(t *testing.T) {
	for _, r := range Operators {
		if !isOperator(r) || !isOperatorText(string(r)) {
			t.Errorf("%c is not an operator", r)
		}
	}
	for _, s := range []string{"", "++", "x", "(", "×"} {
		if isOperatorText(s) {
			t.Errorf("%q is an operator", s)
		}
	}
	for _, s := range []string{"0", "123", "1.5", ".", "1.2.3"} {
		if !isNumber(s) {
			t.Errorf("%q is not a number", s)
		}
	}
	for _, s := range []string{"", "-1", "1e5", "1 2", "+"} {
		if isNumber(s) {
			t.Errorf("%q is a number", s)
		}
	}
}
