package exprtree_test

import (
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/zephyrtronium/exprtree"
)

// operandsInOrder drops everything from src except numbers and operators.
func operandsInOrder(src string) string {
	return strings.Map(func(r rune) rune {
		if r == '(' || r == ')' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, src)
}

func FuzzParse(f *testing.F) {
	f.Add("(4+7)")
	f.Add("((1 + 2) * (3 + 4))")
	f.Add("(4+)")
	f.Add("(7.5-3.25)")
	f.Add("(+4(5))")
	f.Add("((-4(10))*2)")
	f.Add("((4 4++4)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := exprtree.Parse(s)
		if err != nil || a.Root == nil {
			return
		}
		// Anything strict parsing accepts must evaluate, must keep its
		// operands in the order written, and must format to something that
		// parses to the same tree.
		if _, err := exprtree.Eval(a); err != nil {
			t.Errorf("%q parsed to %v but failed to evaluate: %v", s, a, err)
		}
		in := strings.Join(slices.Collect(exprtree.Render(a, exprtree.InOrder)), "")
		if want := operandsInOrder(s); in != want {
			t.Errorf("%q parsed to %v, which reads %q instead of %q", s, a, in, want)
		}
		b, err := exprtree.Parse(a.String())
		if err != nil {
			t.Fatalf("%q -> %q failed to parse: %v", s, a, err)
		}
		if !a.Equal(b) {
			t.Errorf("%q -> %q parsed differently", s, a)
		}
	})
}
