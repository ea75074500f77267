package exprtree_test

import (
	"testing"

	"github.com/zephyrtronium/exprtree"
)

func FuzzEval(f *testing.F) {
	f.Add("(4+7)")
	f.Add("(4+)")
	f.Add("(4 5)")
	f.Add("(0/0)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := exprtree.Parse(s, exprtree.Lenient())
		if err != nil {
			return
		}
		exprtree.Eval(a)
		exprtree.NewContext(exprtree.Prec(32)).Eval(a)
	})
}
