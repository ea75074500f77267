// Package batch runs files of expressions with expected results.
package batch

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/exprtree"
)

// DefaultTolerance is the tolerance used when a file doesn't give one.
const DefaultTolerance = 1e-9

// Error classes a case can expect.
const (
	Malformed  = "malformed"
	Evaluation = "evaluation"
	Domain     = "domain"
)

// File is a batch of cases sharing parse and evaluation settings.
type File struct {
	// Lenient selects the legacy parsing mode for every case.
	Lenient bool `yaml:"lenient"`
	// Prec is the precision of evaluation in bits. Zero means float64.
	Prec uint `yaml:"prec"`
	// Tolerance bounds the difference between results and wanted values,
	// relative to the wanted value when its magnitude exceeds 1.
	Tolerance float64 `yaml:"tolerance"`
	Cases     []Case  `yaml:"cases"`
}

// Case is a single expression to check.
type Case struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
	// Want is the expected value. If Want and Error are both unset, the case
	// passes whenever it evaluates.
	Want *float64 `yaml:"want"`
	// Error is the class of error the case expects, if any.
	Error string `yaml:"error"`
}

// Load decodes a batch file. Unknown fields are errors.
func Load(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("batch: no cases")
		}
		return nil, fmt.Errorf("batch: decoding: %w", err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile loads the batch file at path.
func LoadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	defer r.Close()
	f, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func (f *File) check() error {
	if f.Tolerance < 0 || math.IsNaN(f.Tolerance) {
		return fmt.Errorf("batch: invalid tolerance %g", f.Tolerance)
	}
	if f.Tolerance == 0 {
		f.Tolerance = DefaultTolerance
	}
	if len(f.Cases) == 0 {
		return errors.New("batch: no cases")
	}
	for i := range f.Cases {
		c := &f.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		switch c.Error {
		case "", Malformed, Evaluation, Domain:
		default:
			return fmt.Errorf("batch: %s: unknown error class %q", c.Name, c.Error)
		}
		if c.Error != "" && c.Want != nil {
			return fmt.Errorf("batch: %s: case wants both a value and an error", c.Name)
		}
		if c.Error == Domain && f.Prec == 0 {
			return fmt.Errorf("batch: %s: domain errors only happen with nonzero prec", c.Name)
		}
	}
	return nil
}

// Result is the outcome of one case.
type Result struct {
	Case Case
	// Tree is the parsed expression, or nil if parsing failed.
	Tree *exprtree.Tree
	// InOrder and PostOrder are the rendered token sequences.
	InOrder, PostOrder []string
	// Value is the result of evaluation. It is meaningful only if Err is nil.
	Value float64
	// Text is Value formatted at the evaluation precision.
	Text string
	// Err is the parse or evaluation error, if any.
	Err error
	// Failure describes why the case failed, or is empty if it passed.
	Failure string
}

// Passed reports whether the result matched its case.
func (r *Result) Passed() bool {
	return r.Failure == ""
}

// Run evaluates every case in the file. A File built without Load gets the
// default tolerance if its own is zero.
func (f *File) Run() []Result {
	var opts []exprtree.ParseOption
	if f.Lenient {
		opts = append(opts, exprtree.Lenient())
	}
	var ctx *exprtree.Context
	if f.Prec != 0 {
		ctx = exprtree.NewContext(exprtree.Prec(f.Prec))
	}
	tol := f.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	res := make([]Result, len(f.Cases))
	for i, c := range f.Cases {
		r := &res[i]
		r.Case = c
		r.Tree, r.Err = exprtree.Parse(c.Expr, opts...)
		if r.Err == nil {
			r.InOrder = slices.Collect(exprtree.Render(r.Tree, exprtree.InOrder))
			r.PostOrder = slices.Collect(exprtree.Render(r.Tree, exprtree.PostOrder))
			r.eval(ctx)
		} else {
			r.Tree = nil
		}
		r.Failure = judge(c, r, tol)
	}
	return res
}

func (r *Result) eval(ctx *exprtree.Context) {
	if ctx == nil {
		r.Value, r.Err = exprtree.Eval(r.Tree)
		if r.Err == nil {
			r.Text = fmt.Sprintf("%g", r.Value)
		}
		return
	}
	v := ctx.Eval(r.Tree)
	if v == nil {
		r.Err = ctx.Err()
		return
	}
	r.Value, _ = v.Float64()
	r.Text = v.Text('g', -1)
}

// judge returns the reason r fails c, or the empty string if it passes.
func judge(c Case, r *Result, tol float64) string {
	if c.Error != "" {
		if r.Err == nil {
			return fmt.Sprintf("got %s, want %s error", r.Text, c.Error)
		}
		if got := class(r.Err); got != c.Error {
			return fmt.Sprintf("got %s error %q, want %s error", got, r.Err, c.Error)
		}
		return ""
	}
	if r.Err != nil {
		return fmt.Sprintf("unexpected error: %v", r.Err)
	}
	if c.Want != nil && !near(r.Value, *c.Want, tol) {
		return fmt.Sprintf("got %s, want %g", r.Text, *c.Want)
	}
	return ""
}

// class names the kind of err.
func class(err error) string {
	var (
		m *exprtree.MalformedExpressionError
		e *exprtree.EvaluationError
		d *exprtree.DomainError
	)
	switch {
	case errors.As(err, &m):
		return Malformed
	case errors.As(err, &e):
		return Evaluation
	case errors.As(err, &d):
		return Domain
	default:
		return "unknown"
	}
}

func near(got, want, tol float64) bool {
	switch {
	case math.IsNaN(want):
		return math.IsNaN(got)
	case math.IsInf(want, 0):
		return got == want
	case got == want:
		return true
	}
	return math.Abs(got-want) <= tol*math.Max(1, math.Abs(want))
}

// WriteReport writes one line per result followed by a summary. It returns
// the number of failed cases.
func WriteReport(w io.Writer, res []Result) (failed int, err error) {
	for i := range res {
		r := &res[i]
		var line string
		switch {
		case !r.Passed():
			failed++
			line = fmt.Sprintf("FAIL %s: %s: %s\n", r.Case.Name, r.Case.Expr, r.Failure)
		case r.Err != nil:
			line = fmt.Sprintf("ok   %s: %s: %v\n", r.Case.Name, r.Case.Expr, r.Err)
		default:
			line = fmt.Sprintf("ok   %s: %s = %s\n", r.Case.Name, r.Case.Expr, r.Text)
		}
		if _, err := io.WriteString(w, line); err != nil {
			return failed, fmt.Errorf("batch: writing report: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "%d passed, %d failed\n", len(res)-failed, failed); err != nil {
		return failed, fmt.Errorf("batch: writing report: %w", err)
	}
	return failed, nil
}

