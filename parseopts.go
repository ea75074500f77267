package exprtree

import "strconv"

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 10000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	lenientopt struct{}
	depthopt   int
)

// parsectx holds the settings for one parse. It is also a ParseOption.
type parsectx struct {
	// lenient selects the legacy grammar with no diagnostics.
	lenient bool
	// depth is the recursion limit. Zero means no limit.
	depth int
	// set indicates that depth has been chosen by an option.
	set bool
}

// Lenient tells the parser to accept input the way the legacy grammar did:
// characters outside the grammar are skipped, input after a complete
// expression is ignored, and no shape checks are made. The resulting tree may
// be missing operands, in which case evaluating it fails with an
// EvaluationError. Redundant parentheses are kept as data-less nodes.
func Lenient() ParseOption {
	return lenientopt{}
}

func (lenientopt) parseOption(p parsectx) parsectx {
	p.lenient = true
	return p
}

// MaxDepth limits how deeply parentheses and operands may nest. A parse which
// exceeds the limit fails with a MalformedExpressionError of kind TooDeep,
// even in lenient mode. A limit of zero or less disables the check.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		n = 0
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.depth = int(o)
	p.set = true
	return p
}

// ParsingPreset folds a list of options into one. A preset panics when it
// would change any option from the default, but it is safe to apply other
// options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.lenient || p.set {
		panic("exprtree: preset applied to non-default parse config: " + p.String())
	}
	return *o
}

func (p parsectx) String() string {
	return "lenient=" + strconv.FormatBool(p.lenient) + " depth=" + strconv.Itoa(p.depth)
}
