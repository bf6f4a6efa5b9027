package unitconv

import (
	"github.com/alexshd/unitconv/internal/formula"
)

// AnchorEdge converts an anchor value of one system into the anchor value
// of another system of the same measure.
//
// The set of edges is closed: Ratio, Transform and Formula. A nil edge,
// a nil Transform or a zero Formula carries neither a ratio nor a
// transform and fails conversion with a MissingAnchorError.
type AnchorEdge interface {
	anchorEdge()
}

// Ratio multiplies the anchor value.
type Ratio float64

// Transform applies an arbitrary function to the anchor value.
// Transforms only exist in memory; they cannot be written to a registry
// file or database. Use Formula for that.
type Transform func(float64) float64

// Formula is a transform written as an arithmetic expression in x,
// e.g. "x / (5/9) + 32".
type Formula struct {
	expr *formula.Expr
}

func (Ratio) anchorEdge()     {}
func (Transform) anchorEdge() {}
func (Formula) anchorEdge()   {}

// ParseFormula compiles src into a Formula.
func ParseFormula(src string) (Formula, error) {
	expr, err := formula.Parse(src)
	if err != nil {
		return Formula{}, err
	}
	return Formula{expr: expr}, nil
}

// MustFormula is like ParseFormula but panics on error.
// Use it for formulas known at compile time.
func MustFormula(src string) Formula {
	f, err := ParseFormula(src)
	if err != nil {
		panic("unitconv: " + err.Error())
	}
	return f
}

// Eval applies the formula to x. A zero Formula returns x unchanged.
func (f Formula) Eval(x float64) float64 {
	if f.expr == nil {
		return x
	}
	return f.expr.Eval(x)
}

// String returns the source text of the formula.
func (f Formula) String() string {
	if f.expr == nil {
		return ""
	}
	return f.expr.String()
}

// IsZero reports whether f was never parsed.
func (f Formula) IsZero() bool { return f.expr == nil }

// applyEdge runs an anchor edge over v. ok is false when the edge has
// neither a ratio nor a transform.
func applyEdge(edge AnchorEdge, v float64) (result float64, ok bool) {
	switch e := edge.(type) {
	case Transform:
		if e == nil {
			return 0, false
		}
		return e(v), true
	case Formula:
		if e.IsZero() {
			return 0, false
		}
		return e.Eval(v), true
	case Ratio:
		return v * float64(e), true
	default:
		return 0, false
	}
}
