// Package formula parses and evaluates the one-variable arithmetic
// expressions used for cross-system anchor transforms.
//
// Supported syntax: decimal numbers (with optional exponent), the
// variable x, unary minus, + - * / and parentheses. Multiplication and
// division bind tighter than addition and subtraction; operators of equal
// precedence associate to the left.
//
//	x / (5/9) + 32
//	(x - 32) * (5/9)
package formula

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Variable is the only identifier a formula may reference.
const Variable = "x"

//nolint:govet // participle grammar tags are not standard struct tags
type expression struct {
	Left  *term     `@@`
	Right []*opTerm `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type opTerm struct {
	Op   string `@("+" | "-")`
	Term *term  `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type term struct {
	Left  *factor     `@@`
	Right []*opFactor `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type opFactor struct {
	Op     string  `@("*" | "/")`
	Factor *factor `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type factor struct {
	Negate bool     `@"-"?`
	Value  *operand `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type operand struct {
	Number *float64    `  @Number`
	Ident  *string     `| @Ident`
	Sub    *expression `| "(" @@ ")"`
}

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[-+*/()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var formulaParser = participle.MustBuild[expression](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
)

// Expr is a compiled formula. It is immutable and safe for concurrent use.
type Expr struct {
	src  string
	root *expression
}

// Parse compiles src.
func Parse(src string) (*Expr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty formula")
	}

	root, err := formulaParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("invalid formula %q: %w", src, err)
	}
	if err := root.check(); err != nil {
		return nil, fmt.Errorf("invalid formula %q: %w", src, err)
	}

	return &Expr{src: src, root: root}, nil
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string { return e.src }

// Eval evaluates the expression with x bound to the given value.
func (e *Expr) Eval(x float64) float64 { return e.root.eval(x) }

func (e *expression) check() error {
	if err := e.Left.check(); err != nil {
		return err
	}
	for _, r := range e.Right {
		if err := r.Term.check(); err != nil {
			return err
		}
	}
	return nil
}

func (t *term) check() error {
	if err := t.Left.Value.check(); err != nil {
		return err
	}
	for _, r := range t.Right {
		if err := r.Factor.Value.check(); err != nil {
			return err
		}
	}
	return nil
}

func (o *operand) check() error {
	switch {
	case o.Ident != nil:
		if *o.Ident != Variable {
			return fmt.Errorf("unknown identifier %q, only %q is allowed", *o.Ident, Variable)
		}
	case o.Sub != nil:
		return o.Sub.check()
	}
	return nil
}

func (e *expression) eval(x float64) float64 {
	v := e.Left.eval(x)
	for _, r := range e.Right {
		switch r.Op {
		case "+":
			v += r.Term.eval(x)
		case "-":
			v -= r.Term.eval(x)
		}
	}
	return v
}

func (t *term) eval(x float64) float64 {
	v := t.Left.eval(x)
	for _, r := range t.Right {
		switch r.Op {
		case "*":
			v *= r.Factor.eval(x)
		case "/":
			v /= r.Factor.eval(x)
		}
	}
	return v
}

func (f *factor) eval(x float64) float64 {
	v := f.Value.eval(x)
	if f.Negate {
		return -v
	}
	return v
}

func (o *operand) eval(x float64) float64 {
	switch {
	case o.Number != nil:
		return *o.Number
	case o.Ident != nil:
		return x
	default:
		return o.Sub.eval(x)
	}
}
