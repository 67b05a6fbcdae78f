package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/ardnew/javpy/log"
)

type interpreter struct {
	env    *Environment
	out    io.Writer
	logger log.Logger
	ctx    context.Context
}

// Interpret executes stmts in order against env, writing print output to the
// writer set by [WithOutput]. A nil env runs against a fresh, discarded
// environment. Execution stops at the first error.
func Interpret(
	ctx context.Context,
	stmts []Stmt,
	env *Environment,
	opts ...Option,
) error {
	if env == nil {
		env = NewEnvironment()
	}

	o := makeOptions(opts...)
	in := &interpreter{env: env, out: o.output, logger: o.logger, ctx: ctx}

	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			in.logger.DebugContext(ctx, "execution failed", slog.Any("error", err))

			return err
		}
	}

	in.logger.TraceContext(ctx, "executed",
		slog.Int("statement_count", len(stmts)),
		slog.Int("binding_count", env.Len()),
	)

	return nil
}

func (in *interpreter) exec(s Stmt) error {
	switch s := s.(type) {
	case *PrintStmt:
		v, err := in.eval(s.Expr)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(in.out, v.String()); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

	case *VarDecl:
		v, err := in.eval(s.Expr)
		if err != nil {
			return err
		}

		if err := in.env.Declare(s.Name, v, s.Const); err != nil {
			return located(err, s.Pos())
		}

		in.logger.TraceContext(in.ctx, "declared",
			slog.String("name", s.Name),
			slog.String("type", v.Type()),
			slog.Bool("const", s.Const),
		)

	default:
		return ErrUnexpectedToken.Detail("statement %T", s)
	}

	return nil
}

func (in *interpreter) eval(e Expr) (Value, error) {
	switch e := e.(type) {
	case *NumberLit:
		return Number(e.Value), nil

	case *StringLit:
		return Text(e.Value), nil

	case *BoolLit:
		return Bool(e.Value), nil

	case *Identifier:
		v, ok := in.env.Lookup(e.Name)
		if !ok {
			return nil, ErrUndefinedVariable.At(e.Pos()).Detail("'%s'", e.Name)
		}

		return v, nil

	case *BinaryOp:
		left, err := in.eval(e.Left)
		if err != nil {
			return nil, err
		}

		right, err := in.eval(e.Right)
		if err != nil {
			return nil, err
		}

		v, err := Apply(e.Op, left, right)
		if err != nil {
			return nil, located(err, e.Pos())
		}

		return v, nil
	}

	return nil, ErrUnexpectedToken.Detail("expression %T", e)
}

// Apply evaluates the binary operator op on two values.
func Apply(op string, left, right Value) (Value, error) {
	switch l := left.(type) {
	case Number:
		if r, ok := right.(Number); ok {
			return arith(op, float64(l), float64(r))
		}

	case Text:
		if r, ok := right.(Text); ok && op == "+" {
			return l + r, nil
		}
	}

	return nil, ErrUnsupportedOperand.Detail("for %s: '%s' and '%s'",
		op, left.Type(), right.Type())
}

func arith(op string, a, b float64) (Value, error) {
	switch op {
	case "+":
		return Number(a + b), nil

	case "-":
		return Number(a - b), nil

	case "*":
		return Number(a * b), nil

	case "/":
		if b == 0 {
			return nil, ErrDivisionByZero
		}

		return Number(a / b), nil

	case "//", "%":
		if b == 0 {
			return nil, ErrDivisionByZero
		}

		div, mod := floorDivMod(a, b)
		if op == "%" {
			return Number(mod), nil
		}

		return Number(div), nil

	case "**":
		return power(a, b)
	}

	return nil, ErrUnsupportedOperand.Detail("operator %s", op)
}

// floorDivMod returns the quotient rounded toward negative infinity and the
// remainder with the sign of the divisor. b must be nonzero.
func floorDivMod(a, b float64) (div, mod float64) {
	mod = math.Mod(a, b)
	div = (a - mod) / b

	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
			div--
		}
	} else {
		mod = math.Copysign(0, b)
	}

	if div != 0 {
		floor := math.Floor(div)
		if div-floor > 0.5 {
			floor++
		}

		div = floor
	} else {
		div = math.Copysign(0, a/b)
	}

	return div, mod
}

func power(a, b float64) (Value, error) {
	switch {
	case a == 0 && b < 0:
		return nil, ErrDivisionByZero.Detail("(zero to a negative power)")
	case a < 0 && b != math.Trunc(b) && !math.IsInf(b, 0) && !math.IsNaN(b):
		return nil, ErrNotReal
	}

	r := math.Pow(a, b)
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return nil, ErrOverflow
	}

	return Number(r), nil
}
