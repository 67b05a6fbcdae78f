package lang

import (
	"errors"
	"strings"
	"testing"
)

// sexpr renders a node as a fully parenthesized prefix expression.
func sexpr(n Node) string {
	switch n := n.(type) {
	case *NumberLit:
		return Number(n.Value).String()
	case *StringLit:
		return "<<" + n.Value + ">>"
	case *BoolLit:
		return Bool(n.Value).String()
	case *Identifier:
		return n.Name
	case *BinaryOp:
		return "(" + n.Op + " " + sexpr(n.Left) + " " + sexpr(n.Right) + ")"
	case *PrintStmt:
		return "(print " + sexpr(n.Expr) + ")"
	case *VarDecl:
		kw := "let"
		if n.Const {
			kw = "const"
		}

		return "(" + kw + " " + n.Name + " " + sexpr(n.Expr) + ")"
	}

	return "?"
}

func parseString(t *testing.T, src string, opts ...Option) ([]Stmt, error) {
	t.Helper()

	tokens, err := Tokenize(t.Context(), src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}

	return Parse(t.Context(), tokens, opts...)
}

func TestParse_Trees(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print 42", "(print 42)"},
		{"print 1 + 2 * 3", "(print (+ 1 (* 2 3)))"},
		{"print (1 + 2) * 3", "(print (* (+ 1 2) 3))"},
		{"print 1 - 2 - 3", "(print (- (- 1 2) 3))"},
		{"print 8 / 4 // 2 % 3", "(print (% (// (/ 8 4) 2) 3))"},
		{"print 2 ** 3 ** 2", "(print (** 2 (** 3 2)))"},
		{"print 2 * 3 ** 2", "(print (* 2 (** 3 2)))"},
		{"print (2 ** 3) ** 2", "(print (** (** 2 3) 2))"},
		{"print ((x))", "(print x)"},
		{"print True", "(print True)"},
		{"print <<a>> + name", "(print (+ <<a>> name))"},
		{"x: 1.5", "(let x 1.5)"},
		{"const y: x * 2", "(const y (* x 2))"},
		{"True: 1", "(let True 1)"},
		{"a: 1 b: 2\nprint a print b", "(let a 1) (let b 2) (print a) (print b)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmts, err := parseString(t, tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.src, err)
			}

			parts := make([]string, len(stmts))
			for i, s := range stmts {
				parts[i] = sexpr(s)
			}

			if got := strings.Join(parts, " "); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	stmts, err := Parse(t.Context(), nil)
	if err != nil || stmts != nil {
		t.Errorf("Parse(nil) = %v, %v; want nil, nil", stmts, err)
	}
}

func TestParse_Positions(t *testing.T) {
	stmts, err := parseString(t, "const x:\n  1 + 2")
	if err != nil {
		t.Fatal(err)
	}

	decl, ok := stmts[0].(*VarDecl)
	if !ok {
		t.Fatalf("statement is %T", stmts[0])
	}

	if decl.Pos() != (Pos{Offset: 0, Line: 1, Column: 1}) {
		t.Errorf("declaration at %+v", decl.Pos())
	}

	if op := decl.Expr.Pos(); op.Line != 2 || op.Column != 5 {
		t.Errorf("operator at %s, want 2:5", op)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		pos  string
	}{
		{"print at end", "print", ErrMissingValue, "1:6"},
		{"missing colon", "x 5", ErrExpectedColon, "1:3"},
		{"missing colon at end", "x", ErrExpectedColon, "1:2"},
		{"const without name", "const 5: 1", ErrExpectedIdentifier, "1:7"},
		{"const at end", "const", ErrExpectedIdentifier, "1:6"},
		{"declaration without value", "x:", ErrUnexpectedEOF, "1:3"},
		{"dangling operator", "print 1 +", ErrUnexpectedEOF, "1:10"},
		{"missing paren", "print (1 + 2", ErrMissingParen, "1:13"},
		{"wrong closer", "print (1 + 2 3", ErrMissingParen, "1:14"},
		{"bad primary", "print )", ErrUnexpectedToken, "1:7"},
		{"keyword as value", "x: print", ErrUnexpectedToken, "1:4"},
		{"stray token", "print 1 2", ErrUnexpectedToken, "1:9"},
		{"leading colon", ": 5", ErrUnexpectedToken, "1:1"},
		{"no unary minus", "print -1", ErrUnexpectedToken, "1:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := parseString(t, tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.src, stmts)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("error %v does not match %v", err, tt.want)
			}

			var pe *Error
			if !errors.As(err, &pe) || pe.Phase != PhaseParse {
				t.Fatalf("error %v is not a parse error", err)
			}

			if got := pe.Pos.String(); got != tt.pos {
				t.Errorf("position = %s, want %s", got, tt.pos)
			}
		})
	}
}

func TestParse_UnexpectedTokenNamesKind(t *testing.T) {
	_, err := parseString(t, "print )")

	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not *Error", err)
	}

	if want := `unexpected token OPERATOR ")"`; pe.Message() != want {
		t.Errorf("message = %q, want %q", pe.Message(), want)
	}
}

func TestParse_Permissive(t *testing.T) {
	stmts, err := parseString(t, ": 5 print 1 ) print 2 <<x>>", WithStrict(false))
	if err != nil {
		t.Fatalf("permissive parse failed: %v", err)
	}

	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}

	if got := sexpr(stmts[0]) + " " + sexpr(stmts[1]); got != "(print 1) (print 2)" {
		t.Errorf("statements = %s", got)
	}
}

func TestParse_PermissiveStillRejectsBadStatements(t *testing.T) {
	_, err := parseString(t, "x 1", WithStrict(false))
	if !errors.Is(err, ErrExpectedColon) {
		t.Errorf("error = %v, want %v", err, ErrExpectedColon)
	}
}
