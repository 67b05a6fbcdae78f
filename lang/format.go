package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-yaml"
)

// Format writes stmts as canonical javpy source, one statement per line,
// with only the parentheses the grammar requires.
func Format(w io.Writer, stmts []Stmt) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(w, FormatStmt(s)); err != nil {
			return err
		}
	}

	return nil
}

// FormatStmt returns the canonical source of a single statement.
func FormatStmt(s Stmt) string {
	switch s := s.(type) {
	case *PrintStmt:
		return "print " + FormatExpr(s.Expr)
	case *VarDecl:
		decl := s.Name + ": " + FormatExpr(s.Expr)
		if s.Const {
			return "const " + decl
		}

		return decl
	default:
		return ""
	}
}

// FormatExpr returns the canonical source of an expression.
func FormatExpr(e Expr) string {
	var sb strings.Builder

	formatExpr(&sb, e)

	return sb.String()
}

func formatExpr(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *NumberLit:
		sb.WriteString(numberSource(e))
	case *StringLit:
		sb.WriteString("<<" + e.Value + ">>")
	case *BoolLit:
		sb.WriteString(Bool(e.Value).String())
	case *Identifier:
		sb.WriteString(e.Name)
	case *BinaryOp:
		prec := opPrecedence(e.Op)

		// Left-associative operators need parentheses around a right operand
		// of equal precedence; ** is right-associative, so the reverse holds.
		leftParen := precedence(e.Left) < prec
		rightParen := precedence(e.Right) <= prec

		if prec == precPow {
			leftParen = precedence(e.Left) <= prec
			rightParen = precedence(e.Right) < prec
		}

		formatOperand(sb, e.Left, leftParen)
		sb.WriteString(" " + e.Op + " ")
		formatOperand(sb, e.Right, rightParen)
	}
}

func formatOperand(sb *strings.Builder, e Expr, paren bool) {
	if paren {
		sb.WriteByte('(')
	}

	formatExpr(sb, e)

	if paren {
		sb.WriteByte(')')
	}
}

// numberSource returns the canonical text of a number literal. Literals that
// overflow float64 keep their source digits.
func numberSource(n *NumberLit) string {
	if math.IsInf(n.Value, 0) && n.Text != "" {
		return n.Text
	}

	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// ToMap converts a node into nested maps suitable for JSON or YAML encoding.
func ToMap(n Node) map[string]any {
	m := map[string]any{}

	switch n := n.(type) {
	case *NumberLit:
		if math.IsInf(n.Value, 0) && n.Text != "" {
			m["number"] = n.Text
		} else {
			m["number"] = n.Value
		}
	case *StringLit:
		m["string"] = n.Value
	case *BoolLit:
		m["bool"] = n.Value
	case *Identifier:
		m["identifier"] = n.Name
	case *BinaryOp:
		m["binary"] = map[string]any{
			"op":    n.Op,
			"left":  ToMap(n.Left),
			"right": ToMap(n.Right),
		}
	case *PrintStmt:
		m["print"] = ToMap(n.Expr)
	case *VarDecl:
		m["declare"] = map[string]any{
			"name":  n.Name,
			"const": n.Const,
			"value": ToMap(n.Expr),
		}
	}

	if n != nil && n.Pos().IsValid() {
		m["pos"] = n.Pos().String()
	}

	return m
}

func toMaps(stmts []Stmt) []map[string]any {
	out := make([]map[string]any, len(stmts))
	for i, s := range stmts {
		out[i] = ToMap(s)
	}

	return out
}

// FormatJSON writes stmts as a JSON array. A positive indent pretty-prints.
func FormatJSON(w io.Writer, stmts []Stmt, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(toMaps(stmts), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(toMaps(stmts))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes stmts as a YAML sequence. A zero indent selects flow
// style.
func FormatYAML(ctx context.Context, w io.Writer, stmts []Stmt, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, toMaps(stmts), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// PrintTree writes an indented outline of the syntax tree.
func PrintTree(w io.Writer, stmts []Stmt) error {
	for _, s := range stmts {
		if err := printNode(w, s, 0); err != nil {
			return err
		}
	}

	return nil
}

func printNode(w io.Writer, n Node, depth int) error {
	var (
		label    string
		children []Node
	)

	switch n := n.(type) {
	case *NumberLit:
		label = "Number " + Number(n.Value).String()
	case *StringLit:
		label = "String " + strconv.Quote(n.Value)
	case *BoolLit:
		label = "Bool " + Bool(n.Value).String()
	case *Identifier:
		label = "Identifier " + n.Name
	case *BinaryOp:
		label = "BinaryOp " + n.Op
		children = []Node{n.Left, n.Right}
	case *PrintStmt:
		label = "Print"
		children = []Node{n.Expr}
	case *VarDecl:
		label = "Declare " + n.Name
		if n.Const {
			label = "Const " + n.Name
		}

		children = []Node{n.Expr}
	}

	_, err := fmt.Fprintf(w, "%s%s @%s\n", strings.Repeat("  ", depth), label, n.Pos())
	if err != nil {
		return err
	}

	for _, c := range children {
		if err := printNode(w, c, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// FormatTokens writes one token per line as aligned position, kind and
// lexeme columns.
func FormatTokens(w io.Writer, tokens []Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, tok := range tokens {
		_, err := fmt.Fprintf(tw, "%s\t%s\t%s\n", tok.Pos, tok.Kind, tok.Source())
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}
