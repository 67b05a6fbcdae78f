package lang

import (
	"fmt"
	"strconv"
)

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind classifies a [Token].
type Kind uint8

// Token kinds, in lexer priority order. KindInvalid names the catch-all
// pattern and is never emitted.
const (
	KindInvalid      Kind = iota // INVALID
	KindCommentStart             // COMMENT_START
	KindCommentEnd               // COMMENT_END
	KindPrint                    // PRINT
	KindConst                    // CONST
	KindColon                    // COLON
	KindNumber                   // NUMBER
	KindStringLit                // STRING
	KindOperator                 // OPERATOR
	KindIdentifier               // IDENT
	KindNewline                  // NEWLINE
	KindSkip                     // SKIP
)

// Pos locates a token or node in source text. Line and Column are 1-based;
// Column counts runes. The zero Pos means the location is unknown.
type Pos struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// IsValid reports whether the position is known.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a classified lexical unit.
//
// For KindStringLit the Lexeme holds the payload without its << >>
// delimiters. A KindNumber lexeme containing a decimal point is parsed by the
// lexer (Decimal is set and Number holds the value); integral lexemes are
// converted by the parser.
type Token struct {
	Kind    Kind
	Lexeme  string
	Number  float64
	Decimal bool
	Pos     Pos
}

// Source returns text that lexes back to a token of the same kind.
func (t Token) Source() string {
	if t.Kind == KindStringLit {
		return "<<" + t.Lexeme + ">>"
	}

	return t.Lexeme
}

// Float returns the numeric value of a KindNumber token.
func (t Token) Float() float64 {
	if t.Decimal {
		return t.Number
	}

	// A lexeme too large for float64 parses to ±Inf with ErrRange.
	f, _ := strconv.ParseFloat(asciiDigits(t.Lexeme), 64)

	return f
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Pos)
}
