package lang

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/edwingeng/deque"

	"github.com/ardnew/javpy/log"
)

// parser consumes tokens front to back from a queue.
type parser struct {
	queue  deque.Deque
	end    Pos
	strict bool
	logger log.Logger
	ctx    context.Context
}

// Parse builds the statement list of a token stream. An empty stream yields
// no statements and no error.
func Parse(ctx context.Context, tokens []Token, opts ...Option) ([]Stmt, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	o := makeOptions(opts...)

	p := &parser{
		queue:  deque.NewDeque(),
		end:    endOf(tokens[len(tokens)-1]),
		strict: o.strict,
		logger: o.logger,
		ctx:    ctx,
	}

	for _, tok := range tokens {
		p.queue.PushBack(tok)
	}

	stmts, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	p.logger.TraceContext(ctx, "parsed",
		slog.Int("token_count", len(tokens)),
		slog.Int("statement_count", len(stmts)),
		slog.Bool("strict", p.strict),
	)

	return stmts, nil
}

// endOf returns the position just past tok.
func endOf(tok Token) Pos {
	src := tok.Source()

	return Pos{
		Offset: tok.Pos.Offset + len(src),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column + utf8.RuneCountInString(src),
	}
}

func (p *parser) parseProgram() ([]Stmt, error) {
	var stmts []Stmt

	for !p.queue.Empty() {
		tok := p.peek()

		var (
			stmt Stmt
			err  error
		)

		switch tok.Kind {
		case KindPrint:
			stmt, err = p.parsePrint()
		case KindConst, KindIdentifier:
			stmt, err = p.parseDecl()
		default:
			if p.strict {
				return nil, unexpected(tok)
			}

			p.logger.WarnContext(p.ctx, "skipping token",
				slog.String("kind", tok.Kind.String()),
				slog.String("lexeme", tok.Lexeme),
				posAttr(tok.Pos),
			)
			p.queue.PopFront()

			continue
		}

		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

// parsePrint parses: 'print' expression.
func (p *parser) parsePrint() (Stmt, error) {
	kw := p.next()

	if p.queue.Empty() {
		return nil, ErrMissingValue.At(p.end)
	}

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &PrintStmt{Expr: e, at: kw.Pos}, nil
}

// parseDecl parses: 'const'? IDENT ':' expression.
func (p *parser) parseDecl() (Stmt, error) {
	first := p.peek()
	constant := first.Kind == KindConst

	if constant {
		p.queue.PopFront()
	}

	if p.queue.Empty() {
		return nil, ErrExpectedIdentifier.At(p.end)
	}

	name := p.next()
	if name.Kind != KindIdentifier {
		return nil, ErrExpectedIdentifier.At(name.Pos).
			Detail("but found %s %q", name.Kind, name.Lexeme)
	}

	if p.queue.Empty() {
		return nil, ErrExpectedColon.At(p.end)
	}

	if colon := p.next(); colon.Kind != KindColon {
		return nil, ErrExpectedColon.At(colon.Pos).
			With(slog.String("name", name.Lexeme))
	}

	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &VarDecl{Name: name.Lexeme, Expr: e, Const: constant, at: first.Pos}, nil
}

func (p *parser) parseExpression() (Expr, error) {
	return p.parseAddition()
}

// parseAddition parses: multiplication (('+'|'-') multiplication)*.
func (p *parser) parseAddition() (Expr, error) {
	return p.parseLeftAssoc(p.parseMultiplication, "+", "-")
}

// parseMultiplication parses: power (('*'|'/'|'//'|'%') power)*.
func (p *parser) parseMultiplication() (Expr, error) {
	return p.parseLeftAssoc(p.parsePower, "*", "/", "//", "%")
}

func (p *parser) parseLeftAssoc(
	operand func() (Expr, error),
	ops ...string,
) (Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.acceptOperator(ops...)
		if !ok {
			return left, nil
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		left = &BinaryOp{Op: op.Lexeme, Left: left, Right: right, at: op.Pos}
	}
}

// parsePower parses: primary ('**' power)?.
func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	op, ok := p.acceptOperator("**")
	if !ok {
		return base, nil
	}

	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &BinaryOp{Op: op.Lexeme, Left: base, Right: exp, at: op.Pos}, nil
}

// parsePrimary parses: NUMBER | STRING | IDENT | BOOLEAN | '(' expression ')'.
func (p *parser) parsePrimary() (Expr, error) {
	if p.queue.Empty() {
		return nil, ErrUnexpectedEOF.At(p.end)
	}

	tok := p.next()

	switch tok.Kind {
	case KindNumber:
		return &NumberLit{Value: tok.Float(), Text: asciiDigits(tok.Lexeme), at: tok.Pos}, nil

	case KindStringLit:
		return &StringLit{Value: tok.Lexeme, at: tok.Pos}, nil

	case KindIdentifier:
		switch tok.Lexeme {
		case "True":
			return &BoolLit{Value: true, at: tok.Pos}, nil
		case "False":
			return &BoolLit{Value: false, at: tok.Pos}, nil
		}

		return &Identifier{Name: tok.Lexeme, at: tok.Pos}, nil

	case KindOperator:
		if tok.Lexeme != "(" {
			break
		}

		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, ok := p.acceptOperator(")"); !ok {
			at := p.end
			if !p.queue.Empty() {
				at = p.peek().Pos
			}

			return nil, ErrMissingParen.At(at).
				With(slog.String("opened", tok.Pos.String()))
		}

		return e, nil
	}

	return nil, unexpected(tok)
}

func (p *parser) peek() Token {
	tok, _ := p.queue.Front().(Token)

	return tok
}

func (p *parser) next() Token {
	tok, _ := p.queue.PopFront().(Token)

	return tok
}

// acceptOperator consumes the next token if it is one of the given
// operators.
func (p *parser) acceptOperator(ops ...string) (Token, bool) {
	if p.queue.Empty() {
		return Token{}, false
	}

	tok := p.peek()
	for _, op := range ops {
		if tok.Is(KindOperator, op) {
			p.queue.PopFront()

			return tok, true
		}
	}

	return Token{}, false
}

func unexpected(tok Token) *Error {
	return ErrUnexpectedToken.At(tok.Pos).Detail("%s %q", tok.Kind, tok.Lexeme)
}
