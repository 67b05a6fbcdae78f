package lang

import (
	"context"
	"slices"
)

// LanguageVersion identifies the revision of the language accepted by this
// package.
const LanguageVersion = "1.0"

// Program is a compiled source: its tokens and statements. A Program is
// immutable and safe to run concurrently against distinct environments.
type Program struct {
	source string
	tokens []Token
	stmts  []Stmt
}

// compile tokenizes and parses source without consulting the cache.
func compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	tokens, err := Tokenize(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	stmts, err := Parse(ctx, tokens, opts...)
	if err != nil {
		return nil, withSource(err, source)
	}

	return &Program{source: source, tokens: tokens, stmts: stmts}, nil
}

// Source returns the text the program was compiled from.
func (p *Program) Source() string { return p.source }

// Tokens returns a copy of the program's token stream.
func (p *Program) Tokens() []Token { return slices.Clone(p.tokens) }

// Statements returns a copy of the program's top-level statements. The
// nodes themselves are shared and must not be modified.
func (p *Program) Statements() []Stmt { return slices.Clone(p.stmts) }

// Empty reports whether the program has no executable statements.
func (p *Program) Empty() bool { return len(p.stmts) == 0 }

// Run executes the program against env. Runtime errors quote the offending
// source line.
func (p *Program) Run(ctx context.Context, env *Environment, opts ...Option) error {
	err := Interpret(ctx, p.stmts, env, opts...)
	if err != nil {
		return withSource(err, p.source)
	}

	return nil
}

// Exec compiles source and runs it against env.
func Exec(ctx context.Context, source string, env *Environment, opts ...Option) error {
	prog, err := Compile(ctx, source, opts...)
	if err != nil {
		return err
	}

	return prog.Run(ctx, env, opts...)
}
