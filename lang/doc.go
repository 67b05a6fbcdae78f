// Package lang implements javpy, a minimal scripting language with numeric,
// string and boolean literals, variable and constant declarations, and an
// arithmetic expression grammar.
//
// Execution is a three stage pipeline:
//
//	tokens, err := lang.Tokenize(ctx, source)   // text → []Token
//	stmts, err := lang.Parse(ctx, tokens)       // []Token → []Stmt
//	err = lang.Interpret(ctx, stmts, env)       // []Stmt → output
//
// [Compile] combines the first two stages and memoizes the result, and
// [Program.Run] performs the third.
//
// # Syntax
//
//	<$> block comments may span lines but never nest <$!>
//	greeting: <<hello>>
//	const limit: 2 ** 10
//	ratio: (limit - 24) / 1000
//	print greeting + << world>>
//	print ratio
//
// Statements are either `print <expression>` or a declaration
// `[const] <name>: <expression>`. Whitespace and newlines are insignificant.
//
// # Grammar
//
//	program        := statement*
//	statement      := 'print' expression | 'const'? IDENT ':' expression
//	expression     := addition
//	addition       := multiplication (('+'|'-') multiplication)*
//	multiplication := power (('*'|'/'|'//'|'%') power)*
//	power          := primary ('**' power)?
//	primary        := NUMBER | STRING | IDENT | BOOLEAN | '(' expression ')'
//
// BOOLEAN is one of the identifiers True or False. There is no unary minus.
//
// # Semantics
//
// All numbers are 64-bit floats. Floor division and modulo follow the sign of
// the divisor. Strings support only concatenation with +. A name declared
// with const may never be rebound. Every failure is reported as an [*Error]
// carrying its [Phase] and source position.
package lang
