package lang

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenPatterns is the lexer priority table. At each position the first
// pattern that matches wins, regardless of match length. Keywords must also
// end at a word boundary; see [lexer.match].
var tokenPatterns = [...]struct {
	kind Kind
	expr string
}{
	{KindCommentStart, `<\$>`},
	{KindCommentEnd, `<\$!>`},
	{KindPrint, `print`},
	{KindConst, `const`},
	{KindColon, `:`},
	{KindNumber, `\p{Nd}+(?:\.\p{Nd}+)?`},
	{KindStringLit, `<<[^>]*>>`},
	{KindOperator, `\*\*|//|\+|-|\*|/|%|\(|\)`},
	{KindIdentifier, `[a-zA-Z_][\p{L}\p{N}_]*`},
	{KindNewline, `\n`},
	{KindSkip, `[ \t\r]+`},
	{KindInvalid, `(?s:.)`},
}

// tokenPattern is the anchored alternation of tokenPatterns, with capture
// group i+1 holding pattern i. RE2 alternation is leftmost-first, which
// preserves the table's priority order.
var tokenPattern = func() *regexp.Regexp {
	alt := make([]string, len(tokenPatterns))
	for i, p := range tokenPatterns {
		alt[i] = "(" + p.expr + ")"
	}

	return regexp.MustCompile(`^(?:` + strings.Join(alt, "|") + `)`)
}()

// identifierPattern matches a keyword prefix that runs into more word
// characters, such as "printer".
var identifierPattern = func() *regexp.Regexp {
	for _, p := range tokenPatterns {
		if p.kind == KindIdentifier {
			return regexp.MustCompile(`^` + p.expr)
		}
	}

	panic("lang: no identifier pattern")
}()

type lexer struct {
	src  string
	off  int
	line int
	col  int // runes consumed since the last newline

	inComment bool
	opened    Pos
}

// Tokenize converts source into its token stream, discarding whitespace,
// newlines and comments.
//
// A comment opens with <$> and closes with <$!>; everything in between is
// ignored, including characters that would otherwise be invalid. Comments do
// not nest.
func Tokenize(ctx context.Context, source string, opts ...Option) ([]Token, error) {
	o := makeOptions(opts...)
	lx := &lexer{src: source, line: 1}

	var tokens []Token

	for lx.off < len(lx.src) {
		kind, text := lx.match()
		at := lx.pos()
		lx.advance(text)

		switch {
		case kind == KindCommentStart:
			if lx.inComment {
				return nil, ErrNestedComment.At(at).
					With(slog.String("opened", lx.opened.String())).
					withSource(source)
			}

			lx.inComment, lx.opened = true, at

		case kind == KindCommentEnd:
			if !lx.inComment {
				return nil, ErrUnexpectedCommentEnd.At(at).withSource(source)
			}

			lx.inComment = false

		case lx.inComment, kind == KindNewline, kind == KindSkip:

		case kind == KindInvalid:
			return nil, ErrUnknownSymbol.At(at).
				Detail("%s", strconv.QuoteRune(firstRune(text))).
				withSource(source)

		default:
			tokens = append(tokens, makeToken(kind, text, at))
		}
	}

	if lx.inComment {
		return nil, ErrUnclosedComment.At(lx.opened).
			Detail("starting at line %d", lx.opened.Line).
			withSource(source)
	}

	o.logger.TraceContext(ctx, "tokenized",
		slog.Int("source_bytes", len(source)),
		slog.Int("token_count", len(tokens)),
		slog.Int("line_count", lx.line),
	)

	return tokens, nil
}

// match returns the kind and text of the highest-priority pattern matching at
// the current offset. The catch-all pattern guarantees a match while input
// remains.
func (lx *lexer) match() (Kind, string) {
	m := tokenPattern.FindStringSubmatchIndex(lx.src[lx.off:])

	for i := range tokenPatterns {
		if lo, hi := m[2*i+2], m[2*i+3]; lo >= 0 {
			kind, text := tokenPatterns[i].kind, lx.src[lx.off+lo:lx.off+hi]

			if isKeyword(kind) && !lx.boundaryAt(lx.off+hi) {
				return KindIdentifier, identifierPattern.FindString(lx.src[lx.off:])
			}

			return kind, text
		}
	}

	// Unreachable with the catch-all pattern in place.
	_, size := utf8.DecodeRuneInString(lx.src[lx.off:])

	return KindInvalid, lx.src[lx.off : lx.off+size]
}

func (lx *lexer) pos() Pos {
	return Pos{
		Offset: lx.off,
		Line:   lx.line,
		Column: lx.col + 1,
	}
}

// advance consumes text, counting every newline it contains.
func (lx *lexer) advance(text string) {
	lx.off += len(text)

	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		lx.line += strings.Count(text, "\n")
		lx.col = utf8.RuneCountInString(text[i+1:])

		return
	}

	lx.col += utf8.RuneCountInString(text)
}

// boundaryAt reports whether a word ends at byte offset off.
func (lx *lexer) boundaryAt(off int) bool {
	r, size := utf8.DecodeRuneInString(lx.src[off:])

	return size == 0 || !isWordRune(r)
}

func isKeyword(kind Kind) bool { return kind == KindPrint || kind == KindConst }

// isWordRune reports whether r may continue an identifier.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func makeToken(kind Kind, text string, at Pos) Token {
	tok := Token{Kind: kind, Lexeme: text, Pos: at}

	switch kind {
	case KindNumber:
		if strings.ContainsRune(text, '.') {
			tok.Decimal = true
			tok.Number, _ = strconv.ParseFloat(asciiDigits(text), 64)
		}

	case KindStringLit:
		tok.Lexeme = text[2 : len(text)-2]
	}

	return tok
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)

	return r
}

// asciiDigits rewrites every decimal digit of s, in any script, as its ASCII
// form.
func asciiDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf || !unicode.IsDigit(r) {
			return r
		}

		// Decimal digits are encoded in contiguous runs starting at zero.
		zero := r
		for unicode.IsDigit(zero - 1) {
			zero--
		}

		return '0' + (r-zero)%10
	}, s)
}
