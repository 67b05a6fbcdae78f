package lang

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"
)

var fuzzSeeds = []string{
	"",
	"print 42",
	"const x: 1.5 ** (2 // 3) print x % 4",
	"<$> comment <$!> print <<str>> + <<ing>>",
	"<$> <$> nested",
	"<$!>",
	"print (1 + ",
	"x: True y: False",
	"print 1 @",
	"a:1b:2print a*b",
	"\r\n\t print\t1\r\n",
	"print <<unterminated",
	"ü: 1",
	"aé: 1 printé: 2 print aé + printé",
	"print ١٢ + 3.٥",
	"print " + strings.Repeat("9", 400),
}

func FuzzTokenize(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		tokens, err := Tokenize(t.Context(), src)
		if err != nil {
			var le *Error
			if !errors.As(err, &le) || le.Phase != PhaseLex || !le.Pos.IsValid() {
				t.Fatalf("Tokenize(%q) returned unlocated error %v", src, err)
			}

			return
		}

		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			if tok.Kind == KindInvalid || tok.Kind == KindNewline || tok.Kind == KindSkip {
				t.Fatalf("Tokenize(%q) emitted %v", src, tok)
			}

			parts[i] = tok.Source()
		}

		again, err := Tokenize(t.Context(), strings.Join(parts, " "))
		if err != nil {
			t.Fatalf("re-tokenizing %q: %v", src, err)
		}

		if !slices.Equal(kinds(tokens), kinds(again)) {
			t.Fatalf("kinds of %q changed on round trip", src)
		}
	})
}

func FuzzCompile(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		prog, err := compile(t.Context(), src)
		if err != nil {
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("compile(%q) error %T is not *Error", src, err)
			}

			return
		}

		var once bytes.Buffer
		if err := Format(&once, prog.stmts); err != nil {
			t.Fatal(err)
		}

		reparsed, err := compile(t.Context(), once.String())
		if err != nil {
			t.Fatalf("formatted source %q does not compile: %v", once.String(), err)
		}

		var twice bytes.Buffer
		if err := Format(&twice, reparsed.stmts); err != nil {
			t.Fatal(err)
		}

		if once.String() != twice.String() {
			t.Fatalf("format not stable:\n%s\n%s", once.String(), twice.String())
		}

		// Execution may fail, but never panics.
		_ = prog.Run(t.Context(), NewEnvironment(), WithOutput(nil))
	})
}
