package lang

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestError_IsMatchesSentinel(t *testing.T) {
	err := ErrUndefinedVariable.At(Pos{Line: 1, Column: 2}).Detail("'x'")

	if !errors.Is(err, ErrUndefinedVariable) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(err, ErrConstantModified) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if !errors.Is(err.With(slog.Int("n", 1)), ErrUndefinedVariable) {
		t.Error("copy of a derived error lost its sentinel")
	}

	if ErrUndefinedVariable.Pos.IsValid() || ErrUndefinedVariable.detail != "" {
		t.Error("deriving an error modified the sentinel")
	}
}

func TestError_WrapUnwrap(t *testing.T) {
	err := ErrReadInput.Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause not reachable")
	}

	if !errors.Is(err, ErrReadInput) {
		t.Error("sentinel not matched")
	}

	if got := err.Error(); got != "failed to read input: unexpected EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_Render(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"sentinel",
			ErrMissingParen,
			"parse error: missing closing parenthesis",
		},
		{
			"located without source",
			ErrUnknownSymbol.At(Pos{Line: 3, Column: 4}).Detail("'?'"),
			"lex error at line 3, column 4: unknown symbol '?'",
		},
		{
			"located with source",
			ErrUnknownSymbol.At(Pos{Offset: 6, Line: 2, Column: 2}).withSource("x: 1\n\t@"),
			"lex error at line 2, column 2: unknown symbol\n  2 | \t@\n    | \t^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestError_LogValue(t *testing.T) {
	var buf bytes.Buffer

	err := ErrOverflow.At(Pos{Line: 1, Column: 9}).With(slog.String("op", "**"))
	slog.New(slog.NewTextHandler(&buf, nil)).Error("failed", slog.Any("error", err))

	for _, want := range []string{
		"error.phase=runtime",
		`error.error="numeric result out of range"`,
		"error.pos.line=1",
		"error.op=**",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log %q missing %q", buf.String(), want)
		}
	}
}

func TestSourceLine(t *testing.T) {
	src := "one\r\ntwo\nthree"

	for n, want := range map[int]string{1: "one", 2: "two", 3: "three", 4: ""} {
		if got := sourceLine(src, n); got != want {
			t.Errorf("sourceLine(%d) = %q, want %q", n, got, want)
		}
	}
}
