package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/pkg"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		sources    map[string]string
		permissive bool
		content    bool
		want       string
		wantErr    error
	}{
		{
			name:    "arithmetic",
			sources: map[string]string{"a.jvp": "print 1 + 2 * 3\nprint (1 + 2) * 3\nprint 2 ** 3 ** 2"},
			want:    "7\n9\n512\n",
		},
		{
			name:    "floor_division",
			sources: map[string]string{"a.jvp": "print 5 // 2\nprint 5 % 2\nprint 3.5"},
			want:    "2\n1\n3.5\n",
		},
		{
			name:    "reassign",
			sources: map[string]string{"a.jvp": "x: 5\nx: 6\nprint x"},
			want:    "6\n",
		},
		{
			name:    "comment",
			sources: map[string]string{"a.jvp": "<$> not ~ code <$!> print 1"},
			want:    "1\n",
		},
		{
			name:    "constant_modified",
			sources: map[string]string{"a.jvp": "const x: 5\nx: 6"},
			wantErr: lang.ErrConstantModified,
		},
		{
			name:    "undefined",
			sources: map[string]string{"a.jvp": "print y"},
			wantErr: lang.ErrUndefinedVariable,
		},
		{
			name:    "division_by_zero",
			sources: map[string]string{"a.jvp": "print 1 / 0"},
			wantErr: lang.ErrDivisionByZero,
		},
		{
			name:    "no_executable_code",
			sources: map[string]string{"a.jvp": "<$> only a comment <$!>\n"},
			wantErr: pkg.ErrNoExecutableCode,
		},
		{
			name: "shared_environment",
			sources: map[string]string{
				"a.jvp": "const rate: 2",
				"b.jvp": "print rate * 21",
			},
			want: "42\n",
		},
		{
			name:       "permissive",
			sources:    map[string]string{"a.jvp": ") print 1"},
			permissive: true,
			want:       "1\n",
		},
		{
			name:    "strict",
			sources: map[string]string{"a.jvp": ") print 1"},
			wantErr: lang.ErrUnexpectedToken,
		},
		{
			name:    "content",
			sources: map[string]string{"a.jvp": "print 1"},
			content: true,
			want:    "print 1\n1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := t.TempDir()

			cmd := Run{Strict: !tt.permissive, Content: tt.content}

			for _, name := range []string{"a.jvp", "b.jvp"} {
				if src, ok := tt.sources[name]; ok {
					cmd.Sources = append(cmd.Sources, writeSource(t, sub, name, src))
				}
			}

			ctx, out := newTestContext(t, nil)

			err := cmd.Run(ctx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	ctx, out := newTestContext(t, nil)
	ctx = WithStdin(ctx, strings.NewReader("print <<hello>>"))

	cmd := Run{Strict: true, Sources: []string{"-"}}
	require.NoError(t, cmd.Run(ctx))
	assert.Equal(t, "hello\n", out.String())
}

func TestRun_Tokens(t *testing.T) {
	ctx, out := newTestContext(t, nil)
	ctx = WithStdin(ctx, strings.NewReader("print 1"))

	cmd := Run{Strict: true, Tokens: true, Sources: []string{"-"}}
	require.NoError(t, cmd.Run(ctx))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1:1", "PRINT", "print"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1:7", "NUMBER", "1"}, strings.Fields(lines[1]))
	assert.Equal(t, "1", lines[2])
}

func TestRun_DiagnosticsBeforeParseError(t *testing.T) {
	ctx, out := newTestContext(t, nil)
	ctx = WithStdin(ctx, strings.NewReader("print (1"))

	cmd := Run{Strict: true, Content: true, Tokens: true, Sources: []string{"-"}}
	require.ErrorIs(t, cmd.Run(ctx), lang.ErrMissingParen)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "print (1", lines[0])
	assert.Equal(t, []string{"1:1", "PRINT", "print"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"1:7", "OPERATOR", "("}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"1:8", "NUMBER", "1"}, strings.Fields(lines[3]))
}

func TestRun_ContentBeforeLexError(t *testing.T) {
	ctx, out := newTestContext(t, nil)
	ctx = WithStdin(ctx, strings.NewReader("print @"))

	cmd := Run{Strict: true, Content: true, Tokens: true, Sources: []string{"-"}}
	require.ErrorIs(t, cmd.Run(ctx), lang.ErrUnknownSymbol)
	assert.Equal(t, "print @\n", out.String())
}

func TestRun_ErrorNamesSource(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.jvp", "print 1\nprint y")
	ctx, out := newTestContext(t, nil)

	cmd := Run{Strict: true, Sources: []string{path}}
	err := cmd.Run(ctx)
	require.ErrorIs(t, err, lang.ErrUndefinedVariable)

	var diag *lang.Error
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, 2, diag.Pos.Line)
	assert.Equal(t, "print y", diag.Line)
	assert.Contains(t, diag.LogValue().String(), "bad.jvp")
	assert.Equal(t, "1\n", out.String(), "output before the error is kept")
}
