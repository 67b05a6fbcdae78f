package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
	"github.com/ardnew/javpy/pkg"
)

// Run executes one or more javpy sources in order against a shared
// environment, so later sources see the bindings of earlier ones.
type Run struct {
	Tokens  bool `help:"Print the token stream before executing."                  short:"t"`
	Content bool `help:"Print the source text before executing."                   short:"c"`
	Strict  bool `default:"true" help:"Reject tokens that cannot begin a statement." negatable:""`

	Sources []string `arg:"" default:"-" help:"Source file(s) or '-' for stdin." name:"source"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	sources, err := resolveSources(r.Sources)
	if err != nil {
		return err
	}

	out := stdout(ctx)
	logger := log.Default().With(slog.String("run_id", uuid.NewString()))
	env := lang.NewEnvironment()

	opts := []lang.Option{
		lang.WithLogger(logger),
		lang.WithStrict(r.Strict),
		lang.WithOutput(out),
	}

	for _, src := range sources {
		err := r.exec(ctx, src, env, logger, out, opts...)
		if err != nil {
			return annotate(err, src)
		}
	}

	logger.DebugContext(ctx, "run finished",
		slog.Int("sources", len(sources)),
		slog.Int("bindings", env.Len()),
	)

	return nil
}

func (r *Run) exec(
	ctx context.Context,
	src string,
	env *lang.Environment,
	logger log.Logger,
	out io.Writer,
	opts ...lang.Option,
) error {
	prog, err := r.compile(ctx, src, out, opts...)
	if err != nil {
		return err
	}

	if prog.Empty() {
		return pkg.ErrNoExecutableCode.Wrapf("%s", sourceName(src))
	}

	logger.DebugContext(ctx, "executing",
		slog.String("source", sourceName(src)),
		slog.Int("statements", len(prog.Statements())),
	)

	return prog.Run(ctx, env, opts...)
}

// compile compiles src. With --content or --tokens it first echoes the
// source and its token stream, so both are shown even when parsing fails.
func (r *Run) compile(
	ctx context.Context,
	src string,
	out io.Writer,
	opts ...lang.Option,
) (*lang.Program, error) {
	if !r.Content && !r.Tokens {
		return compileSource(ctx, src, opts...)
	}

	text, err := readSource(ctx, src)
	if err != nil {
		return nil, err
	}

	if r.Content {
		err = writeContent(out, text)
		if err != nil {
			return nil, ErrWriteOutput.Wrap(err)
		}
	}

	if r.Tokens {
		// A lex error is reported by Compile below.
		tokens, lexErr := lang.Tokenize(ctx, text, opts...)
		if lexErr == nil {
			err = lang.FormatTokens(out, tokens)
			if err != nil {
				return nil, ErrWriteOutput.Wrap(err)
			}
		}
	}

	return lang.Compile(ctx, text, opts...)
}

// writeContent writes source followed by a newline if it lacks one.
func writeContent(w io.Writer, source string) error {
	if source != "" && !strings.HasSuffix(source, "\n") {
		source += "\n"
	}

	_, err := io.WriteString(w, source)

	return err
}

// annotate tags language errors with the source they came from.
func annotate(err error, src string) error {
	var e *lang.Error
	if errors.As(err, &e) {
		return e.With(slog.String("source", sourceName(src)))
	}

	return err
}
