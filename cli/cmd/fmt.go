package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// Fmt parses a source and re-emits it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical javpy source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
}

// fmtSource is the positional source shared by the fmt subcommands.
type fmtSource struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// format compiles the source and hands its statements to emit.
func (f fmtSource) format(
	ctx context.Context,
	name string,
	emit func(io.Writer, []lang.Stmt) error,
) error {
	sources, err := resolveSources([]string{f.Source})
	if err != nil {
		return err
	}

	prog, err := compileSource(ctx, sources[0], lang.WithLogger(log.Default()))
	if err != nil {
		return annotate(err, sources[0])
	}

	log.DebugContext(ctx, "formatting",
		slog.String("format", name),
		slog.String("source", sourceName(sources[0])),
	)

	return emit(stdout(ctx), prog.Statements())
}

// Native formats input as canonical javpy source.
type Native struct {
	Input fmtSource `embed:""`
}

// Run executes the fmt native command.
func (n *Native) Run(ctx context.Context) error {
	return n.Input.format(ctx, "native", func(w io.Writer, stmts []lang.Stmt) error {
		err := lang.Format(w, stmts)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	})
}

// JSON formats input as a JSON array of statement objects.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Input fmtSource `embed:""`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	return j.Input.format(ctx, "json", func(w io.Writer, stmts []lang.Stmt) error {
		err := lang.FormatJSON(w, stmts, j.Indent)
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil
	})
}

// YAML formats input as a YAML sequence of statement mappings.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Input fmtSource `embed:""`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return y.Input.format(ctx, "yaml", func(w io.Writer, stmts []lang.Stmt) error {
		err := lang.FormatYAML(ctx, w, stmts, y.Indent)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		return nil
	})
}

// AST formats input as an indented syntax tree.
type AST struct {
	Input fmtSource `embed:""`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	return a.Input.format(ctx, "ast", func(w io.Writer, stmts []lang.Stmt) error {
		err := lang.PrintTree(w, stmts)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	})
}
