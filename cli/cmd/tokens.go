package cmd

import (
	"context"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// Tokens prints the token stream of a source without parsing or executing
// it, so sources with syntax errors can still be inspected.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) error {
	sources, err := resolveSources([]string{t.Source})
	if err != nil {
		return err
	}

	source, err := readSource(ctx, sources[0])
	if err != nil {
		return err
	}

	tokens, err := lang.Tokenize(ctx, source, lang.WithLogger(log.Default()))
	if err != nil {
		return annotate(err, sources[0])
	}

	err = lang.FormatTokens(stdout(ctx), tokens)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
