package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/javpy/cli/cmd/repl"
	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// Repl starts an interactive session.
type Repl struct {
	Strict bool `default:"true" help:"Reject tokens that cannot begin a statement." negatable:""`

	Sources []string `arg:"" help:"Source file(s) to run before the session starts." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: kong context undefined")
	}

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	sources, err := resolveSources(r.Sources)
	if err != nil {
		return err
	}

	preload := make([]io.Reader, 0, len(sources))

	for _, src := range sources {
		rc, err := openSource(ctx, src)
		if err != nil {
			return err
		}
		defer rc.Close()

		preload = append(preload, rc)
	}

	logger := log.Default().With(slog.String("mode", "repl"))

	return repl.Run(ctx, cacheDir, logger, preload, lang.WithStrict(r.Strict))
}
