package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/javpy/lang"
	"github.com/ardnew/javpy/log"
)

// resolve returns a [kong.ConfigurationLoader] for config files written in
// javpy itself.
//
// The file is executed against a fresh environment with its output
// discarded, and every resulting binding supplies the flag of the same name.
// Flag names contain hyphens, which are not valid in identifiers, so the
// config file spells them with underscores:
//
//	<$> ~/.config/javpy/config.jvp <$!>
//	log_level: <<debug>>
//	log_format: <<text>>
//	log_pretty: False
//
// Command-line flags override config file values. A config file that fails
// to compile or run is logged and otherwise ignored.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		prog, err := lang.CompileReader(ctx, r)
		if err == nil {
			env := lang.NewEnvironment()

			err = prog.Run(ctx, env, lang.WithOutput(io.Discard))
			if err == nil {
				return makeConfig(env), nil
			}
		}

		log.WarnContext(ctx, "ignoring config file", slog.Any("error", err))

		return config{}, nil
	}
}

// config implements [kong.Resolver] over the bindings of a config program.
type config map[string]string

func makeConfig(env *lang.Environment) config {
	c := make(config, env.Len())

	for name, value := range env.All() {
		switch v := value.(type) {
		case lang.Bool:
			c[name] = strconv.FormatBool(bool(v))
		default:
			c[name] = v.String()
		}
	}

	return c
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found: let kong fall through to other resolvers and defaults.
	return nil, nil
}
