package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/ardnew/javpy/cli/cmd"
	"github.com/ardnew/javpy/log"
	"github.com/ardnew/javpy/pkg"
)

// CLI is the top-level command-line interface for javpy.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Run javpy source files (default)."`
	Tokens  cmd.Tokens  `cmd:""                    help:"Print the token stream of a source."`
	Fmt     cmd.Fmt     `cmd:""                    help:"Format a source."`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session."`
	Init    cmd.Init    `cmd:""                    help:"Write current flag values to the configuration file."`
	Version cmd.Version `cmd:""                    help:"Print version information."`
}

// dotenv is the file in the working directory that may supply environment
// variables.
const dotenv = ".env"

// Run executes the javpy CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	// Variables already set in the environment take precedence.
	err = godotenv.Load(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WarnContext(ctx, "ignoring "+dotenv, slog.Any("error", err))
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logging flags before kong parses, so they also govern messages
	// logged during parsing regardless of flag position.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(pkg.EnvPrefix),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	cli.Log.start(ctx)

	// [pprofConfig.start] is a no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
