package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/musical/cli/cmd"
	"github.com/ardnew/musical/pkg"
)

// CLI is the top-level command-line interface for musical.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Run   cmd.Run   `cmd:"" default:"withargs" help:"Play a source file (default)."`
	Check cmd.Check `cmd:""                    help:"Validate a source file and summarize it."`
	Fmt   cmd.Fmt   `cmd:""                    help:"Re-serialize a source file."`
	Query cmd.Query `cmd:""                    help:"Evaluate an expression over a parsed program."`
	Scale cmd.Scale `cmd:""                    help:"Render a major scale."`
	Init  cmd.Init  `cmd:""                    help:"Write the configuration file."`
}

// Run parses args and executes the selected command. Kong calls exit on
// --help, --version and usage errors.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars()).
		CloneWith(cmd.Vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadConfig, configFilePath),
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

	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
