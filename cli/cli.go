package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lambdex/cli/cmd"
	"github.com/ardnew/lambdex/pkg"
)

// CLI is the top-level command-line interface for lambdex.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Print the compiled text of a tree."`
	Eval    cmd.Eval    `cmd:""                    help:"Evaluate a tree and print the result."`
	Fmt     cmd.Fmt     `cmd:""                    help:"Re-emit a tree document."`
	Tree    cmd.Tree    `cmd:""                    help:"Print the node structure of a tree."`
	Init    cmd.Init    `cmd:""                    help:"Write the current flags to the configuration file."`
}

// Run executes the lambdex CLI with the process's standard streams.
// The exit function is called with the exit code when kong terminates early
// (help, version, usage errors).
func Run(ctx context.Context, exit func(code int), args ...string) error {
	return run(ctx, exit, cmd.StdStreams(), pkg.ConfigFile(), args...)
}

func run(
	ctx context.Context,
	exit func(code int),
	streams *cmd.Streams,
	configFile string,
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before parsing so that parse errors are logged with
	// the requested configuration.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(streams.Out, streams.Out),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.Bind(streams),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(loadYAML, configFile),
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
