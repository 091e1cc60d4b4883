package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/genc-murat/memprobe/internal/app"
	"github.com/genc-murat/memprobe/internal/cli"
	"github.com/genc-murat/memprobe/internal/config"
	"github.com/genc-murat/memprobe/internal/logging"
	"github.com/genc-murat/memprobe/internal/report"
	"github.com/genc-murat/memprobe/internal/runner"
)

const runUsage = `Options:
  --sizes <mb,...>        run one ad-hoc scenario per size (wins over --scenarios)
  --iterations <n>        iterations for ad-hoc sizes (default 50)
  --scenarios <id,...>    run configured scenarios by id, in the given order
  --output <file>         report file name inside the report dir, or an absolute path
  --config <file>         scenario file (.json, .yaml or .yml)
  --env <name>            settings file config/<name>.yaml (default "default")
  --log-level <level>     debug, info, warn or error
  --metrics-file <file>   also write a Prometheus textfile
  --no-history            do not append results to the history log
  --plain                 disable table styling`

var (
	rootCmd = &cobra.Command{
		Use:   "memprobe",
		Short: "Measure memory allocation, write and read costs of the Go runtime",
		Long: `memprobe runs memory benchmark scenarios (buffer size x iterations), prints
per-scenario timings and page faults, and saves a JSON report.

` + runUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:               runBenchmark,
	}

	runCmd = &cobra.Command{
		Use:                "run [options]",
		Short:              "Run benchmark scenarios (default command)",
		Long:               runUsage,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runBenchmark,
	}

	compareCmd = &cobra.Command{
		Use:                "compare <baseline.json> <candidate.json>",
		Short:              "Compare two reports scenario by scenario",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runCompare,
	}

	historyCmd = &cobra.Command{
		Use:   "history [--scenario <glob,...>] [--limit <n>]",
		Short: "Show results stored in the history log",
		Long: `Prints history entries in append order. --scenario keeps entries whose
scenario id matches any of the comma-separated globs (*, ?, [...]); --limit keeps
only the last n matching entries.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runHistory,
	}

	initCmd = &cobra.Command{
		Use:                "init [dir]",
		Short:              "Write the default settings and scenario file into dir/config",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE:               runInit,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the memprobe and Go runtime versions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "memprobe %s (%s)\n", version, runner.RuntimeVersion())
		},
	}
)

func init() {
	rootCmd.AddCommand(runCmd, compareCmd, historyCmd, initCmd, versionCmd)
}

var errUsage = errors.New("invalid usage")

// setup loads settings and installs the logger. It reports done when --help
// was requested and printed.
func setup(cmd *cobra.Command, args []string) (opts cli.Options, positional []string, cfg *config.Config, done bool, err error) {
	opts, positional = cli.Parse(args)
	if opts.Bool(cli.KeyHelp) {
		return opts, positional, nil, true, cmd.Help()
	}

	env, _ := opts.Get(cli.KeyEnv)
	cfg, loadErr := config.LoadOrDefault(env)
	if cfg == nil {
		return nil, nil, nil, false, loadErr
	}

	level := cfg.Logging.Level
	if v, ok := opts.Get(cli.KeyLogLevel); ok {
		level = v
	}
	logger, err := logging.New(cmd.ErrOrStderr(), level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, nil, false, err
	}
	slog.SetDefault(logger)

	if loadErr != nil {
		logger.Warn("could not load settings, using embedded defaults", "env", cfg.Environment, "error", loadErr)
	}

	logger.Debug("configuration loaded", "env", cfg.Environment, "source", cfg.Source, "root", cfg.Root)
	return opts, positional, cfg, false, nil
}

func newApp(cmd *cobra.Command, cfg *config.Config, opts cli.Options) *app.App {
	out := cmd.OutOrStdout()
	return app.New(cfg,
		app.WithLogger(slog.Default()),
		app.WithOutput(out, !opts.Bool(cli.KeyPlain) && isTerminal(out)),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && report.IsTerminal(f)
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	opts, _, cfg, done, err := setup(cmd, args)
	if done || err != nil {
		return err
	}
	_, err = newApp(cmd, cfg, opts).Run(opts)
	return err
}

func runCompare(cmd *cobra.Command, args []string) error {
	opts, positional, cfg, done, err := setup(cmd, args)
	if done || err != nil {
		return err
	}
	if len(positional) != 2 {
		return fmt.Errorf("%w: compare needs a baseline and a candidate report, got %d paths", errUsage, len(positional))
	}
	_, err = newApp(cmd, cfg, opts).Compare(positional[0], positional[1])
	return err
}

func runHistory(cmd *cobra.Command, args []string) error {
	opts, _, cfg, done, err := setup(cmd, args)
	if done || err != nil {
		return err
	}
	_, err = newApp(cmd, cfg, opts).History(opts)
	return err
}

func runInit(cmd *cobra.Command, args []string) error {
	_, positional, _, done, err := setup(cmd, args)
	if done || err != nil {
		return err
	}

	dir := "."
	switch len(positional) {
	case 0:
	case 1:
		dir = positional[0]
	default:
		return fmt.Errorf("%w: init takes at most one directory", errUsage)
	}

	created, err := app.Init(dir, slog.Default())
	for _, path := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return err
}
