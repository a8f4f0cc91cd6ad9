package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/sysprompts/internal/config"
	"github.com/JaimeStill/sysprompts/internal/infrastructure"
	"github.com/JaimeStill/sysprompts/internal/sysprompts"
	"github.com/JaimeStill/sysprompts/pkg/storage"
)

// Version info, set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

// app carries the I/O streams and the systems built for one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	// storage replaces the configured backend when set.
	storage storage.System

	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	prompts sysprompts.System
}

func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	return a.execute(ctx, args)
}

func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if a.infra != nil {
		a.infra.Close()
	}
	if err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "sysprompts",
		Short:             "Manage named, tagged system prompts",
		Long:              `sysprompts creates, searches, and exports the system prompts that configure an agent, with one prompt marked as the default.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config.toml")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		a.listCmd(),
		a.createCmd(),
		a.showCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.setDefaultCmd(),
		a.importCmd(),
		a.exportCmd(),
		a.forModelCmd(),
		a.versionCmd(),
	)

	return root
}

// setup loads configuration and opens the prompt store. The collection is
// seeded on first use.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	base := &config.Config{Logging: config.LoggingConfig{Level: "warn"}}

	cfg, err := config.Load(a.configPath, base)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := config.ParseLogLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	if cmd.Name() == "version" {
		return nil
	}

	if a.storage != nil {
		logger := infrastructure.NewLogger(&cfg.Logging, a.stderr)
		a.infra = infrastructure.NewWithStorage(cfg, logger, a.storage)
	} else {
		a.infra, err = infrastructure.New(cfg, a.stderr)
		if err != nil {
			return err
		}
	}

	if err := a.infra.Initialize(cmd.Context()); err != nil {
		return err
	}
	a.prompts = a.infra.Prompts
	return nil
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "sysprompts v%s (commit: %s, config: %s)\n", version, commit, a.cfg.Version)
		},
	}
}
