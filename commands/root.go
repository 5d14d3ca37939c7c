// Package commands is the command line surface: the interactive shell and
// a few batch subcommands that run the same workspace logic headless.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"void/config"
	"void/editor"
	"void/logging"
)

var version = "dev"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	entry      string
	seed       string
	logLevel   string
	logFile    string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "void [dir]",
		Short: "A terminal code editor with live preview and a built-in assistant",
		Long: `Void opens an in-memory workspace in the terminal. Files are imported from
a directory or a YAML seed document and never written back; compile runs
and assistant replies are simulated.

Examples:
  # Open the welcome workspace
  void

  # Import the current project
  void .

  # Start from a seed document
  void --seed demo.yaml`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default ~/.config/void/settings.json)")
	flags.StringVar(&opts.entry, "entry", "", "preview entry document (default index.html)")
	flags.StringVar(&opts.seed, "seed", "", "YAML seed document to load instead of a directory")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file")

	cmd.AddCommand(
		NewTreeCommand(opts),
		NewPreviewCommand(opts),
		NewCompileCommand(opts),
	)
	return cmd
}

// Execute runs the root command with interrupt handling.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (o *globalOptions) settingsPath() string {
	if o.configPath != "" {
		return o.configPath
	}
	return config.ConfigPath()
}

// loadConfig reads the settings file and applies flag overrides.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.settingsPath())
	if err != nil {
		return nil, err
	}
	if o.entry != "" {
		cfg.EntryFile = o.entry
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	return cfg, nil
}

// newLogger logs to the configured file. Batch commands fall back to
// stderr; the shell stays silent so the screen is not corrupted.
func newLogger(cfg *config.Config, batch bool) (*logging.Logger, error) {
	lc := logging.Config{Level: cfg.LogLevel, Format: "json", OutputPath: cfg.LogFile}
	if lc.OutputPath == "" && batch {
		lc.OutputPath = "stderr"
		lc.Format = "console"
		if cfg.LogLevel == "" || cfg.LogLevel == config.Default().LogLevel {
			lc.Level = "warn"
		}
	}
	return logging.New(lc)
}

func runShell(ctx context.Context, opts *globalOptions, args []string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	ws, err := loadWorkspace(opts, dir, log.Logger)
	if err != nil {
		return err
	}

	e := editor.New(editor.Options{
		Config:     cfg,
		ConfigPath: opts.settingsPath(),
		Workspace:  ws,
		Log:        log,
	})
	if err := e.Run(ctx); err != nil {
		log.Error("editor failed", zap.Error(err))
		return err
	}
	return nil
}
