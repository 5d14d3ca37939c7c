package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"void/compile"
	"void/task"
)

var errCompileFailed = errors.New("compilation failed")

func NewCompileCommand(opts *globalOptions) *cobra.Command {
	var delay time.Duration
	cmd := &cobra.Command{
		Use:   "compile [dir] <path>",
		Short: "Run the simulated compiler on one file",
		Long: `Run the simulated compiler on a workspace file and print its output. The
command fails when the simulated build reports an error.

Examples:
  void compile src/app.js
  void compile ./project src/app.js --delay 0s`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, target := ".", args[0]
			if len(args) == 2 {
				dir, target = args[0], args[1]
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, true)
			if err != nil {
				return err
			}
			defer log.Sync()

			ws, err := loadWorkspace(opts, dir, log.Logger)
			if err != nil {
				return err
			}
			ent, ok := findFile(ws, target)
			if !ok {
				return fmt.Errorf("no file %s in workspace", target)
			}

			if !cmd.Flags().Changed("delay") {
				delay = cfg.CompileDelay()
			}
			runnerOpts := []compile.RunnerOption{compile.WithLogger(log.Named("compile"))}
			if delay <= 0 {
				runnerOpts = append(runnerOpts, compile.WithAfterFunc(func(_ time.Duration, f func()) task.Timer {
					return time.AfterFunc(0, f)
				}))
			}
			runner := compile.NewRunner(delay, runnerOpts...)

			done := make(chan compile.Result, 1)
			running := runner.Start(compile.Source{Name: ent.Name, Language: ent.Language, Content: ent.Content},
				func(res compile.Result, _ task.Handle) { done <- res })

			out := cmd.OutOrStdout()
			var res compile.Result
			select {
			case res = <-done:
			case <-cmd.Context().Done():
				runner.Cancel()
				for _, line := range running.Output {
					fmt.Fprintln(out, line)
				}
				return cmd.Context().Err()
			}
			for _, line := range res.Output {
				fmt.Fprintln(out, line)
			}
			if res.Status == compile.Error {
				return fmt.Errorf("%s: %w", ent.Path, errCompileFailed)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&delay, "delay", 0, "simulated build time (default from settings)")
	return cmd
}
