package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"void/highlight"
	"void/workspace"
)

func NewTreeCommand(opts *globalOptions) *cobra.Command {
	var showLanguage bool
	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print the explorer tree of a workspace",
		Long: `Print the explorer tree the shell would show for a directory or seed,
with every folder expanded.

Examples:
  void tree .
  void tree --seed demo.yaml --languages`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, true)
			if err != nil {
				return err
			}
			defer log.Sync()

			ws, err := loadWorkspace(opts, dirArg(args), log.Logger)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), workspace.BuildTree(ws.Snapshot()), 0, showLanguage)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showLanguage, "languages", "l", false, "show the detected language of each file")
	return cmd
}

func printTree(w io.Writer, nodes []*workspace.Node, depth int, showLanguage bool) {
	for _, n := range nodes {
		indent := strings.Repeat("  ", depth)
		switch {
		case n.IsFolder():
			fmt.Fprintf(w, "%s%s/\n", indent, n.Name)
			printTree(w, n.Children, depth+1, showLanguage)
		case showLanguage:
			fmt.Fprintf(w, "%s%s  (%s)\n", indent, n.Name, highlight.DisplayName(n.Language))
		default:
			fmt.Fprintf(w, "%s%s\n", indent, n.Name)
		}
	}
}

// dirArg is the directory a batch command reads, defaulting to the
// working directory.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
