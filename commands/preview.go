package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"void/preview"
)

func NewPreviewCommand(opts *globalOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "preview [dir]",
		Short: "Print the merged live preview document",
		Long: `Resolve the entry document (index.html unless --entry says otherwise) and
inline the stylesheets and scripts it references from the workspace.

Examples:
  void preview .
  void preview site -o /tmp/site.html`,
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
			r := preview.New(cfg.EntryFile, log.Named("preview"))
			doc, ok := r.Resolve(ws.Snapshot())
			if !ok {
				return fmt.Errorf("no %s in workspace", r.Entry)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}
			if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write preview: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Preview written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the document to a file instead of stdout")
	return cmd
}
