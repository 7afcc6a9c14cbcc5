package cmd

import (
	"fmt"

	"github.com/harrison/bundler/internal/fileutil"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list subcommand, a dry run that prints the
// files a bundle would contain without reading them or writing output.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List the files that would be bundled",
		Long: `List the files a bundle run would include, in bundle order, one per line.
Nothing is read and no output file is written.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runList,
		SilenceUsage: true,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	root := rootArg(args)

	_, p, err := loadSettings(cmd, root)
	if err != nil {
		return err
	}

	result, err := fileutil.ScanDirectory(root, fileutil.ScanOptions{
		Include: p.IncludesFile,
		SkipDir: p.SkipsDir,
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	out := cmd.OutOrStdout()
	for _, rel := range result.Files {
		fmt.Fprintln(out, rel)
	}
	for _, scanErr := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", scanErr)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d file(s)\n", len(result.Files))

	return nil
}
