package commands

import (
	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the hands currently in the log and exit",
		Long: `convert reads the hand log once, exports every hand not exported before and
exits at the end of the file. With --dry-run it reports what would be exported
without writing hands or moving the resume point.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	addPathFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"Report what would be exported without writing anything")
	return cmd
}
