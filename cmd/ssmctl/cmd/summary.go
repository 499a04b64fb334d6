package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

func summaryCmd() *cobra.Command {
	return summaryCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func summaryCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print an overview of rules, running actions and nodes",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Summary(cmd.Context())
		},
	}
	return cmd
}
