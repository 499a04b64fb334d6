package cmd

import (
	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

func versionCmd() *cobra.Command {
	a := ssmctl.New()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Version()
		},
	}
	return cmd
}
