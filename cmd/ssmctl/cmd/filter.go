package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/appstate"
	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

var tableNames = strings.Join(appstate.Tables, "|")

func filterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Manage the filters saved for each table",
		Long: `Saved filters are restored with "ssmctl get <table> --restore".

Relative date ranges such as now-24h are saved as written and resolved every time the filter is used.`,
	}
	cmd.AddCommand(
		filterSaveCmd(),
		filterShowCmd(),
		filterResetCmd(),
	)
	return cmd
}

func filterSaveCmd() *cobra.Command {
	return filterSaveCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func filterSaveCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <" + tableNames + ">",
		Short: "Save a filter read from a YAML or JSON file",
		Long: `Saves a filter read from a YAML or JSON file, for example:

ruleStates:
- ACTIVE
submissionTime: now-7d`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := cmd.Flags().GetString("file")
			if err != nil {
				return fmt.Errorf("error reading file: %s", err)
			}
			return a.SaveFilterFromFile(args[0], file)
		},
	}
	cmd.Flags().StringP("file", "f", "", "YAML or JSON file containing the filter.")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
	return cmd
}

func filterShowCmd() *cobra.Command {
	return filterShowCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func filterShowCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <" + tableNames + ">",
		Short: "Print the filter saved for a table",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ShowFilter(args[0])
		},
	}
	return cmd
}

func filterResetCmd() *cobra.Command {
	return filterResetCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func filterResetCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [" + tableNames + "]...",
		Short: "Delete saved filters, of every table if none are given",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ResetFilters(args)
		},
	}
	return cmd
}
