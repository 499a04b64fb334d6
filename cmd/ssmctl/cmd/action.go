package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

func actionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Submit, inspect or repeat actions",
	}
	cmd.AddCommand(
		actionSubmitCmd(),
		actionShowCmd(),
		actionRepeatCmd(),
	)
	return cmd
}

func actionSubmitCmd() *cobra.Command {
	return actionSubmitCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func actionSubmitCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <action>",
		Short: "Run an action on the cluster",
		Long: `Submits an action such as "cache -file /logs/app.log" for immediate execution.

Without --host the server picks the executor.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := cmd.Flags().GetString("host")
			if err != nil {
				return fmt.Errorf("error reading host: %s", err)
			}
			return a.SubmitAction(cmd.Context(), strings.Join(args, " "), host)
		},
	}
	cmd.Flags().String("host", "", "Host to execute the action on.")
	return cmd
}

func actionShowCmd() *cobra.Command {
	return actionShowCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func actionShowCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <action-id>",
		Short: "Show an action and its log",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0], "action")
			if err != nil {
				return err
			}
			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("error reading output: %s", err)
			}
			format, err := ssmctl.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			return a.ShowAction(cmd.Context(), id, format)
		},
	}
	cmd.Flags().StringP("output", "o", string(ssmctl.OutputTable), "Output format, table or yaml.")
	return cmd
}

func actionRepeatCmd() *cobra.Command {
	return actionRepeatCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func actionRepeatCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repeat <action-id>",
		Short: "Submit an existing action again on the same host",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0], "action")
			if err != nil {
				return err
			}
			return a.RepeatAction(cmd.Context(), id)
		},
	}
	return cmd
}
