package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

func ruleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Create, delete, start or stop rules",
	}
	cmd.AddCommand(
		ruleCreateCmd(),
		ruleDeleteCmd(),
		ruleStartCmd(),
		ruleStopCmd(),
		ruleInfoCmd(),
	)
	return cmd
}

func ruleCreateCmd() *cobra.Command {
	return ruleCreateCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func ruleCreateCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <rule>",
		Short: "Submit a new rule",
		Long: `Submits a rule in the SSM rule language, for example:

ssmctl rule create 'file: path matches "/logs/*" and accessCount(10min) > 3 | cache'

The rule is created in the NEW state. Use "ssmctl rule start" to activate it.`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CreateRule(cmd.Context(), strings.Join(args, " "))
		},
	}
	return cmd
}

func ruleDeleteCmd() *cobra.Command {
	return ruleIdCmdWithApp(ssmctl.New(), "delete", "Delete a rule", (*ssmctl.App).DeleteRule)
}

func ruleStartCmd() *cobra.Command {
	return ruleIdCmdWithApp(ssmctl.New(), "start", "Activate a rule", (*ssmctl.App).StartRule)
}

func ruleStopCmd() *cobra.Command {
	return ruleIdCmdWithApp(ssmctl.New(), "stop", "Disable a rule", (*ssmctl.App).StopRule)
}

type ruleFunc func(a *ssmctl.App, ctx context.Context, id int64) error

// ruleIdCmdWithApp builds a command that runs f on the rule id given as its only argument.
func ruleIdCmdWithApp(a *ssmctl.App, use string, short string, f ruleFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <rule-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseId(args[0], "rule")
			if err != nil {
				return err
			}
			return f(a, cmd.Context(), id)
		},
	}
	return cmd
}

func ruleInfoCmd() *cobra.Command {
	return ruleInfoCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func ruleInfoCmdWithApp(a *ssmctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the number of total and active rules",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.RulesInfo(cmd.Context())
		},
	}
	return cmd
}
