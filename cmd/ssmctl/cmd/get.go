package cmd

import (
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/dashboard/daterange"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

const dateRangeUsage = " Either a relative range such as now-24h or now-7d, or from..to in RFC3339 or epoch seconds."

func getCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "List nodes, rules, actions, audit events or files",
	}
	cmd.AddCommand(
		getNodesCmd(),
		getRulesCmd(),
		getActionsCmd(),
		getAuditCmd(),
		getCachedCmd(),
		getHottestCmd(),
	)
	return cmd
}

func getNodesCmd() *cobra.Command {
	return getNodesCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getNodesCmdWithApp(a *ssmctl.App) *cobra.Command {
	registrationTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the nodes of the cluster",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.ClusterNodeFilter{
				Hosts:            stringSliceFlag(cmd, "hosts", &result),
				ExecutorTypes:    enumFlag(cmd, "executor-types", model.ExecutorTypes, &result),
				RegistrationTime: registrationTime.Value(),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetNodes(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().StringSlice("hosts", []string{}, "Comma separated list of hosts to show.")
	cmd.Flags().StringSlice("executor-types", []string{}, "Comma separated list of executor types: LOCAL, REMOTE or AGENT.")
	cmd.Flags().Var(registrationTime, "registration-time", "Only show nodes registered in this range."+dateRangeUsage)
	return cmd
}

func getRulesCmd() *cobra.Command {
	return getRulesCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getRulesCmdWithApp(a *ssmctl.App) *cobra.Command {
	submissionTime := &daterange.Flag{}
	lastActivationTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rules",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.RuleFilter{
				TextRepresentationLike: stringFlag(cmd, "text", &result),
				SubmissionTime:         submissionTime.Value(),
				LastActivationTime:     lastActivationTime.Value(),
				RuleStates:             enumFlag(cmd, "states", model.RuleStates, &result),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetRules(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().String("text", "", "Only show rules whose text contains this string.")
	cmd.Flags().StringSlice("states", []string{}, "Comma separated list of rule states: NEW, ACTIVE, DISABLED, FINISHED or DELETED.")
	cmd.Flags().Var(submissionTime, "submission-time", "Only show rules submitted in this range."+dateRangeUsage)
	cmd.Flags().Var(lastActivationTime, "last-activation-time", "Only show rules last activated in this range."+dateRangeUsage)
	return cmd
}

func getActionsCmd() *cobra.Command {
	return getActionsCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getActionsCmdWithApp(a *ssmctl.App) *cobra.Command {
	submissionTime := &daterange.Flag{}
	completionTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List actions",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.ActionFilter{
				TextRepresentationLike: stringFlag(cmd, "text", &result),
				SubmissionTime:         submissionTime.Value(),
				CompletionTime:         completionTime.Value(),
				Hosts:                  stringSliceFlag(cmd, "hosts", &result),
				States:                 enumFlag(cmd, "states", model.ActionStates, &result),
				Sources:                enumFlag(cmd, "sources", model.ActionSources, &result),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetActions(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().String("text", "", "Only show actions whose text contains this string.")
	cmd.Flags().StringSlice("hosts", []string{}, "Comma separated list of execution hosts.")
	cmd.Flags().StringSlice("states", []string{}, "Comma separated list of action states: RUNNING, SUCCESSFUL or FAILED.")
	cmd.Flags().StringSlice("sources", []string{}, "Comma separated list of action sources: RULE or USER.")
	cmd.Flags().Var(submissionTime, "submission-time", "Only show actions submitted in this range."+dateRangeUsage)
	cmd.Flags().Var(completionTime, "completion-time", "Only show actions completed in this range."+dateRangeUsage)
	return cmd
}

func getAuditCmd() *cobra.Command {
	return getAuditCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getAuditCmdWithApp(a *ssmctl.App) *cobra.Command {
	eventTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List audit events",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.AuditEventFilter{
				UsernameLike: stringFlag(cmd, "user", &result),
				EventTime:    eventTime.Value(),
				ObjectTypes:  enumFlag(cmd, "object-types", model.AuditObjectTypes, &result),
				Operations:   enumFlag(cmd, "operations", model.AuditOperations, &result),
				Results:      enumFlag(cmd, "results", model.AuditResults, &result),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetAuditEvents(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().String("user", "", "Only show events of users whose name contains this string.")
	cmd.Flags().StringSlice("object-types", []string{}, "Comma separated list of object types: RULE or CMDLET.")
	cmd.Flags().StringSlice("operations", []string{}, "Comma separated list of operations: CREATE, DELETE, START or STOP.")
	cmd.Flags().StringSlice("results", []string{}, "Comma separated list of results: SUCCESS or FAILURE.")
	cmd.Flags().Var(eventTime, "event-time", "Only show events in this range."+dateRangeUsage)
	return cmd
}

func getCachedCmd() *cobra.Command {
	return getCachedCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getCachedCmdWithApp(a *ssmctl.App) *cobra.Command {
	lastAccessedTime := &daterange.Flag{}
	cachedTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "cached",
		Short: "List cached files",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.CachedFileFilter{
				PathLike:         stringFlag(cmd, "path", &result),
				LastAccessedTime: lastAccessedTime.Value(),
				CachedTime:       cachedTime.Value(),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetCachedFiles(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().String("path", "", "Only show files whose path contains this string.")
	cmd.Flags().Var(lastAccessedTime, "last-accessed-time", "Only show files last accessed in this range."+dateRangeUsage)
	cmd.Flags().Var(cachedTime, "cached-time", "Only show files cached in this range."+dateRangeUsage)
	return cmd
}

func getHottestCmd() *cobra.Command {
	return getHottestCmdWithApp(ssmctl.New())
}

// Takes a caller-supplied app struct; useful for testing.
func getHottestCmdWithApp(a *ssmctl.App) *cobra.Command {
	lastAccessedTime := &daterange.Flag{}
	cmd := &cobra.Command{
		Use:   "hottest",
		Short: "List the most accessed files",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			filter := model.HotFileFilter{
				PathLike:         stringFlag(cmd, "path", &result),
				LastAccessedTime: lastAccessedTime.Value(),
			}
			opts, err := listOptions(cmd)
			result = multierror.Append(result, err)
			if err := result.ErrorOrNil(); err != nil {
				return err
			}
			return a.GetHotFiles(cmd.Context(), filter, opts)
		},
	}
	addListFlags(cmd)
	cmd.Flags().String("path", "", "Only show files whose path contains this string.")
	cmd.Flags().Var(lastAccessedTime, "last-accessed-time", "Only show files last accessed in this range."+dateRangeUsage)
	return cmd
}
