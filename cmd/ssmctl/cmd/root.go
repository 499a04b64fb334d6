package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/smartdata/ssm-dashboard/internal/common"
	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
	"github.com/smartdata/ssm-dashboard/pkg/client"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssmctl",
		Short: "ssmctl inspects and controls an SSM (Smart Storage Management) cluster.",
		Long: `ssmctl inspects and controls an SSM (Smart Storage Management) cluster.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
ssmUrl: http://localhost:8081
username: admin
password: ssm@123
filterStore:
  type: file
tables:
  actions:
    sortBy: submissionTime
    perPage: 25

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.ssmctl.yaml is used.`,
	}

	client.AddSsmApiConnectionCommandlineArgs(cmd)
	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.ssmctl.yaml)")
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))

	cmd.AddCommand(
		getCmd(),
		ruleCmd(),
		actionCmd(),
		filterCmd(),
		summaryCmd(),
		versionCmd(),
	)

	return cmd
}

// Execute runs the root command until it completes or the process is interrupted.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// initParams loads the connection details and config and points the app at the SSM server.
func initParams(cmd *cobra.Command, a *ssmctl.App) error {
	if err := client.LoadCommandlineArgsFromConfigFile(viper.GetString("config")); err != nil {
		return errors.Wrap(err, "error loading command line arguments")
	}
	details, err := client.ExtractCommandlineSsmApiConnectionDetails()
	if err != nil {
		return err
	}
	a.Params.ApiConnectionDetails = details

	if err := common.UnmarshalConfig(&a.Params.Config); err != nil {
		return err
	}

	c, err := client.NewClient(details)
	if err != nil {
		return err
	}
	a.Params.WireClient(c)

	store, err := a.Params.Config.FilterStore.NewStore(details.Username)
	if err != nil {
		return err
	}
	a.Params.FilterStore = store

	a.ApplyTableConfig()
	return nil
}
