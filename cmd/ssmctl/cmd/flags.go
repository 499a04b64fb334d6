package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/smartdata/ssm-dashboard/internal/common"
	"github.com/smartdata/ssm-dashboard/internal/common/slices"
	"github.com/smartdata/ssm-dashboard/internal/dashboard/model"
	"github.com/smartdata/ssm-dashboard/internal/ssmctl"
)

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("sort-by", "", "Field to sort by, defaults to the table's configured sort field.")
	cmd.Flags().String("sort-direction", "", "Sort direction, asc or desc.")
	cmd.Flags().Int("page", 0, "Page to show, starting at 0.")
	cmd.Flags().Int("per-page", 0, "Number of rows per page, defaults to the table's configured page size.")
	cmd.Flags().StringP("output", "o", string(ssmctl.OutputTable), "Output format, table or yaml.")
	cmd.Flags().BoolP("watch", "w", false, "Keep refreshing the output until interrupted.")
	cmd.Flags().Int("frequency", 0, "Seconds between refreshes in watch mode, defaults to the table's configured frequency or 5.")
	cmd.Flags().Int("metrics-port", 0, "Port serving /metrics and /health in watch mode, disabled if 0.")
	cmd.Flags().Bool("restore", false, "Use the filter last saved for this table instead of the filter flags.")
	cmd.Flags().Bool("save", false, "Save the filter so that it can be restored later.")
}

// listOptions reads the flags added by addListFlags. All invalid flags are reported together.
func listOptions(cmd *cobra.Command) (ssmctl.ListOptions, error) {
	var result *multierror.Error
	opts := ssmctl.ListOptions{}

	sortBy, err := cmd.Flags().GetString("sort-by")
	if err != nil {
		return opts, fmt.Errorf("error reading sort-by: %s", err)
	}
	sortDirection, err := cmd.Flags().GetString("sort-direction")
	if err != nil {
		return opts, fmt.Errorf("error reading sort-direction: %s", err)
	}
	if sortBy != "" || sortDirection != "" {
		direction := model.SortDirection(strings.ToLower(sortDirection))
		if direction != "" && direction != model.DirectionAsc && direction != model.DirectionDesc {
			result = multierror.Append(result, fmt.Errorf("invalid sort-direction %q, expected asc or desc", sortDirection))
		}
		opts.Sort = &model.SortParams{SortBy: sortBy, SortDirection: direction}
	}

	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return opts, fmt.Errorf("error reading page: %s", err)
	}
	perPage, err := cmd.Flags().GetInt("per-page")
	if err != nil {
		return opts, fmt.Errorf("error reading per-page: %s", err)
	}
	if page < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid page %d, must not be negative", page))
	}
	if perPage < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid per-page %d, must not be negative", perPage))
	}
	if cmd.Flags().Changed("page") || cmd.Flags().Changed("per-page") {
		opts.Pagination = &model.PaginationParams{PageNumber: page, PerPage: perPage}
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return opts, fmt.Errorf("error reading output: %s", err)
	}
	opts.Output, err = ssmctl.ParseOutputFormat(output)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if opts.Watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return opts, fmt.Errorf("error reading watch: %s", err)
	}
	if opts.Frequency, err = cmd.Flags().GetInt("frequency"); err != nil {
		return opts, fmt.Errorf("error reading frequency: %s", err)
	}
	if opts.Frequency < 0 {
		result = multierror.Append(result, fmt.Errorf("invalid frequency %d, must not be negative", opts.Frequency))
	}
	if opts.MetricsPort, err = cmd.Flags().GetInt("metrics-port"); err != nil {
		return opts, fmt.Errorf("error reading metrics-port: %s", err)
	}
	if opts.MetricsPort < 0 || opts.MetricsPort > 65535 {
		result = multierror.Append(result, fmt.Errorf("invalid metrics-port %d", opts.MetricsPort))
	}
	if opts.MetricsPort > 0 && !opts.Watch {
		result = multierror.Append(result, fmt.Errorf("metrics-port can only be used with watch"))
	}
	if opts.Watch {
		// Watch mode is long-running, so log with timestamps.
		common.ConfigureLogging()
	}
	if opts.Restore, err = cmd.Flags().GetBool("restore"); err != nil {
		return opts, fmt.Errorf("error reading restore: %s", err)
	}
	if opts.Save, err = cmd.Flags().GetBool("save"); err != nil {
		return opts, fmt.Errorf("error reading save: %s", err)
	}
	if opts.Restore && opts.Save {
		result = multierror.Append(result, fmt.Errorf("restore and save cannot be used together"))
	}

	return opts, result.ErrorOrNil()
}

// enumFlag reads a string slice flag and converts it into enum values, appending any error to result.
func enumFlag[T ~string](cmd *cobra.Command, name string, allowed []T, result **multierror.Error) []T {
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		*result = multierror.Append(*result, fmt.Errorf("error reading %s: %s", name, err))
		return nil
	}
	upper := slices.Map(values, strings.ToUpper)
	parsed, err := slices.ParseEnums(upper, allowed)
	if err != nil {
		*result = multierror.Append(*result, fmt.Errorf("invalid %s: %s", name, err))
	}
	return parsed
}

func stringFlag(cmd *cobra.Command, name string, result **multierror.Error) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		*result = multierror.Append(*result, fmt.Errorf("error reading %s: %s", name, err))
	}
	return value
}

func stringSliceFlag(cmd *cobra.Command, name string, result **multierror.Error) []string {
	values, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		*result = multierror.Append(*result, fmt.Errorf("error reading %s: %s", name, err))
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return slices.Unique(values)
}

func parseId(arg string, kind string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}
