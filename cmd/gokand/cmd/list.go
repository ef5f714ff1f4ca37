package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evdnx/gokand/indicator"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the indicator catalogue",
	Long: `Print every indicator with its input columns, output columns and the
warm-up length (lookback) at its default parameters.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINPUTS\tOUTPUTS\tLOOKBACK\tDESCRIPTION")
	for _, def := range indicator.Catalogue() {
		lookback, err := def.Lookback(indicator.Params{})
		if err != nil {
			return fmt.Errorf("%s: %w", def.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			def.Name,
			strings.Join(def.Inputs, ","),
			strings.Join(def.Outputs, ","),
			lookback,
			def.Description)
	}
	return tw.Flush()
}
