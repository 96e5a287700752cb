// ABOUTME: recent and export commands for the newsnex CLI
// ABOUTME: Lists stored extractions and writes one of them in an export format

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"newsnex-api/core/extraction"
	timeutil "newsnex-api/pkg/utils/time"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent extractions from the extraction store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		summaries, err := a.Extractions.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No extractions yet.")
			return nil
		}

		now := time.Now()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPROFILES\tWHEN\tTITLE")
		for _, s := range summaries {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.ID, s.ProfileCount, timeutil.Ago(s.CreatedAt, now), s.Title)
		}
		return tw.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <extraction-id>",
	Short: "Export a stored extraction as CSV, JSON, YAML or Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat(cmd)
		if err != nil {
			return err
		}

		a, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Extractions.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), result, format)
	},
}

func init() {
	recentCmd.Flags().Int("limit", extraction.DefaultRecentLimit, "number of extractions to list")
	addFormatFlag(exportCmd)

	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(exportCmd)
}
