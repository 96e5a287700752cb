// ABOUTME: feed command for the newsnex CLI
// ABOUTME: Extracts profiles from every article of an RSS or Atom feed

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
	"newsnex-api/core/feed"
)

var feedCmd = &cobra.Command{
	Use:   "feed <url>",
	Short: "Extract profiles from the newest articles of an RSS or Atom feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Pool.Start(); err != nil {
			return err
		}

		stop := startSpinner(cmd.ErrOrStderr(), " Extracting profiles from feed articles")
		result, err := a.Batch.BatchExtract(cmd.Context(), args[0], limit, extractionOptions(cmd))
		stop()
		if err != nil {
			return fmt.Errorf("%s (%s)", coreerrors.UserMessage(err), coreerrors.ReasonOf(err))
		}

		return writeBatch(cmd, result)
	},
}

func init() {
	feedCmd.Flags().Int("limit", feed.DefaultLinkLimit, "number of feed articles to process")
	addExtractionFlags(feedCmd)

	rootCmd.AddCommand(feedCmd)
}

func writeBatch(cmd *cobra.Command, result *domain.BatchResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tPROFILES\tEXTRACTION\tARTICLE")
	for _, item := range result.Items {
		switch item.Status {
		case domain.BatchSucceeded:
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", item.Status, item.Summary.ProfileCount, item.Summary.ID, articleLabel(item))
		default:
			fmt.Fprintf(tw, "%s\t-\t%s\t%s\n", item.Status, item.Reason, articleLabel(item))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d succeeded, %d failed\n", result.Succeeded, result.Failed)
	return nil
}

func articleLabel(item domain.BatchItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.URL
}
