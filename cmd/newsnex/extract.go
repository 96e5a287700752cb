// ABOUTME: extract command for the newsnex CLI
// ABOUTME: Runs an extraction on a URL or a local document and prints the profiles

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

var extractCmd = &cobra.Command{
	Use:   "extract [url]",
	Short: "Extract profiles from an article URL or a local document",
	Long: `Extract fetches the article at the URL (or reads --file) and prints the
people it mentions. Use --format to print CSV, JSON, YAML or Markdown
instead of a table.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseOutputFormat(cmd)
		if err != nil {
			return err
		}

		req := domain.ExtractionRequest{Options: extractionOptions(cmd)}
		if len(args) == 1 {
			req.URL = args[0]
		}
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			req.Document = data
			req.Filename = filepath.Base(path)
		}

		a, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		stop := startSpinner(cmd.ErrOrStderr(), " Extracting profiles from "+req.Source().Label())
		result, err := a.Extractions.Extract(cmd.Context(), req)
		stop()
		if err != nil {
			return fmt.Errorf("%s (%s)", coreerrors.UserMessage(err), coreerrors.ReasonOf(err))
		}

		return writeResult(cmd.OutOrStdout(), result, format)
	},
}

func init() {
	extractCmd.Flags().String("file", "", "local HTML, Markdown or text document to extract from")
	addExtractionFlags(extractCmd)
	addFormatFlag(extractCmd)

	rootCmd.AddCommand(extractCmd)
}

func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-confidence", 0, "drop profiles with a lower confidence score (0-100)")
	cmd.Flags().Int("max-profiles", 0, "maximum number of profiles per article (0 means no limit)")
	cmd.Flags().Bool("enrich", false, "look up LinkedIn profile URLs (needs SEARCH_API_KEY and SEARCH_ENGINE_ID)")
}

func extractionOptions(cmd *cobra.Command) domain.ExtractionOptions {
	minConfidence, _ := cmd.Flags().GetInt("min-confidence")
	maxProfiles, _ := cmd.Flags().GetInt("max-profiles")
	enrich, _ := cmd.Flags().GetBool("enrich")
	return domain.ExtractionOptions{
		MinConfidence: minConfidence,
		MaxProfiles:   maxProfiles,
		Enrich:        enrich,
	}
}
