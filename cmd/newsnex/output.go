// ABOUTME: Output helpers for the newsnex CLI
// ABOUTME: Handles the format flag, result tables and the progress spinner

package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"newsnex-api/core/domain"
	"newsnex-api/core/export"
	htmlutil "newsnex-api/pkg/utils/html"
)

// formatTable prints a human readable table instead of an export format
const formatTable = "table"

const quoteWidth = 60

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", formatTable, "output format: table, csv, json, yaml or markdown")
}

// parseOutputFormat returns "" for the table format
func parseOutputFormat(cmd *cobra.Command) (export.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == formatTable {
		return "", nil
	}
	return export.ParseFormat(name)
}

func writeResult(w io.Writer, result *domain.ExtractionResult, format export.Format) error {
	if format != "" {
		return export.Write(w, result, format)
	}

	title := result.Title
	if title == "" {
		title = result.Source.Label()
	}
	fmt.Fprintf(w, "%s\n", title)
	if len(result.Profiles) == 0 {
		fmt.Fprintln(w, "No profiles found in the article. Try another URL.")
		return nil
	}
	fmt.Fprintf(w, "Found %d profiles!\n\n", len(result.Profiles))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tROLE\tCOMPANY\tCONFIDENCE\tQUOTE")
	for _, p := range result.Profiles {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, dash(p.Name), dash(p.Role), dash(p.Company), p.ConfidenceLabel(), dash(htmlutil.Truncate(p.Quote, quoteWidth)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nExtraction ID: %s\n", result.ID)
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// startSpinner shows progress on w when it is a terminal and returns the
// function that stops it
func startSpinner(w io.Writer, suffix string) func() {
	f, ok := w.(*os.File)
	if !ok || !isTerminal(f) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
