// ABOUTME: Export renders an extraction's profiles as a downloadable file
// ABOUTME: Supports CSV, JSON, YAML and Markdown with matching content types

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

// Format is an export file format
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// DefaultFormat is used when no format is requested
const DefaultFormat = FormatCSV

// CSVHeader is the first row of every CSV export
var CSVHeader = []string{"id", "name", "role", "company", "quote", "confidence", "linkedInUrl"}

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatYAML, FormatMarkdown}
}

// ParseFormat resolves a format name, accepting common aliases
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultFormat, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", &coreerrors.ValidationError{
		Field:   "format",
		Message: fmt.Sprintf("Unsupported export format %q. Use csv, json, yaml or markdown", name),
	}
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	default:
		return string(f)
	}
}

// Filename returns the download filename
func (f Format) Filename() string {
	return "profiles." + f.Extension()
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "application/octet-stream"
}

// Document is the JSON and YAML export shape
type Document struct {
	ExtractionID string           `json:"extractionId" yaml:"extractionId"`
	Title        string           `json:"title,omitempty" yaml:"title,omitempty"`
	Source       string           `json:"source" yaml:"source"`
	CreatedAt    time.Time        `json:"createdAt" yaml:"createdAt"`
	ProfileCount int              `json:"profileCount" yaml:"profileCount"`
	Profiles     []domain.Profile `json:"profiles" yaml:"profiles"`
}

func newDocument(result *domain.ExtractionResult) Document {
	profiles := result.Profiles
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return Document{
		ExtractionID: result.ID,
		Title:        result.Title,
		Source:       result.Source.Label(),
		CreatedAt:    result.CreatedAt,
		ProfileCount: len(profiles),
		Profiles:     profiles,
	}
}

// Write renders result in format f to w
func Write(w io.Writer, result *domain.ExtractionResult, f Format) error {
	if result == nil {
		return fmt.Errorf("nothing to export")
	}

	switch f {
	case FormatCSV:
		return writeCSV(w, result.Profiles)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(result)); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(result)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		return writeMarkdown(w, result)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// Render is Write into memory
func Render(result *domain.ExtractionResult, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, result, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSV(w io.Writer, profiles []domain.Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range profiles {
		record := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Role,
			p.Company,
			p.Quote,
			strconv.Itoa(p.Confidence),
			p.LinkedInURL,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMarkdown(w io.Writer, result *domain.ExtractionResult) error {
	var b strings.Builder

	title := result.Title
	if title == "" {
		title = result.Source.Label()
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	if result.Source.URL != "" {
		fmt.Fprintf(&b, "Source: <%s>\n\n", result.Source.URL)
	}

	if len(result.Profiles) == 0 {
		b.WriteString("No profiles found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString("| # | Name | Role | Company | Confidence | LinkedIn |\n")
	b.WriteString("|---|------|------|---------|------------|----------|\n")
	for _, p := range result.Profiles {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			p.ID, cell(p.Name), cell(p.Role), cell(p.Company), p.ConfidenceLabel(), cell(p.LinkedInURL))
	}

	quoted := false
	for _, p := range result.Profiles {
		if p.Quote == "" {
			continue
		}
		if !quoted {
			b.WriteString("\n## Quotes\n")
			quoted = true
		}
		fmt.Fprintf(&b, "\n> %s\n>\n> - %s\n", strings.ReplaceAll(p.Quote, "\n", " "), p.Name)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// cell escapes a value for a Markdown table
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
