// package formatter provides functions to export check reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/ccx/internal/models"
	"github.com/desertthunder/ccx/internal/shared"
)

// VerdictString renders a license verdict as a short export-friendly label
func VerdictString(free bool) string {
	if free {
		return "likely free"
	}
	return "copyrighted"
}

// ReportToCSV converts a CheckReport to CSV format with columns: ID, Name, Artist, Verdict, Confidence, Copyrights
func ReportToCSV(report *models.CheckReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Artist", "Verdict", "Confidence", "Copyrights"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range report.Tracks {
		record := []string{
			track.ID,
			track.Name,
			track.Artist,
			VerdictString(track.Free()),
			strconv.FormatFloat(track.Confidence(), 'f', 2, 64),
			track.CopyrightSummary(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a CheckReport to Markdown format
func ReportToMarkdown(report *models.CheckReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", report.Title))

	buf.WriteString(fmt.Sprintf("**Source**: %s\n", report.Source))
	buf.WriteString(fmt.Sprintf("**Checked**: %s\n", report.CheckedAt.Format("2006-01-02 15:04")))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d (%d likely free)\n\n", len(report.Tracks), report.FreeCount()))

	buf.WriteString("## Tracks\n\n")
	buf.WriteString("| # | Track | Artist | Verdict | Confidence | Copyrights |\n")
	buf.WriteString("|---|-------|--------|---------|------------|------------|\n")
	for i, track := range report.Tracks {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %.2f | %s |\n",
			i+1, track.Name, track.Artist, VerdictString(track.Free()), track.Confidence(), track.CopyrightSummary()))
	}

	return buf.Bytes(), nil
}

// ReportToText converts a CheckReport to plain text format
func ReportToText(report *models.CheckReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Report: %s\n", report.Title))
	buf.WriteString(fmt.Sprintf("Source: %s\n", report.Source))
	buf.WriteString(fmt.Sprintf("Tracks: %d (%d likely free)\n\n", len(report.Tracks), report.FreeCount()))

	for i, track := range report.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s, %.2f]\n",
			i+1, track.Artist, track.Name, VerdictString(track.Free()), track.Confidence()))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of report metadata (without tracks)
func ToMetadataJSON(report *models.CheckReport) ([]byte, error) {
	meta := struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Source    string `json:"source"`
		CheckedAt string `json:"checked_at"`
		Tracks    int    `json:"tracks"`
		FreeCount int    `json:"free_count"`
	}{
		ID:        report.ID,
		Title:     report.Title,
		Source:    report.Source,
		CheckedAt: report.CheckedAt.Format("2006-01-02T15:04:05Z07:00"),
		Tracks:    len(report.Tracks),
		FreeCount: report.FreeCount(),
	}

	return shared.MarshalJSON(meta, true)
}

// WriteReport writes a report to disk in the given format and returns the created file paths.
//
// Formats: csv (tracks file plus metadata JSON), markdown, txt, and json (the default).
// The base filepath defaults to the report ID.
func WriteReport(report *models.CheckReport, format, baseFilepath string) ([]string, error) {
	if baseFilepath == "" {
		baseFilepath = report.ID
	}

	switch format {
	case "csv":
		csvData, err := ReportToCSV(report)
		if err != nil {
			return nil, fmt.Errorf("failed to generate CSV: %w", err)
		}

		tracksFile := baseFilepath + "_tracks.csv"
		if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write CSV file: %w", err)
		}

		metadataJSON, err := ToMetadataJSON(report)
		if err != nil {
			return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
		}

		metadataFile := baseFilepath + "_metadata.json"
		if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
			return nil, fmt.Errorf("failed to write metadata file: %w", err)
		}

		return []string{tracksFile, metadataFile}, nil

	case "markdown":
		mdData, err := ReportToMarkdown(report)
		if err != nil {
			return nil, fmt.Errorf("failed to generate markdown: %w", err)
		}

		mdFile := baseFilepath + ".md"
		if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write markdown file: %w", err)
		}

		return []string{mdFile}, nil

	case "txt":
		txtData, err := ReportToText(report)
		if err != nil {
			return nil, fmt.Errorf("failed to generate text: %w", err)
		}

		txtFile := baseFilepath + ".txt"
		if err := os.WriteFile(txtFile, txtData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write text file: %w", err)
		}

		return []string{txtFile}, nil

	case "json", "":
		data, err := shared.MarshalJSON(report, true)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}

		jsonFile := baseFilepath + ".json"
		if err := os.WriteFile(jsonFile, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write JSON file: %w", err)
		}

		return []string{jsonFile}, nil

	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}
