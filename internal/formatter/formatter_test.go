package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ccx/internal/models"
	th "github.com/desertthunder/ccx/internal/testing"
)

func sampleReport() *models.CheckReport {
	return &models.CheckReport{
		ID:        "report123",
		Title:     "Found 2 tracks",
		Source:    "search",
		CheckedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Tracks: []models.Track{
			{
				ID:      "track1",
				Name:    "Song One",
				Artist:  "Artist One",
				License: &models.License{IsFree: true, Confidence: 0.92},
				Copyrights: []models.Copyright{
					{Type: "C", Text: "2024 NCS"},
				},
			},
			{
				ID:     "track2",
				Name:   "Song Two",
				Artist: "Artist Two",
			},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ReportToCSV", func(t *testing.T) {
		data, err := ReportToCSV(sampleReport())
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Name,Artist,Verdict,Confidence,Copyrights") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "track1") || !strings.Contains(output, "Song One") {
			t.Error("CSV missing track1 fields")
		}
		if !strings.Contains(output, "likely free") {
			t.Error("CSV missing positive verdict label")
		}
		if !strings.Contains(output, "copyrighted") {
			t.Error("CSV missing negative verdict label for unlicensed track")
		}
		if !strings.Contains(output, "0.92") {
			t.Error("CSV missing confidence value")
		}
		if !strings.Contains(output, "No copyright information") {
			t.Error("CSV missing copyright placeholder")
		}
	})

	t.Run("ReportToMarkdown", func(t *testing.T) {
		data, err := ReportToMarkdown(sampleReport())
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Found 2 tracks") {
			t.Error("markdown missing title heading")
		}
		if !strings.Contains(output, "**Source**: search") {
			t.Error("markdown missing source line")
		}
		if !strings.Contains(output, "2 (1 likely free)") {
			t.Error("markdown missing track counts")
		}
		if !strings.Contains(output, "| 1 | Song One |") {
			t.Error("markdown missing track table row")
		}
	})

	t.Run("ReportToText", func(t *testing.T) {
		data, err := ReportToText(sampleReport())
		if err != nil {
			t.Fatalf("ReportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Report: Found 2 tracks") {
			t.Error("text missing report line")
		}
		if !strings.Contains(output, "1. Artist One - Song One [likely free, 0.92]") {
			t.Errorf("text missing track line, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(sampleReport())
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var meta map[string]any
		if err := json.Unmarshal(data, &meta); err != nil {
			t.Fatalf("metadata is not valid JSON: %v", err)
		}

		if meta["id"] != "report123" || meta["source"] != "search" {
			t.Errorf("unexpected metadata: %+v", meta)
		}
		if meta["tracks"].(float64) != 2 || meta["free_count"].(float64) != 1 {
			t.Errorf("unexpected counts: %+v", meta)
		}
	})
}

func TestWriteReport(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "report")

		files, err := WriteReport(sampleReport(), "csv", base)
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}

		if len(files) != 2 {
			t.Fatalf("expected tracks and metadata files, got %v", files)
		}
		th.AssertFileExists(t, base+"_tracks.csv")
		th.AssertFileExists(t, base+"_metadata.json")
	})

	t.Run("Markdown", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "report")

		files, err := WriteReport(sampleReport(), "markdown", base)
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}

		if len(files) != 1 {
			t.Fatalf("expected one file, got %v", files)
		}
		content := th.MustReadFile(t, files[0])
		if !strings.Contains(content, "## Tracks") {
			t.Error("markdown file missing tracks section")
		}
	})

	t.Run("Text", func(t *testing.T) {
		dir := t.TempDir()

		files, err := WriteReport(sampleReport(), "txt", filepath.Join(dir, "report"))
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}
		th.AssertFileExists(t, files[0])
	})

	t.Run("JSON Default", func(t *testing.T) {
		dir := t.TempDir()

		files, err := WriteReport(sampleReport(), "", filepath.Join(dir, "report"))
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}

		var report models.CheckReport
		data, err := os.ReadFile(files[0])
		if err != nil {
			t.Fatalf("failed to read JSON file: %v", err)
		}
		if err := json.Unmarshal(data, &report); err != nil {
			t.Fatalf("JSON file is not a valid report: %v", err)
		}
		if len(report.Tracks) != 2 {
			t.Errorf("expected 2 tracks in JSON report, got %d", len(report.Tracks))
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		if _, err := WriteReport(sampleReport(), "xml", ""); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
