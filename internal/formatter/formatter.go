// package formatter renders catalog entries and playlist lengths in the export formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/gamelog/internal/catalog"
	"github.com/desertthunder/gamelog/internal/models"
	"github.com/desertthunder/gamelog/internal/shared"
)

// Format is an export format name as accepted on the command line.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in help-text order.
var Formats = []Format{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ParseFormat accepts a format name or a common alias ("md", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// Extension is the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ExportToCSV writes one row per series and one per game with columns: Type, ID, Name, Status, Series
func ExportToCSV(entries []catalog.Entry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Type", "ID", "Name", "Status", "Series"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{string(e.Kind), strconv.Itoa(e.ID), e.Name, string(e.Status), ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
		for _, g := range e.Games {
			record := []string{string(catalog.KindGame), strconv.Itoa(g.ID), g.Name, string(statusOf(g)), e.Name}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders entries as a nested list with a status tally
func ExportToMarkdown(entries []catalog.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Games\n\n")
	writeTally(&buf, entries, "**%s**: %d\n")
	buf.WriteString("\n## Catalog\n\n")

	for _, e := range entries {
		fmt.Fprintf(&buf, "- %s %s _(%s)_\n", e.Status.Glyph(), e.Name, e.Status.Label())
		for _, g := range e.Games {
			s := statusOf(g)
			fmt.Fprintf(&buf, "  - %s %s _(%s)_\n", s.Glyph(), g.Name, s.Label())
		}
	}

	return buf.Bytes(), nil
}

// ExportToText renders entries as plain text, series games indented below their series
func ExportToText(entries []catalog.Entry) ([]byte, error) {
	var buf bytes.Buffer

	for i, e := range entries {
		fmt.Fprintf(&buf, "%d. [%s] %s\n", i+1, e.Status.Label(), e.Name)
		for _, g := range e.Games {
			fmt.Fprintf(&buf, "     [%s] %s\n", statusOf(g).Label(), g.Name)
		}
	}
	buf.WriteString("\n")
	writeTally(&buf, entries, "%s: %d\n")

	return buf.Bytes(), nil
}

// ExportToJSON renders entries as indented JSON
func ExportToJSON(entries []catalog.Entry) ([]byte, error) {
	if entries == nil {
		entries = []catalog.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entries: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportEntries dispatches to the exporter for format.
func ExportEntries(entries []catalog.Entry, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatMarkdown:
		return ExportToMarkdown(entries)
	case FormatJSON:
		return ExportToJSON(entries)
	case FormatText:
		return ExportToText(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport writes entries to path, creating parent directories.
//
// An empty path defaults to games{ext} in the working directory.
func WriteExport(entries []catalog.Entry, format Format, path string) (string, error) {
	if path == "" {
		path = "games" + format.Extension()
	}

	data, err := ExportEntries(entries, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

// PlaylistSummary describes a playlist's length and how long it takes at each playback speed
func PlaylistSummary(title string, info models.PlaylistInfo) string {
	var b strings.Builder

	if title != "" {
		fmt.Fprintf(&b, "%s\n", title)
	}
	fmt.Fprintf(&b, "Videos:   %d\n", info.VideoCount)
	fmt.Fprintf(&b, "Total:    %s\n", shared.FormatDuration(info.TotalDurationSeconds))
	fmt.Fprintf(&b, "Average:  %s\n", shared.FormatDuration(info.AverageSeconds()))
	for _, speed := range models.PlaybackSpeeds {
		label := strconv.FormatFloat(speed, 'f', -1, 64) + "x:"
		fmt.Fprintf(&b, "At %-7s%s\n", label, shared.FormatDuration(info.AtSpeed(speed)))
	}

	return b.String()
}

func writeTally(buf *bytes.Buffer, entries []catalog.Entry, format string) {
	counts := catalog.Counts(entries)
	for _, s := range models.Statuses {
		if n := counts[s]; n > 0 {
			fmt.Fprintf(buf, format, s.Label(), n)
		}
	}
}

func statusOf(g models.Game) models.Status {
	if g.Status == "" {
		return models.StatusNone
	}
	return g.Status
}
