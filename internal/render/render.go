// Package render writes a schedule in the formats skyschedule supports.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/skyschedule/internal/skyq"
)

// Format selects an output style.
type Format string

const (
	FormatLines  Format = "lines"
	FormatJSON   Format = "json"
	FormatTable  Format = "table"
	FormatSpeech Format = "speech"
)

// Formats lists the accepted formats in help order.
func Formats() []Format {
	return []Format{FormatLines, FormatJSON, FormatTable, FormatSpeech}
}

// ParseFormat matches s case-insensitively against Formats.
func ParseFormat(s string) (Format, error) {
	want := Format(strings.ToLower(strings.TrimSpace(s)))
	if want == "" {
		return FormatLines, nil
	}
	for _, f := range Formats() {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want lines, json, table or speech)", s)
}

// Write renders entries to w.
func Write(w io.Writer, format Format, entries []skyq.Entry) error {
	switch format {
	case FormatLines, "":
		return writeLines(w, entries)
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatTable:
		return writeTable(w, entries)
	case FormatSpeech:
		_, err := fmt.Fprintln(w, Speech(entries))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Line renders one entry as "HH:MM  Title  S<n> E<n>".
func Line(e skyq.Entry) string {
	var b strings.Builder
	start := e.StartTime
	if start == "" {
		start = "--:--"
	}
	b.WriteString(start)
	b.WriteString("  ")
	b.WriteString(titleOr(e.Title, "(untitled)"))
	if ep := episodeLabel(e); ep != "" {
		b.WriteString("  ")
		b.WriteString(ep)
	}
	return b.String()
}

func writeLines(w io.Writer, entries []skyq.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No recordings scheduled today.")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, Line(e)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, entries []skyq.Entry) error {
	if entries == nil {
		entries = []skyq.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

func writeTable(w io.Writer, entries []skyq.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.StartTime, e.Title, e.Season, e.Episode})
	}
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("TIME", "TITLE", "SEASON", "EPISODE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func episodeLabel(e skyq.Entry) string {
	var parts []string
	if e.Season != "" {
		parts = append(parts, "S"+e.Season)
	}
	if e.Episode != "" {
		parts = append(parts, "E"+e.Episode)
	}
	return strings.Join(parts, " ")
}

func titleOr(title, fallback string) string {
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}
