// Package render writes a session.View as a plain table, JSON or NDJSON.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/rosterview/internal/roster"
	"github.com/rshade/rosterview/internal/session"
	"github.com/rshade/rosterview/internal/state"
)

// Format is an output format name.
type Format string

// Supported output formats.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

// ErrUnsupportedFormat is returned by ParseFormat for unknown names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Column widths for the table.
const (
	colWidthName     = 28
	colWidthLocation = 34
	colWidthTitle    = 28
	tabwriterPadding = 2
)

// MsgNoRecords is printed when the current page holds nothing.
const MsgNoRecords = "No records"

// ParseFormat converts a flag value to a Format. Empty selects FormatTable.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use table, json or ndjson)", ErrUnsupportedFormat, raw)
	}
}

// Write renders v in the given format.
func Write(w io.Writer, f Format, v session.View) error {
	switch f {
	case FormatJSON:
		return JSON(w, v)
	case FormatNDJSON:
		return NDJSON(w, v)
	case FormatTable, "":
		return Table(w, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Table writes the visible records as an aligned table followed by a footer.
// A failed view prints its error message instead.
func Table(w io.Writer, v session.View) error {
	if v.Status == state.StatusFailed {
		_, err := fmt.Fprintf(w, "Error: %s\n", v.ErrorMessage)
		return err
	}

	if len(v.Records) == 0 {
		if _, err := fmt.Fprintln(w, MsgNoRecords); err != nil {
			return fmt.Errorf("writing empty notice: %w", err)
		}
		return writeFooter(w, v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "ID\tFULL NAME\tGENDER\tAGE\tLOCATION\tDESIGNATION\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--\t---------\t------\t---\t--------\t-----------\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, r := range v.Records {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID,
			Truncate(r.FullName(), colWidthName),
			r.Gender,
			r.Age,
			Truncate(r.Location(), colWidthLocation),
			Truncate(r.Company.Title, colWidthTitle),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return writeFooter(w, v)
}

func writeFooter(w io.Writer, v session.View) error {
	if _, err := fmt.Fprintln(w, Footer(v)); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

// Footer summarises the page position, match count and active filters,
// e.g. "Page 1/3 · 25 records · country=India".
func Footer(v session.View) string {
	p := message.NewPrinter(language.English)

	parts := []string{
		fmt.Sprintf("Page %d/%d", v.CurrentPage(), v.TotalPages()),
		p.Sprintf("%d records", v.Pagination.TotalItems),
	}
	if v.Filter.Country != "" {
		parts = append(parts, "country="+v.Filter.Country)
	}
	if v.Filter.Gender != "" {
		parts = append(parts, "gender="+v.Filter.Gender)
	}
	return strings.Join(parts, " · ")
}

// Truncate shortens s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 { //nolint:mnd // Length of the ellipsis.
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Document is the JSON output shape.
type Document struct {
	Metadata Metadata     `json:"metadata"`
	View     session.View `json:"view"`
}

// Metadata describes when the document was produced.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
}

// JSON writes v as one indented JSON document.
func JSON(w io.Writer, v session.View) error {
	if v.Records == nil {
		v.Records = []roster.Record{}
	}

	doc := Document{
		Metadata: Metadata{GeneratedAt: time.Now().UTC()},
		View:     v,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// NDJSON writes one visible record per line. A failed view writes a single
// error object so consumers can tell failure from an empty page.
func NDJSON(w io.Writer, v session.View) error {
	if v.Status == state.StatusFailed {
		data, err := json.Marshal(map[string]string{"error": v.ErrorMessage})
		if err != nil {
			return fmt.Errorf("marshaling error line: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	for _, r := range v.Records {
		data, marshalErr := json.Marshal(r)
		if marshalErr != nil {
			return fmt.Errorf("marshaling record %d: %w", r.ID, marshalErr)
		}
		if _, writeErr := fmt.Fprintf(w, "%s\n", data); writeErr != nil {
			return fmt.Errorf("writing NDJSON line: %w", writeErr)
		}
	}
	return nil
}
