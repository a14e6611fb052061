package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// printPayloadTable renders a paged marketplace payload. The proxy relays
// payloads untyped, so rows are summarized from whichever well-known keys
// are present; anything else falls back to JSON output.
func printPayloadTable(payload any) error {
	page, ok := payload.(map[string]any)
	if !ok {
		return outputJSON(payload)
	}

	items, ok := page["content"].([]any)
	if !ok {
		return outputJSON(payload)
	}

	if len(items) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if total, ok := page["totalElements"].(float64); ok {
		fmt.Printf("Showing %d of %.0f results\n\n", len(items), total)
	}

	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE/NUMBER\tSTATUS\n")
	for _, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		tw.writef("%s\t%s\t%s\n",
			firstString(row, "id", "barcode", "orderNumber"),
			truncate(firstString(row, "title", "customerFirstName"), 40),
			firstString(row, "status", "approved"),
		)
	}
	return tw.finish()
}

func firstString(row map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := row[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		case bool:
			return fmt.Sprintf("%v", v)
		}
	}
	return "-"
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
