package gotrap

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects how Export renders history.
type Format string

const (
	FormatText  Format = "text"  // console lines
	FormatJSON  Format = "json"  // one JSON object per line
	FormatYAML  Format = "yaml"  // a YAML sequence
	FormatTable Format = "table" // aligned table
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("gotrap: unknown format %q", s)
	}
}

// Export writes the current history to w without draining it.
func (h *Handler) Export(w io.Writer, format Format) error {
	return WriteEvents(w, h.History(), format)
}

// WriteEvents renders events to w in the given format.
func WriteEvents(w io.Writer, events []Event, format Format) error {
	switch format {
	case FormatText:
		for _, e := range events {
			if _, err := fmt.Fprintln(w, e.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("gotrap: failed to marshal event: %w", err)
			}
		}
		return nil
	case FormatYAML:
		if len(events) == 0 {
			return nil
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return fmt.Errorf("gotrap: failed to marshal events: %w", err)
		}
		return enc.Close()
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.Header("At", "Op", "Record", "ID", "Field", "Old", "New", "Accepted")
		for _, e := range events {
			old, nw := "", ""
			switch e.Op {
			case OpGet:
				old = FormatValue(e.Value, e.Found)
				nw = old
			case OpSet:
				old = FormatValue(e.Old, e.Found)
				nw = FormatValue(e.New, true)
			}
			id := ""
			if e.ID != nil {
				id = fmt.Sprint(e.ID)
			}
			if err := table.Append([]string{
				e.At.Format(time.RFC3339),
				string(e.Op),
				e.Record,
				id,
				e.Field,
				old,
				nw,
				strconv.FormatBool(e.Accepted),
			}); err != nil {
				return err
			}
		}
		return table.Render()
	default:
		return fmt.Errorf("gotrap: unknown format %q", format)
	}
}
