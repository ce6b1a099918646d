package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output format selectors accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// WriteText renders one line per finding: severity | category | path | message.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "%s | %s | %s | %s\n",
			f.Severity, f.Category, f.SubjectPath, f.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the report as a single JSON object with the findings
// array and the overall exit code.
func (r *Report) WriteJSON(w io.Writer) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// Render writes the report in the requested format ("text" or "json").
func (r *Report) Render(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatText, "":
		return r.WriteText(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
