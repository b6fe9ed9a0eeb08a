package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormat reports whether format is supported by Render.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Render writes the report in the requested format.
func Render(w io.Writer, report Report, format string) error {
	switch format {
	case FormatText, "":
		return RenderText(w, report, terminalWidth())
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// RenderText prints the human readable report.
func RenderText(w io.Writer, report Report, width int) error {
	if err := RenderSummary(w, report.Overview); err != nil {
		return err
	}
	if report.Overview.Sessions == 0 {
		return nil
	}
	if err := RenderTrend(w, report.Trend, width); err != nil {
		return err
	}
	return RenderSessionTable(w, report.Sessions)
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}
