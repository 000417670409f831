package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// errorHeadStyle for the "Error:" header line
	errorHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// keyStyle for the error key in the header
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Underline(true)

	// linkStyle for clickable file references
	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Underline(true)

	// summaryStyle for the one-line echo
	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Display writes a rendered report to w with terminal styling: the
// header in error colors, link regions underlined, and the summary
// echoed last. Links are applied line by line, so styling never
// shifts the offsets recorded in the render.
func Display(w io.Writer, r Rendered) {
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, styleLine(line, r))
	}
	fmt.Fprintln(w)
	// A terminal has no click regions, so file links are echoed as
	// plain references below the body.
	for _, link := range r.Links {
		if link.Kind == LinkFile {
			fmt.Fprintln(w, "  "+linkStyle.Render(link.Ref()))
		}
	}
	if r.Summary != "" {
		fmt.Fprintln(w, summaryStyle.Render(r.Summary))
	}
}

// styleLine re-renders one line of the report. The header line is
// special-cased; other lines get their file references highlighted.
func styleLine(line string, r Rendered) string {
	if key, ok := strings.CutPrefix(line, "Error: "); ok {
		return errorHeadStyle.Render("Error: ") + keyStyle.Render(key)
	}
	out := line
	for _, link := range r.Links {
		if link.Kind != LinkFile {
			continue
		}
		if strings.Contains(line, link.Target) {
			out = strings.Replace(out, link.Target, linkStyle.Render(link.Target), 1)
			break
		}
	}
	return out
}
