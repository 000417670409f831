// Package trace renders remote error reports for display. It filters
// stack lines that come from the adapter's own REPL-side support code
// and turns embedded file references into link regions the front-end
// can make clickable.
package trace

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// internalPackage is the name of the adapter's REPL-side package.
// Stack lines pointing under <supportDir>/<internalPackage>/ are
// bootstrap noise, not user code.
const internalPackage = "geiser"

var (
	// fileRefPatterns locate file references in rendered text.
	// Ordered: the first pattern matching a line wins.
	fileRefPatterns = []*regexp.Regexp{
		// /path/to/file.rkt:12:3 and /path/to/file.rkt:12
		regexp.MustCompile(`([^\s:"']+\.(?:rkt|rktd|ss|scm)):(\d+)(?::(\d+))?`),
		// path: "/path/to/file.rkt"
		regexp.MustCompile(`path:\s*"?([^\s"']+)"?`),
		// module: some/module
		regexp.MustCompile(`module: ([^\s"']+)`),
	}

	// lastLinePattern grabs the final line of a message.
	lastLinePattern = regexp.MustCompile(`(?m)^.+$`)
)

// LinkKind discriminates what a link region points at.
type LinkKind int

const (
	// LinkHelp resolves through the adapter's documentation path.
	LinkHelp LinkKind = iota
	// LinkFile opens a file, optionally at a line and column.
	LinkFile
)

// Link is a clickable region inside rendered text. Start and End are
// byte offsets into Rendered.Text.
type Link struct {
	Kind   LinkKind
	Start  int
	End    int
	Target string
	Module string // module hint for LinkHelp resolution
	Line   int
	Col    int
}

// Rendered is the display form of an error report: plain text, the
// link regions inside it, and the one-line summary the caller echoes
// in the status area.
type Rendered struct {
	Text    string
	Links   []Link
	Summary string
}

// Presenter renders error reports. It needs to know where the
// adapter's support code is installed so it can filter frames that
// originate there.
type Presenter struct {
	internalPrefix string
}

// New returns a presenter for the given support directory.
func New(supportDir string) *Presenter {
	return &Presenter{
		internalPrefix: filepath.Join(supportDir, "racket", internalPackage) + string(filepath.Separator),
	}
}

// Render builds the display form of a remote error report. The
// summary is taken from the raw message before any filtering, so it
// matches what the REPL actually said last; filtering only affects
// the body. Internal stack lines are stripped only when a key was
// supplied, which is the case where the report includes a trace.
func (p *Presenter) Render(module, key, message string) Rendered {
	var out Rendered
	var b strings.Builder

	if key != "" {
		header := "Error: " + key
		out.Links = append(out.Links, Link{
			Kind:   LinkHelp,
			Start:  len("Error: "),
			End:    len(header),
			Target: key,
			Module: module,
		})
		b.WriteString(header)
		b.WriteString("\n\n")
	}

	if message != "" {
		out.Summary = lastLine(message)
		body := message
		if key != "" {
			body = p.stripInternalLines(body)
		}
		start := b.Len()
		b.WriteString(body)
		out.Links = append(out.Links, fileLinks(body, start)...)
	}
	if out.Summary == "" {
		out.Summary = key
	}

	out.Text = b.String()
	return out
}

// stripInternalLines removes every line referring to the adapter's
// own support code.
func (p *Presenter) stripInternalLines(message string) string {
	lines := strings.Split(message, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Contains(line, p.internalPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// fileLinks scans text line by line for file references. Per line the
// first pattern that matches wins; offsets are shifted by base so
// they index into the final rendered text.
func fileLinks(text string, base int) []Link {
	var links []Link
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		for _, pattern := range fileRefPatterns {
			m := pattern.FindStringSubmatchIndex(line)
			if m == nil {
				continue
			}
			link := Link{
				Kind:   LinkFile,
				Start:  base + offset + m[2],
				End:    base + offset + m[3],
				Target: line[m[2]:m[3]],
			}
			if len(m) >= 6 && m[4] >= 0 {
				link.Line = atoi(line[m[4]:m[5]])
			}
			if len(m) >= 8 && m[6] >= 0 {
				link.Col = atoi(line[m[6]:m[7]])
			}
			links = append(links, link)
			break
		}
		offset += len(line) + 1
	}
	return links
}

// lastLine returns the final non-empty line of a message, trimmed.
func lastLine(message string) string {
	matches := lastLinePattern.FindAllString(message, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(matches[i]); s != "" {
			return s
		}
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Ref formats a link target for humans: path:line:col with the zero
// parts left off.
func (l Link) Ref() string {
	switch {
	case l.Line > 0 && l.Col > 0:
		return fmt.Sprintf("%s:%d:%d", l.Target, l.Line, l.Col)
	case l.Line > 0:
		return fmt.Sprintf("%s:%d", l.Target, l.Line)
	default:
		return l.Target
	}
}
