package trace

import (
	"strings"
	"testing"
)

func TestRenderFiltersInternalFrames(t *testing.T) {
	p := New("/opt/gracket")
	message := "Error in foo\n" +
		" at /opt/gracket/racket/geiser/enter.rkt:10\n" +
		" at /home/user/code.rkt:3"

	r := p.Render("", "arity-mismatch", message)

	if strings.Contains(r.Text, "/opt/gracket/racket/geiser/") {
		t.Errorf("rendered text leaks internal frames:\n%s", r.Text)
	}
	if !strings.Contains(r.Text, "/home/user/code.rkt:3") {
		t.Errorf("rendered text lost the user frame:\n%s", r.Text)
	}
	if !strings.HasPrefix(r.Text, "Error: arity-mismatch\n\n") {
		t.Errorf("rendered text missing header:\n%s", r.Text)
	}

	// The summary comes from the raw message, before filtering.
	if r.Summary != "at /home/user/code.rkt:3" {
		t.Errorf("Summary = %q", r.Summary)
	}
}

func TestRenderKeepsInternalFramesWithoutKey(t *testing.T) {
	p := New("/opt/gracket")
	message := "stdout noise\n at /opt/gracket/racket/geiser/enter.rkt:10"

	r := p.Render("", "", message)
	if !strings.Contains(r.Text, "/opt/gracket/racket/geiser/enter.rkt") {
		t.Errorf("filtering should only happen when a key is present:\n%s", r.Text)
	}
	if len(r.Links) == 0 || r.Links[0].Kind != LinkFile {
		t.Fatalf("expected a file link, got %+v", r.Links)
	}
}

func TestRenderLinks(t *testing.T) {
	p := New("/opt/gracket")
	message := "broken\n at /home/user/code.rkt:3:7\nmodule: foo/bar"

	r := p.Render("", "exn:fail", message)

	var fileLinks []Link
	for _, l := range r.Links {
		if l.Kind == LinkFile {
			fileLinks = append(fileLinks, l)
		}
	}
	if len(fileLinks) != 2 {
		t.Fatalf("expected 2 file links, got %d: %+v", len(fileLinks), fileLinks)
	}

	code := fileLinks[0]
	if code.Target != "/home/user/code.rkt" || code.Line != 3 || code.Col != 7 {
		t.Errorf("first link = %+v", code)
	}
	if got := r.Text[code.Start:code.End]; got != "/home/user/code.rkt" {
		t.Errorf("link offsets point at %q", got)
	}
	if code.Ref() != "/home/user/code.rkt:3:7" {
		t.Errorf("Ref() = %q", code.Ref())
	}

	if fileLinks[1].Target != "foo/bar" {
		t.Errorf("second link = %+v", fileLinks[1])
	}
}

func TestRenderHelpLink(t *testing.T) {
	p := New("/opt/gracket")
	r := p.Render("racket/base", "exn:fail:contract", "boom")

	if len(r.Links) == 0 {
		t.Fatal("expected a help link")
	}
	help := r.Links[0]
	if help.Kind != LinkHelp || help.Target != "exn:fail:contract" || help.Module != "racket/base" {
		t.Errorf("help link = %+v", help)
	}
	if got := r.Text[help.Start:help.End]; got != "exn:fail:contract" {
		t.Errorf("help link offsets point at %q", got)
	}
}

func TestRenderSummaryFallsBackToKey(t *testing.T) {
	p := New("/opt/gracket")
	r := p.Render("", "exn:fail", "")
	if r.Summary != "exn:fail" {
		t.Errorf("Summary = %q, want the key", r.Summary)
	}
	if !strings.HasPrefix(r.Text, "Error: exn:fail") {
		t.Errorf("Text = %q", r.Text)
	}
}

func TestRenderMessageOnly(t *testing.T) {
	p := New("/opt/gracket")
	r := p.Render("", "", "just output\nlast line")
	if r.Text != "just output\nlast line" {
		t.Errorf("Text = %q", r.Text)
	}
	if r.Summary != "last line" {
		t.Errorf("Summary = %q", r.Summary)
	}
}

func TestDisplayEchoesFileRefs(t *testing.T) {
	p := New("/opt/gracket")
	r := p.Render("", "exn:fail", "broken\n at /home/user/code.rkt:3:7")

	var out strings.Builder
	Display(&out, r)

	if !strings.Contains(out.String(), "\n  /home/user/code.rkt:3:7\n") {
		t.Errorf("display output missing the file reference echo:\n%s", out.String())
	}
}
