// Package racket implements the Racket side of the REPL protocol:
// building the textual commands sent to a Racket process and parsing
// the replies it sends back. Everything here is pure string work; the
// process itself is driven by the session package.
package racket

import (
	"fmt"
	"regexp"
	"strings"
)

// falseToken is the placeholder Racket reads as "no value". Commands
// keep their positional argument layout by emitting it instead of
// dropping an argument.
const falseToken = "#f"

var (
	// langPragma matches a "#lang <dialect>" line.
	langPragma = regexp.MustCompile(`(?m)^#lang\s+([^\s;]+)`)

	// moduleHeader matches a top-level "(module name lang" or
	// "(module+ name lang" form at the start of a line.
	moduleHeader = regexp.MustCompile(`(?m)^\(module\+?\s+([^\s()]+)\s+([^\s()]+)`)
)

// ModuleKind discriminates the ways a module can be referenced.
type ModuleKind int

const (
	// ModuleNone means no module could be resolved.
	ModuleNone ModuleKind = iota
	// ModuleSymbol references a module by bare name.
	ModuleSymbol
	// ModulePath references a file-level module by absolute path.
	ModulePath
	// ModuleSubmodule references a named submodule inside a file.
	// The file path is always non-empty for this kind.
	ModuleSubmodule
)

// ModuleRef identifies the module an operation targets.
type ModuleRef struct {
	Kind ModuleKind
	Name string // symbol or submodule name
	Path string // absolute path of the backing file
}

// NoModule is the zero ModuleRef, meaning no resolvable module.
var NoModule = ModuleRef{}

// Source is a snapshot of the buffer an operation originates from.
// Path is empty when the buffer has no backing file. Cursor is a byte
// offset used to pick the enclosing top-level form; -1 means end of
// text.
type Source struct {
	Text   string
	Path   string
	Cursor int
}

// Language returns the dialect declared by the source text: the
// "#lang" pragma if one exists, else the language argument of an
// explicit module form, else the false token. Detection happens per
// call because buffers change between evaluations.
func Language(src Source) string {
	if m := langPragma.FindStringSubmatch(src.Text); m != nil {
		return m[1]
	}
	if _, lang, ok := explicitModule(src); ok && lang != "" {
		return lang
	}
	return falseToken
}

// ResolveModule combines the implicit file-level module and any
// explicit submodule form into a single reference. It is a pure
// function of the source snapshot: calling it twice on the same
// snapshot yields the same result.
//
// When a submodule form is found but the buffer has no backing file,
// the bare submodule name is returned rather than a Submodule with an
// empty path. Whether the remote side can resolve such a name without
// its enclosing file is up to the REPL; we never construct a
// Submodule reference that violates the non-empty-path rule.
func ResolveModule(src Source) ModuleRef {
	implicit := src.Path != "" && langPragma.MatchString(src.Text)
	name, _, explicit := explicitModule(src)

	switch {
	case implicit && explicit:
		return ModuleRef{Kind: ModuleSubmodule, Name: name, Path: src.Path}
	case implicit:
		return ModuleRef{Kind: ModulePath, Path: src.Path}
	case explicit:
		return ModuleRef{Kind: ModuleSymbol, Name: name}
	default:
		return NoModule
	}
}

// explicitModule finds the nested module declaration enclosing the
// cursor: the last module header starting at or before it. Headers
// are only recognized at the start of a line, which is what keeps the
// scan at top-level forms.
func explicitModule(src Source) (name, lang string, ok bool) {
	cursor := src.Cursor
	if cursor < 0 || cursor > len(src.Text) {
		cursor = len(src.Text)
	}
	matches := moduleHeader.FindAllStringSubmatchIndex(src.Text, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m[0] <= cursor {
			return src.Text[m[2]:m[3]], src.Text[m[4]:m[5]], true
		}
	}
	return "", "", false
}

// LoadForm prints the reference the way ",geiser-load" expects it: a
// quoted string for file paths, a submod list for submodules, a bare
// symbol otherwise.
func (r ModuleRef) LoadForm() string {
	switch r.Kind {
	case ModulePath:
		return fmt.Sprintf("%q", r.Path)
	case ModuleSubmodule:
		return fmt.Sprintf("(submod %q %s)", r.Path, r.Name)
	case ModuleSymbol:
		if r.Name == "" {
			return falseToken
		}
		return r.Name
	default:
		return falseToken
	}
}

// String implements fmt.Stringer using the load form.
func (r ModuleRef) String() string { return r.LoadForm() }

// IsZero reports whether the reference resolves to no module.
func (r ModuleRef) IsZero() bool {
	return r.Kind == ModuleNone || (r.Kind == ModuleSymbol && strings.TrimSpace(r.Name) == "")
}
