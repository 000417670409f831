// Package adapter defines the contract a language adapter satisfies
// for the generic REPL front-end, and the Racket implementation of
// it. The front-end owns process supervision and buffer sync; the
// adapter only answers questions: which binary, which startup flags,
// what to send, and how to show what came back.
package adapter

import (
	"gracket/internal/config"
	"gracket/internal/racket"
	"gracket/internal/trace"
)

// Implementation is the capability table the generic engine calls.
// One method per registered operation, no ambient state: everything
// an implementation needs is captured at construction.
type Implementation interface {
	// Name identifies the implementation (e.g. "racket").
	Name() string

	// BinaryPath returns the REPL executable to spawn.
	BinaryPath() string

	// StartupArgs returns the argument vector for the spawn.
	StartupArgs() []string

	// VersionCommand is the form the supervisor evaluates to learn
	// the REPL's version, and MinimumVersion the threshold it
	// enforces.
	VersionCommand() string
	MinimumVersion() string

	// Marshal builds the wire command for an operation against a
	// source snapshot. It never fails.
	Marshal(op racket.Operation, src racket.Source) string

	// EnterCommand and ImportCommand build the module-switching
	// commands; ImportCommand's ok is false when there is nothing
	// to send.
	EnterCommand(ref racket.ModuleRef) string
	ImportCommand(name string) (string, bool)

	// RenderError turns a remote error report into display form.
	RenderError(module, key, message string) trace.Rendered

	// FileSuffixes, Keywords, CaseSensitiveKeywords and IndentHints
	// feed the front-end's mode setup.
	FileSuffixes() []string
	Keywords() []string
	CaseSensitiveKeywords() bool
	IndentHints() map[string]int
}

// Racket implements the contract for the Racket REPL.
type Racket struct {
	cfg       config.Config
	presenter *trace.Presenter
}

// Compile-time interface verification.
var _ Implementation = (*Racket)(nil)

// NewRacket builds the Racket implementation from a frozen config.
func NewRacket(cfg config.Config) *Racket {
	return &Racket{
		cfg:       cfg,
		presenter: trace.New(cfg.SupportDir),
	}
}

// Name returns the implementation name.
func (r *Racket) Name() string { return "racket" }

// BinaryPath returns the configured or default REPL executable.
func (r *Racket) BinaryPath() string { return r.cfg.BinaryName() }

// StartupArgs returns the spawn arguments for the configured setup.
func (r *Racket) StartupArgs() []string { return racket.StartupArgs(r.cfg) }

// VersionCommand returns the version probe form.
func (r *Racket) VersionCommand() string { return racket.VersionCommand }

// MinimumVersion returns the oldest supported Racket release.
func (r *Racket) MinimumVersion() string { return racket.MinimumVersion }

// Marshal builds the wire command for an operation.
func (r *Racket) Marshal(op racket.Operation, src racket.Source) string {
	return racket.Marshal(op, src)
}

// EnterCommand builds the ",enter" command for a module reference.
func (r *Racket) EnterCommand(ref racket.ModuleRef) string {
	return racket.EnterCommand(ref)
}

// ImportCommand builds the require form for a module name.
func (r *Racket) ImportCommand(name string) (string, bool) {
	return racket.ImportCommand(name)
}

// RenderError renders a remote error report.
func (r *Racket) RenderError(module, key, message string) trace.Rendered {
	return r.presenter.Render(module, key, message)
}

// FileSuffixes returns the extensions this adapter claims.
func (r *Racket) FileSuffixes() []string { return racket.Suffixes }

// Keywords returns the highlighting keyword table, extras included.
func (r *Racket) Keywords() []string {
	return racket.Keywords(r.cfg.ExtraKeywords)
}

// CaseSensitiveKeywords reports how the keyword table is matched.
func (r *Racket) CaseSensitiveKeywords() bool { return r.cfg.CaseSensitive }

// IndentHints returns the per-form indentation table.
func (r *Racket) IndentHints() map[string]int { return racket.IndentHints }
