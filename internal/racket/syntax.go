package racket

// Syntax configuration data: the keyword table the front-end
// highlights, per-form indentation hints, and the file suffixes this
// adapter claims. None of this is algorithmic; it feeds the host
// editor's generic mode setup.

// Suffixes are the filename extensions handled by this adapter, in
// two families: the modern Racket ones and the legacy Scheme ones.
var Suffixes = []string{".rkt", ".rktd", ".ss", ".scm"}

// coreKeywords are the forms highlighted as keywords out of the box.
var coreKeywords = []string{
	"begin", "begin0", "case", "case-lambda", "cond", "define",
	"define-for-syntax", "define-struct", "define-syntax",
	"define-syntax-rule", "define-syntaxes", "define-values", "delay",
	"do", "else", "fluid-let", "for", "for*", "for*/fold", "for*/list",
	"for/fold", "for/list", "if", "lambda", "let", "let*", "let*-values",
	"let-syntax", "let-values", "let/cc", "let/ec", "letrec",
	"letrec-syntax", "letrec-values", "match", "match-lambda",
	"match-let", "module", "module*", "module+", "parameterize",
	"provide", "quasiquote", "quote", "require", "set!", "struct",
	"syntax-case", "syntax-rules", "unless", "unquote",
	"unquote-splicing", "when", "with-handlers", "with-syntax",
}

// Keywords returns the keyword table: the core set plus any extras
// from the configuration, extras last so themes can spot them.
func Keywords(extra []string) []string {
	out := make([]string, 0, len(coreKeywords)+len(extra))
	out = append(out, coreKeywords...)
	return append(out, extra...)
}

// IndentHints maps form names to the number of distinguished leading
// arguments, the value editors use to indent the body deeper.
var IndentHints = map[string]int{
	"case-lambda":     0,
	"delay":           0,
	"for":             1,
	"for*":            1,
	"for*/fold":       2,
	"for*/list":       1,
	"for/fold":        2,
	"for/list":        1,
	"fluid-let":       1,
	"instantiate":     2,
	"interface":       1,
	"let/cc":          1,
	"let/ec":          1,
	"match":           1,
	"match-lambda":    0,
	"match-let":       1,
	"mixin":           2,
	"module":          2,
	"module*":         2,
	"module+":         1,
	"parameterize":    1,
	"quasisyntax/loc": 1,
	"struct":          1,
	"syntax/loc":      1,
	"unless":          1,
	"when":            1,
	"while":           1,
	"with-handlers":   1,
}
